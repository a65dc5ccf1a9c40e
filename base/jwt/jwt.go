package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"strings"
	"time"
)

const (
	// AlgHS256 identifies HMAC-SHA256.
	AlgHS256 = "HS256"
	// AlgHS384 identifies HMAC-SHA384.
	AlgHS384 = "HS384"
	// AlgHS512 identifies HMAC-SHA512.
	AlgHS512 = "HS512"
)

// maxTokenLength rejects absurd inputs before any decoding work.
const maxTokenLength = 8192

var (
	// ErrInvalidToken indicates the token string is malformed or cannot be decoded.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnsupportedAlgorithm indicates the signing algorithm is unknown or not allowed.
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")
	// ErrSignatureInvalid indicates the signature does not match.
	ErrSignatureInvalid = errors.New("signature verification failed")
	// ErrTokenExpired indicates the exp claim is in the past.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenNotYetValid indicates the nbf claim is in the future.
	ErrTokenNotYetValid = errors.New("token is not yet valid")
)

// Claims is an unstructured JWT payload.
type Claims = map[string]any

// Token is a parsed JWT whose signature has been verified.
type Token struct {
	Header map[string]any
	Claims Claims
}

// Sign produces the compact serialization of claims, signed with the given
// algorithm and secret.
func Sign(claims Claims, algorithm string, secret []byte) (string, error) {
	hashFunc, err := hashForAlgorithm(algorithm)
	if err != nil {
		return "", err
	}

	headerJSON, err := json.Marshal(map[string]string{"alg": algorithm, "typ": "JWT"})
	if err != nil {
		return "", fmt.Errorf("marshal header: %w", err)
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(claimsJSON)

	sig := computeHMAC([]byte(signingInput), secret, hashFunc)

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Parse decodes tokenString, checks that its algorithm is in allowedAlgorithms
// and verifies the HMAC signature with secret, in constant time.
//
// Parse does not look at time-based claims; callers that care about exp or
// nbf must run ValidateTimeClaims on the result.
func Parse(tokenString string, secret []byte, allowedAlgorithms []string) (*Token, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("empty token string: %w", ErrInvalidToken)
	}

	if len(tokenString) > maxTokenLength {
		return nil, fmt.Errorf("token exceeds %d bytes: %w", maxTokenLength, ErrInvalidToken)
	}

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("token must have 3 parts: %w", ErrInvalidToken)
	}

	header, alg, err := parseHeader(parts[0], allowedAlgorithms)
	if err != nil {
		return nil, err
	}

	if err := verifySignature(parts, alg, secret); err != nil {
		return nil, err
	}

	claims, err := decodeJSON[Claims](parts[1], "payload")
	if err != nil {
		return nil, err
	}

	return &Token{Header: header, Claims: claims}, nil
}

// ValidateTimeClaims checks exp and nbf against the current time. Absent
// claims are skipped.
func ValidateTimeClaims(claims Claims) error {
	return ValidateTimeClaimsAt(claims, time.Now())
}

// ValidateTimeClaimsAt checks exp and nbf against the given time. Absent
// claims are skipped.
func ValidateTimeClaimsAt(claims Claims, now time.Time) error {
	if exp, ok := numericDate(claims, "exp"); ok && now.After(exp) {
		return fmt.Errorf("token expired at %s: %w", exp.Format(time.RFC3339), ErrTokenExpired)
	}

	if nbf, ok := numericDate(claims, "nbf"); ok && now.Before(nbf) {
		return fmt.Errorf("token not valid until %s: %w", nbf.Format(time.RFC3339), ErrTokenNotYetValid)
	}

	return nil
}

func parseHeader(part string, allowedAlgorithms []string) (map[string]any, string, error) {
	header, err := decodeJSON[map[string]any](part, "header")
	if err != nil {
		return nil, "", err
	}

	alg, ok := header["alg"].(string)
	if !ok || alg == "" {
		return nil, "", fmt.Errorf("missing alg in header: %w", ErrInvalidToken)
	}

	allowed := false

	for _, a := range allowedAlgorithms {
		if a == alg {
			allowed = true
			break
		}
	}

	if !allowed {
		return nil, "", fmt.Errorf("algorithm %q not allowed: %w", alg, ErrUnsupportedAlgorithm)
	}

	return header, alg, nil
}

func verifySignature(parts []string, alg string, secret []byte) error {
	hashFunc, err := hashForAlgorithm(alg)
	if err != nil {
		return err
	}

	actual, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return fmt.Errorf("decode signature: %w", ErrInvalidToken)
	}

	expected := computeHMAC([]byte(parts[0]+"."+parts[1]), secret, hashFunc)
	if !hmac.Equal(expected, actual) {
		return ErrSignatureInvalid
	}

	return nil
}

func decodeJSON[T any](part, what string) (T, error) {
	var out T

	raw, err := base64.RawURLEncoding.DecodeString(part)
	if err != nil {
		return out, fmt.Errorf("decode %s: %w", what, ErrInvalidToken)
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("unmarshal %s: %w", what, ErrInvalidToken)
	}

	return out, nil
}

func hashForAlgorithm(alg string) (func() hash.Hash, error) {
	switch alg {
	case AlgHS256:
		return sha256.New, nil
	case AlgHS384:
		return sha512.New384, nil
	case AlgHS512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("algorithm %q: %w", alg, ErrUnsupportedAlgorithm)
	}
}

func computeHMAC(data, secret []byte, hashFunc func() hash.Hash) []byte {
	mac := hmac.New(hashFunc, secret)
	mac.Write(data)

	return mac.Sum(nil)
}

// numericDate extracts a JSON NumericDate claim, accepting the float64 that
// encoding/json produces plus the integer types a caller may have set
// directly.
func numericDate(claims Claims, key string) (time.Time, bool) {
	v, ok := claims[key]
	if !ok {
		return time.Time{}, false
	}

	switch n := v.(type) {
	case float64:
		return time.Unix(int64(n), 0), true
	case int64:
		return time.Unix(n, 0), true
	case int:
		return time.Unix(int64(n), 0), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return time.Time{}, false
		}

		return time.Unix(int64(f), 0), true
	default:
		return time.Time{}, false
	}
}
