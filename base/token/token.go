package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/databendlabs/databend-base/base/jwt"
)

// tokenTTL keeps issued tokens valid effectively forever; the key dies with
// the process anyway.
const tokenTTL = 10 * 365 * 24 * time.Hour

const keySize = 32

// ErrMissingUsername indicates a verified token carries no username claim.
var ErrMissingUsername = errors.New("token has no username claim")

// Claim is the payload embedded in an issued token.
type Claim struct {
	Username string
}

// Manager creates and verifies tokens with a per-instance HMAC-SHA256 key.
// It is safe for concurrent use.
type Manager struct {
	key []byte
}

// NewManager creates a Manager with a freshly generated random key.
func NewManager() (*Manager, error) {
	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate token key: %w", err)
	}

	return &Manager{key: key}, nil
}

// Create issues a signed token embedding claim, valid for ten years.
func (m *Manager) Create(claim Claim) (string, error) {
	return jwt.Sign(jwt.Claims{
		"username": claim.Username,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}, jwt.AlgHS256, m.key)
}

// Verify checks the token's signature and expiry and returns the embedded
// claim. Tokens issued by a different Manager fail verification.
func (m *Manager) Verify(token string) (Claim, error) {
	parsed, err := jwt.Parse(token, m.key, []string{jwt.AlgHS256})
	if err != nil {
		return Claim{}, err
	}

	if err := jwt.ValidateTimeClaims(parsed.Claims); err != nil {
		return Claim{}, err
	}

	username, ok := parsed.Claims["username"].(string)
	if !ok || username == "" {
		return Claim{}, ErrMissingUsername
	}

	return Claim{Username: username}, nil
}
