// Package jwt implements compact HMAC-signed JSON Web Tokens.
//
// It covers the HS256, HS384 and HS512 algorithms with shared secrets.
// Parsing verifies the signature against an explicit algorithm allow-list;
// time-based claims are validated separately via ValidateTimeClaims.
package jwt
