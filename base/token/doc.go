// Package token issues and verifies JWT authentication tokens for gRPC
// services.
//
// Each Manager generates its own random HMAC key, so a token can only be
// verified by the manager that issued it. Managers are meant to live for the
// duration of the process.
package token
