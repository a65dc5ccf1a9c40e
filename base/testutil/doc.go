// Package testutil provides small helpers for tests that need real network
// listeners without hard-coded port numbers.
package testutil
