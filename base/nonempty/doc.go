// Package nonempty provides a string type whose constructor rejects the
// empty string, so downstream code can take non-emptiness for granted.
package nonempty
