// Package stringutil provides string helpers for building key-range queries,
// such as turning a prefix into an exclusive right bound.
package stringutil
