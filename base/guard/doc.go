// Package guard provides a cancellable scope-exit callback.
//
// A Guard runs its callback exactly once, typically via defer, unless it was
// cancelled first. It covers the "cleanup unless the operation succeeded"
// pattern without hand-rolled boolean flags.
package guard
