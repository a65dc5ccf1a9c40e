// Package counter tracks the number of live instances of a resource.
//
// A Counted wraps a value and increments a Counter on creation, decrementing
// it once on Release. Wiring the Counter to an OpenTelemetry up-down counter
// turns the wrapper into a live gauge of open connections, sessions, or any
// other handle-like resource.
package counter
