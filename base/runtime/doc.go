// Package runtime provides panic capture helpers for goroutines and cleanup
// paths.
//
// RecoverAndLog swallows a panic after logging it with its stack trace;
// RecoverAndCrash logs the diagnostics and then re-panics, for critical paths
// where continuing would be unsafe. Recovered panics are also recorded as an
// OpenTelemetry counter and, when a span is active on the context, as a span
// event.
package runtime
