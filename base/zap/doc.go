// Package zap adapts go.uber.org/zap to the base/log interface.
//
// It preserves structured fields, correlates log entries with an active
// OpenTelemetry span when one is present on the context, and exposes a
// runtime-adjustable level handle.
package zap
