// Package log defines the logging interface and typed logging fields used
// across databend-base.
//
// Adapters (such as the zap package) implement Logger so library packages can
// log without depending on a concrete backend.
package log
