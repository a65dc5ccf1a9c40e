// Package elapsed measures the wall time of function calls and hands the
// measurement to an inspector, a threshold filter, or a logger.
package elapsed
