// Package histogram provides a lock-free log-bucketed histogram of uint64
// samples.
//
// Samples are mapped to buckets whose width grows exponentially, with a few
// linear sub-buckets per power of two, so relative error stays bounded while
// the whole table fits in a couple of kilobytes. Record is a single atomic
// add and is safe to call from any number of goroutines.
package histogram
