package histogram

import (
	"fmt"
	"math/bits"
	"sync/atomic"
)

const (
	// subBits linear sub-buckets per power of two keep the relative error of
	// a bucket's upper bound under 1/2^subBits.
	subBits  = 2
	subCount = 1 << subBits

	// Values 0..subCount-1 get exact buckets; each of the remaining 62
	// powers of two contributes subCount buckets.
	numBuckets = (64 - subBits + 1) * subCount
)

// Histogram accumulates uint64 samples into log-scaled buckets.
//
// The zero value is not usable; call New. All methods are safe for concurrent
// use. Reads that run concurrently with Record see a consistent-enough
// snapshot for monitoring purposes, not an atomic one.
type Histogram struct {
	buckets [numBuckets]atomic.Uint64
	count   atomic.Uint64
	sum     atomic.Uint64
}

// New creates an empty histogram covering the full uint64 range.
func New() *Histogram {
	return &Histogram{}
}

// Record adds one sample.
func (h *Histogram) Record(v uint64) {
	h.buckets[bucketIndex(v)].Add(1)
	h.count.Add(1)
	h.sum.Add(v)
}

// Count returns the number of recorded samples.
func (h *Histogram) Count() uint64 {
	return h.count.Load()
}

// Sum returns the sum of all recorded samples.
func (h *Histogram) Sum() uint64 {
	return h.sum.Load()
}

// Percentile returns an upper-bound estimate of the p-th percentile,
// 0 < p <= 100. The estimate is the upper edge of the bucket containing the
// target rank. Returns 0 for an empty histogram.
func (h *Histogram) Percentile(p float64) uint64 {
	if p <= 0 {
		p = 0
	} else if p > 100 {
		p = 100
	}

	total := h.count.Load()
	if total == 0 {
		return 0
	}

	rank := uint64(p / 100 * float64(total))
	if rank == 0 {
		rank = 1
	}

	var seen uint64

	for i := range numBuckets {
		seen += h.buckets[i].Load()
		if seen >= rank {
			return bucketUpper(i)
		}
	}

	return bucketUpper(numBuckets - 1)
}

// Stats is a point-in-time summary of a histogram.
type Stats struct {
	Count uint64
	Sum   uint64
	Mean  float64
	P50   uint64
	P95   uint64
	P99   uint64
}

// Stats returns a summary of the recorded samples.
func (h *Histogram) Stats() Stats {
	s := Stats{
		Count: h.count.Load(),
		Sum:   h.sum.Load(),
		P50:   h.Percentile(50),
		P95:   h.Percentile(95),
		P99:   h.Percentile(99),
	}

	if s.Count > 0 {
		s.Mean = float64(s.Sum) / float64(s.Count)
	}

	return s
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	return fmt.Sprintf("count=%d sum=%d mean=%.1f p50<=%d p95<=%d p99<=%d",
		s.Count, s.Sum, s.Mean, s.P50, s.P95, s.P99)
}

// bucketIndex maps a sample to its bucket. Small values get exact buckets;
// larger ones are keyed by their highest subBits+1 significant bits, which
// keeps the mapping monotone.
func bucketIndex(v uint64) int {
	if v < subCount {
		return int(v)
	}

	exp := bits.Len64(v) - 1
	shift := exp - subBits
	sub := (v >> shift) & (subCount - 1)

	return (shift+1)*subCount + int(sub)
}

// bucketUpper returns the largest value that maps to bucket i.
func bucketUpper(i int) uint64 {
	if i < subCount {
		return uint64(i)
	}

	shift := i/subCount - 1
	sub := uint64(i % subCount)

	return (subCount+sub)<<shift + (1 << shift) - 1
}
