package uniqid

import (
	"encoding/binary"
	"math/bits"
	"sync/atomic"

	"github.com/google/uuid"
)

var globalSeq atomic.Uint64

// Next returns the next value of a process-wide monotonic sequence, starting
// from 0.
func Next() uint64 {
	return globalSeq.Add(1) - 1
}

const base62Digits = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Unique returns a random identifier: a UUIDv4 encoded in base62, 21 or 22
// alphanumeric characters. Collisions are as unlikely as UUID collisions.
func Unique() string {
	id := uuid.New()

	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])

	// Base62 long division over the 128-bit value, least significant digit
	// first.
	buf := make([]byte, 0, 22)

	for hi != 0 || lo != 0 {
		qhi := hi / 62
		rem := hi % 62

		var qlo uint64
		qlo, rem = bits.Div64(rem, lo, 62)

		buf = append(buf, base62Digits[rem])

		hi, lo = qhi, qlo
	}

	if len(buf) == 0 {
		buf = append(buf, base62Digits[0])
	}

	return string(buf)
}
