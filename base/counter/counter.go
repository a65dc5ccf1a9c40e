package counter

import "sync/atomic"

// Counter receives increments and decrements of a live-instance count.
// Implementations must be safe for concurrent use.
type Counter interface {
	Incr(n int64)
}

// Func adapts a plain function into a Counter.
type Func func(n int64)

// Incr implements Counter.
func (f Func) Incr(n int64) {
	f(n)
}

// Counted binds a value to a Counter. The counter is incremented by one when
// the Counted is created and decremented by one when it is released.
type Counted[T any] struct {
	counter  Counter
	value    T
	released atomic.Bool
}

// New wraps value and increments counter by one.
func New[T any](value T, counter Counter) *Counted[T] {
	counter.Incr(1)

	return &Counted[T]{counter: counter, value: value}
}

// Guard increments counter by one and returns a valueless Counted. Release it
// to decrement.
func Guard(counter Counter) *Counted[struct{}] {
	return New(struct{}{}, counter)
}

// Value returns the wrapped value.
func (c *Counted[T]) Value() T {
	return c.value
}

// Counter returns the bound counter.
func (c *Counted[T]) Counter() Counter {
	return c.counter
}

// Replace swaps the wrapped value and returns the previous one. The count is
// unaffected.
func (c *Counted[T]) Replace(value T) T {
	old := c.value
	c.value = value

	return old
}

// Release decrements the counter and returns the wrapped value. Only the
// first call decrements; later calls return the value without touching the
// counter.
func (c *Counted[T]) Release() T {
	if c.released.CompareAndSwap(false, true) {
		c.counter.Incr(-1)
	}

	return c.value
}
