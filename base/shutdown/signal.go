package shutdown

import "sync"

// Signal is a broadcast-once notification observable by any number of
// independent waiters.
//
// It has three states: unset (created, not fired), pending (a follower is
// wired but the upstream has not delivered), and fired. Firing is idempotent
// and delivered to every current and future waiter: a waiter that checks
// Fired or selects on Done after the signal fired observes the firing
// immediately rather than blocking. No waiter can observe "unset" after
// another waiter observed "fired".
type Signal struct {
	once sync.Once
	ch   chan struct{}
}

// NewSignal creates an unfired Signal.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{})}
}

// FiredSignal creates a Signal that is already fired. Every waiter observes
// the firing immediately.
func FiredSignal() *Signal {
	s := NewSignal()
	s.Fire()

	return s
}

// Fire delivers the signal to all current and future waiters. Subsequent
// calls are no-ops.
func (s *Signal) Fire() {
	s.once.Do(func() {
		close(s.ch)
	})
}

// Done returns a channel that is closed once the signal has fired.
func (s *Signal) Done() <-chan struct{} {
	return s.ch
}

// Fired reports whether the signal has fired.
func (s *Signal) Fired() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}

// follow fires the signal on the first receive from upstream, or when
// upstream is closed. It runs on its own goroutine and exits once stop is
// closed, so an upstream that never delivers does not pin the goroutine.
func (s *Signal) follow(upstream, stop <-chan struct{}) {
	select {
	case <-upstream:
		s.Fire()
	case <-stop:
	}
}
