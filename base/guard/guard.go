package guard

import "sync"

// Guard holds a cleanup callback that runs exactly once, unless cancelled.
//
// The zero value is inert; use New. A Guard is safe for concurrent use:
// racing Run and Cancel calls resolve to the callback running either once or
// not at all, never twice.
type Guard struct {
	mu sync.Mutex
	f  func()
}

// New creates a guard that will invoke f from Run.
//
// The usual shape is:
//
//	g := guard.New(cleanup)
//	defer g.Run()
//	// ... work ...
//	g.Cancel() // success, skip cleanup
func New(f func()) *Guard {
	return &Guard{f: f}
}

// Run invokes the callback if the guard is still active. Later calls are
// no-ops.
func (g *Guard) Run() {
	g.mu.Lock()
	f := g.f
	g.f = nil
	g.mu.Unlock()

	if f != nil {
		f()
	}
}

// Cancel deactivates the guard so Run becomes a no-op. Cancelling an already
// run or cancelled guard does nothing.
func (g *Guard) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.f = nil
}

// Active reports whether the callback is still pending.
func (g *Guard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.f != nil
}
