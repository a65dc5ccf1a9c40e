package shutdown

import "context"

// Stoppable is a service that supports graceful shutdown.
//
// Shutdown runs the service's cleanup and returns once it is complete. force
// is nil when no force signal was supplied; implementations that have no
// blocking work may ignore it entirely. An implementation that does observe
// force must treat its firing as "abandon remaining graceful work and return
// as soon as practical".
//
// Shutdown must eventually return. The coordinator imposes no deadline of its
// own; a service that blocks forever blocks the whole group.
type Stoppable interface {
	Shutdown(ctx context.Context, force *Signal) error
}

// Func adapts a plain cleanup function into a Stoppable that ignores the
// force signal.
type Func func(ctx context.Context) error

// Shutdown implements Stoppable.
func (f Func) Shutdown(ctx context.Context, _ *Signal) error {
	return f(ctx)
}
