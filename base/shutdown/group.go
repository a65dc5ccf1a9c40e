package shutdown

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/databendlabs/databend-base/base/errgroup"
	"github.com/databendlabs/databend-base/base/log"
	"github.com/databendlabs/databend-base/base/runtime"
	"go.uber.org/multierr"
)

// ErrAlreadyShuttingDown is returned by ShutdownAll when a shutdown sequence
// has already started on this group.
var ErrAlreadyShuttingDown = errors.New("shutdown group is already shutting down")

// Group manages graceful shutdown for an ordered collection of services.
//
// Services are registered with Push during setup and torn down together by a
// single shutdown sequence: either explicitly via ShutdownAll, signal-driven
// via WaitToTerminate, or forced via Close. At most one shutdown sequence ever
// runs per group; the losers of the race receive ErrAlreadyShuttingDown.
//
// Push is not safe to call concurrently with an in-flight shutdown; finish
// registration before any shutdown path can start.
type Group struct {
	shuttingDown atomic.Bool
	services     []Stoppable
	logger       log.Logger
}

// NewGroup creates an empty group with a no-op logger.
func NewGroup() *Group {
	return &Group{logger: log.NewNop()}
}

// WithLogger sets the logger used by the shutdown paths. A nil logger is
// replaced with a no-op logger.
func (g *Group) WithLogger(logger log.Logger) *Group {
	if logger == nil {
		logger = log.NewNop()
	}

	g.logger = logger

	return g
}

// Push appends a service to the group. The service is owned by the group from
// this point on; insertion order is preserved.
func (g *Group) Push(s Stoppable) {
	g.services = append(g.services, s)
}

// Len returns the number of registered services.
func (g *Group) Len() int {
	return len(g.services)
}

// Done is the composite handle for an in-flight shutdown sequence. It
// resolves once every service's Shutdown has returned.
type Done struct {
	ch       chan struct{}
	errs     []error
	panicErr error
}

// C returns a channel that is closed once every service has resolved.
func (d *Done) C() <-chan struct{} {
	return d.ch
}

// Wait blocks until every service has resolved or ctx is canceled. It returns
// the per-service errors combined into one, or ctx.Err() on cancellation.
// Waiting does not abort the underlying shutdown; services keep running.
func (d *Done) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-d.ch:
	}

	return multierr.Append(multierr.Combine(d.errs...), d.panicErr)
}

// Errs returns the full set of per-service results, indexed by registration
// order, once the composite has resolved. Before that it returns nil.
func (d *Done) Errs() []error {
	select {
	case <-d.ch:
	default:
		return nil
	}

	cp := make([]error, len(d.errs))
	copy(cp, d.errs)

	return cp
}

// ShutdownAll starts the shutdown of every registered service concurrently
// and returns a composite handle that resolves once all of them have.
//
// force, when non-nil, is wrapped into one shared Signal fired on the first
// receive (or close), so every service holds an independent handle to the
// same eventual firing. Every service's Shutdown is started before the
// composite begins waiting on any of them.
//
// Only the first call wins; any later or concurrent call returns
// ErrAlreadyShuttingDown and starts nothing.
func (g *Group) ShutdownAll(ctx context.Context, force <-chan struct{}) (*Done, error) {
	if !g.shuttingDown.CompareAndSwap(false, true) {
		return nil, ErrAlreadyShuttingDown
	}

	var sig *Signal
	if force != nil {
		sig = NewSignal()
	}

	done := &Done{
		ch:   make(chan struct{}),
		errs: make([]error, len(g.services)),
	}

	if sig != nil {
		select {
		case <-force:
			// Already deliverable, as in a forced Close. Fire before any
			// service starts so all of them observe a fired signal.
			sig.Fire()
		default:
			// The follower exits once the composite resolves, so an unfired
			// force channel does not pin a goroutine forever.
			go sig.follow(force, done.ch)
		}
	}

	grp := &errgroup.Group{}
	grp.SetLogger(g.logger)

	for i, svc := range g.services {
		grp.Go(func() error {
			done.errs[i] = svc.Shutdown(ctx, sig)
			return nil
		})
	}

	go func() {
		// A panicking service surfaces as the group error instead of a
		// per-service one.
		done.panicErr = grp.Wait()
		close(done.ch)
	}()

	return done, nil
}

// WaitToTerminate blocks until source delivers its first notification, then
// runs the two-phase shutdown: every service is shut down gracefully with a
// force Signal tied to the next notification from the same source.
//
// An ErrAlreadyShuttingDown result (for example, a Close racing ahead on
// another goroutine) is logged and ignored. Per-service errors are logged,
// not returned; inspect them via ShutdownAll directly if the caller needs
// them. Returns ctx.Err() if ctx is canceled while waiting.
func (g *Group) WaitToTerminate(ctx context.Context, source *Source) error {
	notify := source.Subscribe()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-notify:
	}

	g.logger.Log(ctx, log.LevelInfo, "received termination signal")
	g.logger.Log(ctx, log.LevelInfo, "a second termination signal forces shutdown")

	force := source.Subscribe()

	done, err := g.ShutdownAll(ctx, force)
	if err != nil {
		// Another shutdown path won the race; it owns the teardown.
		g.logger.Log(ctx, log.LevelInfo, "shutdown already in progress", log.Err(err))
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done.C():
	}

	if err := done.Wait(ctx); err != nil {
		g.logger.Log(ctx, log.LevelWarn, "services reported shutdown errors", log.Err(err))
	}

	g.logger.Log(ctx, log.LevelInfo, "all services shut down")

	return nil
}

// Close runs a forced shutdown and blocks the calling goroutine until every
// service has resolved. It is the teardown path for a group that is being
// discarded without an explicit shutdown: every service receives an
// already-fired force signal, so force-aware services take their fast path.
//
// If a shutdown sequence already ran, Close returns nil without touching the
// services. A panic during the forced cleanup is logged with its stack trace
// before propagating.
//
// Close must not be called from inside one of the group's own service
// Shutdown routines; doing so deadlocks, since Close waits for that very
// routine to return.
func (g *Group) Close() error {
	ctx := context.Background()

	defer runtime.RecoverAndCrash(ctx, g.logger, "shutdown.Group.Close")

	fired := make(chan struct{})
	close(fired)

	done, err := g.ShutdownAll(ctx, fired)
	if err != nil {
		// An explicit shutdown already ran (or is running); nothing to do.
		return nil
	}

	return done.Wait(ctx)
}
