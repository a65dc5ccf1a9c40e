package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/databendlabs/databend-base/base/log"
)

// ErrSourceClosed is returned by Publish after the source has been closed.
var ErrSourceClosed = errors.New("notification source is closed")

// subscriberBuffer bounds how many undelivered notifications a subscriber can
// hold. Two is enough for the two-phase protocol; the slack absorbs an
// operator hammering the interrupt key.
const subscriberBuffer = 16

// Source is a multi-consumer broadcast channel for termination notifications.
//
// Every Subscribe call returns an independent channel that receives one value
// per Publish. Notifications published before a Subscribe call are not
// replayed. A subscriber that has fallen subscriberBuffer notifications
// behind drops further ones rather than blocking the publisher.
type Source struct {
	mu     sync.Mutex
	subs   []chan struct{}
	closed bool
}

// NewSource creates a Source with no subscribers. Use it directly in tests to
// drive termination deterministically instead of relying on OS signals.
func NewSource() *Source {
	return &Source{}
}

// Subscribe registers a new independent consumer and returns its channel.
func (s *Source) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, subscriberBuffer)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs = append(s.subs, ch)

	return ch
}

// Subscribers reports how many consumers are currently registered. Callers
// synchronizing with a consumer that subscribes asynchronously can poll it
// before publishing.
func (s *Source) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.subs)
}

// Publish delivers one notification to every current subscriber. It never
// blocks; slow subscribers lose notifications beyond their buffer.
func (s *Source) Publish() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSourceClosed
	}

	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}

	return nil
}

// Close marks the source closed. Later Publish calls fail with
// ErrSourceClosed; subscriber channels are left open and simply stop
// receiving.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
}

// osExit is swapped out by tests exercising the unrecoverable publish path.
var osExit = os.Exit

// InstallTerminationHandle installs a process-level interrupt handler
// (SIGINT, SIGTERM) that publishes one notification on the returned Source
// per delivered signal. The returned handle feeds Group.WaitToTerminate and
// may be shared by any number of groups.
//
// The handler lives for the rest of the process; there is no teardown.
// Install it once per process. If publishing a notification ever fails, the
// condition is unrecoverable (the relay has nobody to report to) and the
// process exits with a non-zero status.
func InstallTerminationHandle(logger log.Logger) *Source {
	if logger == nil {
		logger = log.NewNop()
	}

	src := NewSource()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	go relaySignals(ch, src, logger)

	return src
}

// relaySignals forwards each OS signal as one published notification.
func relaySignals(ch <-chan os.Signal, src *Source, logger log.Logger) {
	for sig := range ch {
		if err := src.Publish(); err != nil {
			logger.Log(context.Background(), log.LevelError, "could not publish termination notification",
				log.String("signal", sig.String()),
				log.Err(err),
			)
			osExit(1)
		}
	}
}
