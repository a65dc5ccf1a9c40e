package runtime

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/databendlabs/databend-base/base/log"
)

// RecoverAndLog recovers from a panic, logs it with the stack trace, and
// continues execution. Use it in defer statements for workers and handlers
// where a panic must not take the process down.
//
// Example:
//
//	func worker(ctx context.Context) {
//	    defer runtime.RecoverAndLog(ctx, logger, "worker")
//	    // ...
//	}
func RecoverAndLog(ctx context.Context, logger log.Logger, name string) {
	if r := recover(); r != nil {
		HandlePanicValue(ctx, logger, r, name)
	}
}

// RecoverAndCrash recovers from a panic, logs it with the stack trace, and
// re-panics. Use it in defer statements for critical operations where the
// diagnostics must be surfaced before the failure propagates, such as cleanup
// running while the caller is already unwinding.
func RecoverAndCrash(ctx context.Context, logger log.Logger, name string) {
	if r := recover(); r != nil {
		HandlePanicValue(ctx, logger, r, name)
		panic(r)
	}
}

// HandlePanicValue processes a panic value that was already recovered by an
// external mechanism. It logs the value with a freshly captured stack trace,
// increments the recovered-panic counter, and records a span event when ctx
// carries an active span. A nil panicValue is a no-op.
func HandlePanicValue(ctx context.Context, logger log.Logger, panicValue any, name string) {
	if panicValue == nil {
		return
	}

	stack := debug.Stack()
	logPanic(ctx, logger, name, panicValue, stack)
	recordPanicMetric(ctx, name)
	recordPanicToSpan(ctx, panicValue, stack, name)
}

// PanicError converts a recovered panic value into an error.
func PanicError(panicValue any) error {
	if err, ok := panicValue.(error); ok {
		return err
	}

	return fmt.Errorf("panic: %v", panicValue)
}

func logPanic(ctx context.Context, logger log.Logger, name string, panicValue any, stack []byte) {
	if logger == nil {
		return
	}

	logger.Log(ctx, log.LevelError, "panic recovered",
		log.String("source", name),
		log.Any("value", panicValue),
		log.String("stack_trace", string(stack)),
	)
}
