package elapsed

import (
	"context"
	"time"

	"github.com/databendlabs/databend-base/base/log"
)

// InspectFunc receives the result of an inspected call and the wall time it
// took.
type InspectFunc[T any] func(result T, elapsed time.Duration)

// Inspect runs fn and passes its result and wall time to inspect before
// returning the result.
func Inspect[T any](fn func() T, inspect InspectFunc[T]) T {
	start := time.Now()
	result := fn()
	inspect(result, time.Since(start))

	return result
}

// InspectOver is Inspect with a threshold: inspect runs only when the call
// took at least threshold.
func InspectOver[T any](threshold time.Duration, fn func() T, inspect InspectFunc[T]) T {
	return Inspect(fn, func(result T, elapsed time.Duration) {
		if elapsed >= threshold {
			inspect(result, elapsed)
		}
	})
}

// LogDebug runs fn and logs its wall time at debug level with the given
// message.
func LogDebug[T any](ctx context.Context, logger log.Logger, msg string, fn func() T) T {
	return logElapsed(ctx, logger, log.LevelDebug, msg, fn)
}

// LogInfo runs fn and logs its wall time at info level with the given
// message.
func LogInfo[T any](ctx context.Context, logger log.Logger, msg string, fn func() T) T {
	return logElapsed(ctx, logger, log.LevelInfo, msg, fn)
}

func logElapsed[T any](ctx context.Context, logger log.Logger, level log.Level, msg string, fn func() T) T {
	if logger == nil || !logger.Enabled(level) {
		return fn()
	}

	return Inspect(fn, func(_ T, elapsed time.Duration) {
		logger.Log(ctx, level, msg, log.String("elapsed", elapsed.String()))
	})
}
