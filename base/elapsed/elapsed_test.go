//go:build unit

package elapsed_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/databendlabs/databend-base/base/elapsed"
	"github.com/databendlabs/databend-base/base/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectReportsResultAndDuration(t *testing.T) {
	t.Parallel()

	var (
		seen        int
		elapsedSeen time.Duration
	)

	result := elapsed.Inspect(func() int {
		time.Sleep(20 * time.Millisecond)
		return 7
	}, func(result int, d time.Duration) {
		seen = result
		elapsedSeen = d
	})

	assert.Equal(t, 7, result)
	assert.Equal(t, 7, seen)
	assert.GreaterOrEqual(t, elapsedSeen, 20*time.Millisecond)
}

func TestInspectOverThreshold(t *testing.T) {
	t.Parallel()

	triggered := false

	elapsed.InspectOver(10*time.Millisecond, func() struct{} {
		time.Sleep(20 * time.Millisecond)
		return struct{}{}
	}, func(struct{}, time.Duration) {
		triggered = true
	})

	assert.True(t, triggered)

	elapsed.InspectOver(time.Minute, func() struct{} {
		return struct{}{}
	}, func(struct{}, time.Duration) {
		t.Fatal("inspector must not run under the threshold")
	})
}

type captureLogger struct {
	mu      sync.Mutex
	level   log.Level
	entries []string
}

func (l *captureLogger) Log(_ context.Context, level log.Level, msg string, _ ...log.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level <= l.level {
		l.entries = append(l.entries, msg)
	}
}

func (l *captureLogger) With(_ ...log.Field) log.Logger { return l }
func (l *captureLogger) WithGroup(_ string) log.Logger  { return l }
func (l *captureLogger) Enabled(level log.Level) bool   { return level <= l.level }
func (l *captureLogger) Sync(_ context.Context) error   { return nil }

func TestLogInfoEmitsOneEntry(t *testing.T) {
	t.Parallel()

	logger := &captureLogger{level: log.LevelInfo}

	result := elapsed.LogInfo(context.Background(), logger, "load snapshot", func() string {
		return "ok"
	})

	assert.Equal(t, "ok", result)
	require.Len(t, logger.entries, 1)
	assert.Equal(t, "load snapshot", logger.entries[0])
}

func TestLogDebugSkippedWhenDisabled(t *testing.T) {
	t.Parallel()

	logger := &captureLogger{level: log.LevelInfo}

	result := elapsed.LogDebug(context.Background(), logger, "scan", func() int {
		return 3
	})

	assert.Equal(t, 3, result)
	assert.Empty(t, logger.entries)
}

func TestLogHandlesNilLogger(t *testing.T) {
	t.Parallel()

	result := elapsed.LogInfo[int](context.Background(), nil, "noop", func() int {
		return 1
	})

	assert.Equal(t, 1, result)
}
