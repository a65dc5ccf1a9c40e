package runtime

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const meterName = "github.com/databendlabs/databend-base/base/runtime"

var (
	panicCounter     metric.Int64Counter
	panicCounterOnce sync.Once
)

// recordPanicMetric increments the recovered-panic counter. Metric creation
// errors are ignored; a metrics failure must never mask the panic being
// reported.
func recordPanicMetric(ctx context.Context, name string) {
	panicCounterOnce.Do(func() {
		counter, err := otel.Meter(meterName).Int64Counter(
			"panic_recovered_total",
			metric.WithUnit("1"),
			metric.WithDescription("Total number of recovered panics"),
		)
		if err == nil {
			panicCounter = counter
		}
	})

	if panicCounter == nil {
		return
	}

	panicCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", name),
	))
}

// recordPanicToSpan attaches the panic as an event on the active span, if any.
func recordPanicToSpan(ctx context.Context, panicValue any, stack []byte, name string) {
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.AddEvent("panic_recovered", trace.WithAttributes(
		attribute.String("source", name),
		attribute.String("panic.value", PanicError(panicValue).Error()),
		attribute.String("panic.stack", string(stack)),
	))
}
