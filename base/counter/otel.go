package counter

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Otel adapts an OpenTelemetry up-down counter into a Counter. The given
// attributes are attached to every measurement.
func Otel(counter metric.Int64UpDownCounter, attrs ...attribute.KeyValue) Counter {
	opts := []metric.AddOption{metric.WithAttributes(attrs...)}

	return Func(func(n int64) {
		counter.Add(context.Background(), n, opts...)
	})
}
