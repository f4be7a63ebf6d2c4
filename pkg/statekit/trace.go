package statekit

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// defaultTracerName is the tracer name used when WithTracer gets "".
const defaultTracerName = "statekit"

// writeTracer emits one span per store write.
// All methods are nil-safe so an unconfigured store pays no cost.
type writeTracer struct {
	tracer trace.Tracer
}

// newWriteTracer resolves a tracer from the global OpenTelemetry provider.
func newWriteTracer(name string) *writeTracer {
	if name == "" {
		name = defaultTracerName
	}
	return &writeTracer{tracer: otel.Tracer(name)}
}

// startWrite opens a span for a write to key. The returned function ends
// the span, recording the resolved merge strategy and how many listeners
// were notified.
func (t *writeTracer) startWrite(key string) func(strategy string, notified int) {
	if t == nil {
		return func(string, int) {}
	}

	_, span := t.tracer.Start(context.Background(), "statekit.write",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithTimestamp(time.Now()),
		trace.WithAttributes(attribute.String("statekit.key", key)),
	)

	return func(strategy string, notified int) {
		span.SetAttributes(
			attribute.String("statekit.strategy", strategy),
			attribute.Int("statekit.notified", notified),
		)
		span.End()
	}
}
