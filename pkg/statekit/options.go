package statekit

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option is a functional option for configuring a Store.
type Option func(*Store)

// WithLogger attaches a structured logger. The store logs writes and
// initialization at debug level; without a logger it stays silent.
//
// Example:
//
//	store := statekit.NewStore(statekit.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics registers Prometheus instruments for the store on the given
// registry. Pass prometheus.DefaultRegisterer to use the default registry.
//
// Metrics collected:
//   - statekit_writes_total: Counter of writes by key and merge strategy
//   - statekit_notifications_total: Counter of listener notifications
//   - statekit_listeners: Gauge of currently subscribed listeners
//   - statekit_write_duration_seconds: Histogram of write latency
func WithMetrics(registry prometheus.Registerer) Option {
	return func(s *Store) {
		s.metrics = newStoreMetrics(registry)
	}
}

// WithTracer enables an OpenTelemetry span per write, resolved from the
// global tracer provider. An empty name uses the default tracer name.
// Configure the provider in main() before creating the store.
func WithTracer(name string) Option {
	return func(s *Store) {
		s.tracer = newWriteTracer(name)
	}
}
