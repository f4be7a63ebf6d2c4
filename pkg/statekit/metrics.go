package statekit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metricsNamespace is the Prometheus namespace for all store instruments.
const metricsNamespace = "statekit"

// storeMetrics holds the Prometheus instruments for one store.
// All methods are nil-safe so an unconfigured store pays no cost.
type storeMetrics struct {
	writes        *prometheus.CounterVec
	notifications prometheus.Counter
	listeners     prometheus.Gauge
	writeDuration prometheus.Histogram
}

// newStoreMetrics registers the store instruments on the given registry.
func newStoreMetrics(registry prometheus.Registerer) *storeMetrics {
	factory := promauto.With(registry)

	return &storeMetrics{
		writes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "writes_total",
			Help:      "Total number of store writes by key and merge strategy",
		}, []string{"key", "strategy"}),

		notifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "notifications_total",
			Help:      "Total number of listener notifications triggered by writes",
		}),

		listeners: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "listeners",
			Help:      "Number of currently subscribed listeners",
		}),

		writeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "write_duration_seconds",
			Help:      "Store write duration in seconds, including notification",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// recordWrite records one write and the notifications it caused.
func (m *storeMetrics) recordWrite(key, strategy string, notified int) {
	if m == nil {
		return
	}
	m.writes.WithLabelValues(key, strategy).Inc()
	if notified > 0 {
		m.notifications.Add(float64(notified))
	}
}

// observeWriteDuration records one write's latency in seconds.
func (m *storeMetrics) observeWriteDuration(seconds float64) {
	if m == nil {
		return
	}
	m.writeDuration.Observe(seconds)
}

// listenerAdded records a subscription.
func (m *storeMetrics) listenerAdded() {
	if m == nil {
		return
	}
	m.listeners.Inc()
}

// listenerRemoved records an unsubscription.
func (m *storeMetrics) listenerRemoved() {
	if m == nil {
		return
	}
	m.listeners.Dec()
}
