package statekit

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestStoreMetricsRecordWrites(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewStore(WithMetrics(reg))

	s.Set("K", map[string]any{"a": 1}) // create: replace, no listeners
	s.Set("K", map[string]any{"b": 2}) // merge
	s.Set("K", "scalar")               // replace

	m := s.metrics
	if got := metricCounterValue(t, m.writes.WithLabelValues("K", "replace")); got != 2 {
		t.Errorf("writes_total(K,replace) = %v, want 2", got)
	}
	if got := metricCounterValue(t, m.writes.WithLabelValues("K", "merge")); got != 1 {
		t.Errorf("writes_total(K,merge) = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.writeDuration); got != 3 {
		t.Errorf("write_duration_seconds count = %v, want 3", got)
	}
}

func TestStoreMetricsNotificationsAndListeners(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewStore(WithMetrics(reg))
	s.Init(map[string]any{"K": 0})

	l1 := newTestListener()
	l2 := newTestListener()
	s.subscribe("K", l1)
	s.subscribe("K", l2)
	s.subscribe("K", l2) // deduplicated, not counted twice

	m := s.metrics
	if got := metricGaugeValue(t, m.listeners); got != 2 {
		t.Errorf("listeners gauge = %v, want 2", got)
	}

	s.Set("K", 1)
	if got := metricCounterValue(t, m.notifications); got != 2 {
		t.Errorf("notifications_total = %v, want 2", got)
	}

	s.unsubscribe("K", l1)
	if got := metricGaugeValue(t, m.listeners); got != 1 {
		t.Errorf("listeners gauge after unsubscribe = %v, want 1", got)
	}
}

func TestStoreWithoutMetrics(t *testing.T) {
	// Nil instruments must be a no-op on every path.
	s := NewStore()
	s.Init(map[string]any{"K": 0})
	l := newTestListener()
	s.subscribe("K", l)
	s.Set("K", 1)
	s.unsubscribe("K", l)

	if got := s.Get("K"); got != 1 {
		t.Errorf("Get = %v, want 1", got)
	}
}
