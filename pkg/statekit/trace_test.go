package statekit

import "testing"

func TestWithTracerDefaultsName(t *testing.T) {
	wt := newWriteTracer("")
	if wt.tracer == nil {
		t.Fatal("expected tracer resolved from global provider")
	}
}

func TestTracedWrites(t *testing.T) {
	// The global provider defaults to no-op; the span path must still work.
	s := NewStore(WithTracer("statekit-test"))
	s.Init(map[string]any{"K": map[string]any{"a": 1}})

	l := newTestListener()
	s.subscribe("K", l)

	s.Set("K", map[string]any{"b": 2})
	s.Set("MISSING", 1)

	if got := l.dirtyCount(); got != 1 {
		t.Errorf("notified %d times, want 1", got)
	}
}

func TestNilTracerIsNoop(t *testing.T) {
	var wt *writeTracer
	end := wt.startWrite("K")
	end(strategyReplace, 0) // must not panic
}
