package statekit

import (
	"reflect"
	"testing"
)

// withFreshDefault swaps in an isolated default store for the test.
func withFreshDefault(t *testing.T) {
	t.Helper()
	old := Default()
	SetDefault(NewStore())
	t.Cleanup(func() { SetDefault(old) })
}

func TestDefaultStoreOperations(t *testing.T) {
	withFreshDefault(t)

	Init(map[string]any{"CURRENT_FOLDER": map[string]any{"items": map[string]any{}}})

	want := map[string]any{"items": map[string]any{}}
	if got := Get("CURRENT_FOLDER"); !reflect.DeepEqual(got, want) {
		t.Errorf("Get = %v, want %v", got, want)
	}

	Set("CURRENT_FOLDER", map[string]any{"flag": true})
	if got := Get("CURRENT_FOLDER"); !reflect.DeepEqual(got, map[string]any{"items": map[string]any{}, "flag": true}) {
		t.Errorf("Get after Set = %v", got)
	}

	Reset()
	if got := Get("CURRENT_FOLDER"); got != nil {
		t.Errorf("Get after Reset = %v, want nil", got)
	}
}

func TestDefaultStoreUse(t *testing.T) {
	withFreshDefault(t)

	o := NewOwner(nil)
	l := newTestListener()

	var got any
	renderWith(o, l, func() {
		got, _ = Use("K", "initialValue")
	})
	o.RunPendingMounts()

	if got != "initialValue" {
		t.Errorf("Use = %v, want initialValue", got)
	}
	Set("K", "updatedValue")
	if got := l.dirtyCount(); got != 1 {
		t.Errorf("notified %d times, want 1", got)
	}
}

func TestSetDefaultIgnoresNil(t *testing.T) {
	withFreshDefault(t)

	before := Default()
	SetDefault(nil)
	if Default() != before {
		t.Error("SetDefault(nil) replaced the default store")
	}
}
