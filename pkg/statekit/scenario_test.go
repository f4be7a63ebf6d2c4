package statekit_test

import (
	"reflect"
	"testing"

	"github.com/statekit-dev/statekit/pkg/sktest"
	"github.com/statekit-dev/statekit/pkg/statekit"
)

func TestComponentRerendersOnWrite(t *testing.T) {
	store := statekit.NewStore()

	var observed any
	c := sktest.Mount(func() {
		observed, _ = store.Use("NEW_KEY", "initialValue")
	})

	if observed != "initialValue" {
		t.Fatalf("observed %v on mount, want initialValue", observed)
	}
	if got := c.RenderCount(); got != 1 {
		t.Fatalf("render count after mount = %d, want 1", got)
	}

	store.Set("NEW_KEY", "updatedValue")

	if !c.Dirty() {
		t.Fatal("component not marked dirty by write")
	}
	if got := c.Flush(); got != 1 {
		t.Errorf("flush performed %d renders, want exactly 1", got)
	}
	if observed != "updatedValue" {
		t.Errorf("observed %v after re-render, want updatedValue", observed)
	}

	// Nothing further pending.
	if got := c.Flush(); got != 0 {
		t.Errorf("second flush performed %d renders, want 0", got)
	}
}

func TestComponentObservesMergedRecord(t *testing.T) {
	store := statekit.NewStore()
	store.Init(map[string]any{"CURRENT_FOLDER": map[string]any{"items": map[string]any{}}})

	var observed any
	var setFolder func(any)
	c := sktest.Mount(func() {
		observed, setFolder = store.Use("CURRENT_FOLDER", nil)
	})

	setFolder(map[string]any{"items": map[string]any{"newItem": true}})
	c.Flush()

	want := map[string]any{"items": map[string]any{"newItem": true}}
	if !reflect.DeepEqual(observed, want) {
		t.Errorf("observed %v, want %v (nested map replaced wholesale)", observed, want)
	}
}

func TestUnmountedComponentNotNotified(t *testing.T) {
	store := statekit.NewStore()

	c := sktest.Mount(func() {
		store.Use("K", 0)
	})
	c.Unmount()

	store.Set("K", 1) // must not crash or re-render the torn-down instance

	if c.Dirty() {
		t.Error("unmounted component marked dirty")
	}
	if got := c.RenderCount(); got != 1 {
		t.Errorf("render count after unmount = %d, want 1", got)
	}
	if got := store.ListenerCount("K"); got != 0 {
		t.Errorf("listener count after unmount = %d, want 0", got)
	}
}

func TestUnmountBeforeCommit(t *testing.T) {
	store := statekit.NewStore()

	c := sktest.MountDeferred(func() {
		store.Use("K", 0)
	})
	c.Unmount() // activation aborted before the commit step

	store.Set("K", 1)
	if c.Dirty() {
		t.Error("component notified despite never committing")
	}
	if got := store.ListenerCount("K"); got != 0 {
		t.Errorf("listener count = %d, want 0", got)
	}
}

func TestTwoComponentsShareKey(t *testing.T) {
	store := statekit.NewStore()

	var a, b any
	ca := sktest.Mount(func() { a, _ = store.Use("SHARED", 0) })
	cb := sktest.Mount(func() { b, _ = store.Use("SHARED", 0) })

	store.Set("SHARED", 7)
	ca.Flush()
	cb.Flush()

	if a != 7 || b != 7 {
		t.Errorf("observed a=%v b=%v, want both 7", a, b)
	}
}

func TestComponentKeyChange(t *testing.T) {
	store := statekit.NewStore()

	key := "A"
	var observed any
	c := sktest.Mount(func() {
		observed, _ = store.Use(key, "default")
	})

	// The host re-renders with a different key; the subscription must move.
	key = "B"
	store.Set("A", "a2") // triggers the re-render that picks up the new key
	c.Flush()

	if observed != "default" {
		t.Errorf("observed %v after key change, want B's default", observed)
	}
	if got := store.ListenerCount("A"); got != 0 {
		t.Errorf("stale listener on A: count = %d, want 0", got)
	}

	store.Set("A", "a3")
	if c.Dirty() {
		t.Error("write to old key still notifies the component")
	}
	store.Set("B", "b2")
	if !c.Dirty() {
		t.Error("write to new key does not notify the component")
	}
	c.Flush()
	if observed != "b2" {
		t.Errorf("observed %v, want b2", observed)
	}
}
