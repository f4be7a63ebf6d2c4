package statekit

// Listener is anything that can be notified when a key it subscribes to
// is written. For components, MarkDirty schedules a re-render; the listener
// re-reads the store on that render rather than receiving the value here.
type Listener interface {
	// MarkDirty notifies the listener that a subscribed key has changed.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used to deduplicate membership in a key's listener set.
	ID() uint64
}

// funcListener adapts a plain callback to the Listener interface.
type funcListener struct {
	id uint64
	fn func()
}

// ListenerFunc wraps fn as a Listener with a fresh identity.
func ListenerFunc(fn func()) Listener {
	return &funcListener{id: nextID(), fn: fn}
}

func (l *funcListener) MarkDirty() { l.fn() }

func (l *funcListener) ID() uint64 { return l.id }
