package statekit

// binding is one component instance's subscription to one key. It lives in
// a hook slot so the same instance is returned on every render, giving the
// subscription stable identity.
type binding struct {
	store    *Store
	key      string
	listener Listener

	// subscribed is true once the commit added the listener to the key's
	// listener set. Mutated only on the host's render/commit path.
	subscribed bool
}

// Use reads key for the current component and subscribes it to changes.
// It returns the current value and a setter bound to the key, equivalent to
// calling Set directly.
//
// The entry for key is created if missing, seeded with initial (an existing
// entry whose value is nil is also backfilled with initial). The listener
// registered by the host via WithListener is added to the key's listener
// set once the render commits (Owner.RunPendingMounts), never mid-render,
// and exactly once per component instance: re-renders reuse the binding
// stored in the hook slot. Requesting a different key on a later render
// unsubscribes from the old key before the new subscription is queued, and
// disposing the Owner removes the subscription unconditionally.
//
// Outside a render (no current Owner), Use degrades to an ensure-and-read
// with no subscription.
func (s *Store) Use(key string, initial any) (any, func(any)) {
	s.ensure(key, initial)

	if owner := getCurrentOwner(); owner != nil {
		b, ok := owner.UseHookSlot().(*binding)
		if !ok {
			// First render: bind this instance to the key.
			b = &binding{store: s, key: key, listener: getCurrentListener()}
			owner.SetHookSlot(b)
			owner.OnCleanup(b.release)
			b.queueMount(owner)
		} else if b.key != key {
			b.rehome(owner, key)
		}
	}

	set := func(value any) {
		s.Set(key, value)
	}
	return s.Get(key), set
}

// queueMount schedules the commit that adds the binding's listener to its
// key. The commit re-checks the key so a rehome between render and commit
// cancels the stale mount.
func (b *binding) queueMount(owner *Owner) {
	key := b.key
	owner.scheduleMount(func() {
		if b.key != key {
			return
		}
		b.store.subscribe(key, b.listener)
		b.subscribed = true
	})
}

// rehome moves the binding to a new key: the old subscription is removed
// immediately and a commit for the new key is queued.
func (b *binding) rehome(owner *Owner, key string) {
	if b.subscribed {
		b.store.unsubscribe(b.key, b.listener)
		b.subscribed = false
	}
	b.key = key
	b.queueMount(owner)
}

// release removes the subscription when the owning component is torn down.
// Unsubscribing is a no-op if the commit never ran.
func (b *binding) release() {
	b.store.unsubscribe(b.key, b.listener)
	b.subscribed = false
}
