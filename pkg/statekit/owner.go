package statekit

import (
	"sync"
	"sync/atomic"
)

// Owner represents a component scope. It holds the hook slots that give
// subscriptions stable identity across renders, the queue of subscription
// commits pending after the current render, and the cleanups that run when
// the scope is torn down.
//
// Owners form a hierarchy mirroring the component tree: disposing an Owner
// disposes its children first, then runs its cleanups in reverse order.
// Disposal is terminal; a disposed Owner cannot be reused.
type Owner struct {
	id uint64

	// parent is the parent Owner in the hierarchy, nil for a root.
	parent *Owner

	children   []*Owner
	childrenMu sync.Mutex

	// cleanups run in reverse order on Dispose.
	cleanups   []func()
	cleanupsMu sync.Mutex

	// pendingMounts are subscription commits queued during render and
	// flushed by RunPendingMounts after the render completes.
	pendingMounts   []func()
	pendingMountsMu sync.Mutex

	// Hook slot storage for stable identity across renders.
	hookSlots   []any
	hookSlotIdx int

	disposed atomic.Bool
}

// NewOwner creates a new Owner with the given parent.
// The new Owner is registered as a child of the parent.
// If parent is nil, creates a root Owner.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		parent.addChild(o)
	}

	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent Owner, or nil if this is a root Owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed returns true if this Owner has been disposed.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// OnCleanup registers a function to run when this Owner is disposed.
// If the Owner is already disposed, the function runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}

	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// scheduleMount queues a subscription commit to run at the next
// RunPendingMounts. Mounts queued on a disposed Owner are dropped.
func (o *Owner) scheduleMount(fn func()) {
	if o.disposed.Load() {
		return
	}

	o.pendingMountsMu.Lock()
	defer o.pendingMountsMu.Unlock()
	o.pendingMounts = append(o.pendingMounts, fn)
}

// RunPendingMounts executes queued subscription commits for this Owner and
// its children. The host calls this once the render that queued them has
// committed; subscriptions therefore never take effect mid-render.
func (o *Owner) RunPendingMounts() {
	if o.disposed.Load() {
		return
	}

	o.pendingMountsMu.Lock()
	mounts := o.pendingMounts
	o.pendingMounts = nil
	o.pendingMountsMu.Unlock()

	for _, fn := range mounts {
		fn()
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.childrenMu.Unlock()

	for _, child := range children {
		child.RunPendingMounts()
	}
}

// StartRender resets the hook slot index. The host calls this at the
// beginning of every render of the component this Owner belongs to.
func (o *Owner) StartRender() {
	o.hookSlotIdx = 0
}

// UseHookSlot returns the stored value for the current hook slot, or nil on
// the first render. On nil the caller creates its state and stores it with
// SetHookSlot; subsequent renders then get the same instance back, provided
// hooks are called in a stable order.
func (o *Owner) UseHookSlot() any {
	idx := o.hookSlotIdx
	o.hookSlotIdx++

	if idx < len(o.hookSlots) {
		return o.hookSlots[idx]
	}
	return nil
}

// SetHookSlot stores a value in the current hook slot.
// Must be called after UseHookSlot returned nil (first render).
func (o *Owner) SetHookSlot(value any) {
	o.hookSlots = append(o.hookSlots, value)
}

// Dispose tears down this Owner: children are disposed in reverse order,
// then cleanups run in reverse order, and pending mounts are dropped.
// Dispose is idempotent.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.pendingMountsMu.Lock()
	o.pendingMounts = nil
	o.pendingMountsMu.Unlock()
}
