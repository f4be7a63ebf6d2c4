package sktest

import (
	"sync/atomic"

	"github.com/statekit-dev/statekit/pkg/statekit"
)

// maxFlushRenders bounds a single Flush so a component whose render writes
// its own subscribed key fails loudly instead of spinning forever.
const maxFlushRenders = 100

// Component is a mounted test component: a render function plus the Owner
// and Listener identity a real host would give it.
type Component struct {
	id     uint64
	render func()
	owner  *statekit.Owner

	dirty   atomic.Bool
	renders atomic.Int64
}

var _ statekit.Listener = (*Component)(nil)

// Mount renders fn as a new root component and commits its subscriptions,
// the way a host commits after the first render.
func Mount(fn func()) *Component {
	c := &Component{
		id:     statekit.NextListenerID(),
		render: fn,
		owner:  statekit.NewOwner(nil),
	}
	c.renderOnce()
	c.owner.RunPendingMounts()
	return c
}

// MountDeferred renders fn but does not commit subscriptions; the caller
// drives the commit via Owner().RunPendingMounts. Used to test behavior
// between render and commit (e.g. unmount before the commit point).
func MountDeferred(fn func()) *Component {
	c := &Component{
		id:     statekit.NextListenerID(),
		render: fn,
		owner:  statekit.NewOwner(nil),
	}
	c.renderOnce()
	return c
}

// MarkDirty implements statekit.Listener. It only flags the component;
// the new value is observed on the next render, not captured here.
func (c *Component) MarkDirty() {
	c.dirty.Store(true)
}

// ID implements statekit.Listener.
func (c *Component) ID() uint64 {
	return c.id
}

// renderOnce performs one render pass under this component's tracking
// context, clearing the dirty flag first so writes during notification
// re-flag it.
func (c *Component) renderOnce() {
	c.dirty.Store(false)
	c.renders.Add(1)

	statekit.WithOwner(c.owner, func() {
		c.owner.StartRender()
		statekit.WithListener(c, func() {
			c.render()
		})
	})
}

// Flush re-renders while the component is dirty, committing queued
// subscription changes after each pass, and returns the number of renders
// performed. It panics after maxFlushRenders passes (a render loop).
func (c *Component) Flush() int {
	n := 0
	for c.dirty.Load() && !c.owner.IsDisposed() {
		if n >= maxFlushRenders {
			panic("sktest: render loop, component still dirty after 100 renders")
		}
		c.renderOnce()
		c.owner.RunPendingMounts()
		n++
	}
	return n
}

// Dirty reports whether a subscribed key changed since the last render.
func (c *Component) Dirty() bool {
	return c.dirty.Load()
}

// RenderCount returns how many times the component has rendered,
// including the mount render.
func (c *Component) RenderCount() int {
	return int(c.renders.Load())
}

// Owner exposes the component's scope, for tests that drive the commit or
// inspect disposal directly.
func (c *Component) Owner() *statekit.Owner {
	return c.owner
}

// Unmount disposes the component's Owner, removing its subscriptions.
func (c *Component) Unmount() {
	c.owner.Dispose()
}
