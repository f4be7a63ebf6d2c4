package statekit

import (
	"runtime"
	"sync"
)

// trackingContext holds the render state for a goroutine: which Owner new
// hook state belongs to and which Listener a subscription should notify.
// Each goroutine has its own context so concurrent hosts don't interleave.
type trackingContext struct {
	currentOwner    *Owner
	currentListener Listener
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID returns a unique identifier for the current goroutine,
// parsed from the runtime stack header ("goroutine <id> ...").
// This is an implementation detail and must not leak out of the package.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // Skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func getTrackingContext() *trackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}

	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

func getCurrentOwner() *Owner {
	return getTrackingContext().currentOwner
}

func setCurrentOwner(o *Owner) *Owner {
	ctx := getTrackingContext()
	old := ctx.currentOwner
	ctx.currentOwner = o
	return old
}

func getCurrentListener() Listener {
	return getTrackingContext().currentListener
}

func setCurrentListener(l Listener) Listener {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	return old
}

// WithOwner runs fn with the given Owner as the current owner. Hook state
// created inside fn belongs to that Owner. Hosts wrap each component render
// in WithOwner; goroutines spawned from a render must do the same to keep
// ownership, since the tracking context is per-goroutine.
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}

// WithListener runs fn with the given Listener as the re-render trigger for
// subscriptions made inside fn. Hosts set this to the component instance
// being rendered.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}
