// Package statekit provides a process-wide keyed state registry with
// listener subscriptions for server-driven UI components.
//
// A Store maps opaque string keys to values. Components subscribe to a key
// and are marked dirty whenever that key is written; on their next render
// they re-read the current value from the store. Writes over an existing
// record value are shallow-merged one level deep; everything else is
// replaced wholesale.
//
// # Core Operations
//
//	store := statekit.NewStore()
//	store.Init(map[string]any{"THEME": "dark"})
//	theme := store.Get("THEME")          // Read (nil if the key is unknown)
//	store.Set("THEME", "light")          // Write (notifies subscribers)
//
// # Component Subscriptions
//
// Inside a component render (established by the host via WithOwner and
// WithListener), Use returns the current value and a bound setter:
//
//	theme, setTheme := store.Use("THEME", "dark")
//	...
//	setTheme("light")  // re-renders every component subscribed to THEME
//
// The subscription is committed after the render completes (the host calls
// Owner.RunPendingMounts) and removed when the owner is disposed. Re-renders
// of the same instance never double-subscribe, and requesting a different
// key moves the subscription without leaking the old one.
//
// # Thread Safety
//
// The intended host is a single render/event loop, but the Store guards all
// shared structures and notifies listeners outside its locks, so a listener
// that writes back into the store cannot deadlock. The tracking context is
// per-goroutine; propagate it explicitly with WithOwner when spawning.
package statekit
