package statekit

import "sync"

// defaultStore backs the package-level convenience functions. Most
// applications want exactly one registry; libraries that need isolation
// create their own Store.
var (
	defaultMu    sync.RWMutex
	defaultStore = NewStore()
)

// Default returns the store used by the package-level functions.
func Default() *Store {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultStore
}

// SetDefault replaces the store used by the package-level functions.
// Call it at application start, before any subscriptions exist, typically
// to install a store configured with WithMetrics or WithTracer.
func SetDefault(s *Store) {
	if s == nil {
		return
	}
	defaultMu.Lock()
	defaultStore = s
	defaultMu.Unlock()
}

// Init registers defaults on the default store. See Store.Init.
func Init(defaults map[string]any) {
	Default().Init(defaults)
}

// Get reads key from the default store. See Store.Get.
func Get(key string) any {
	return Default().Get(key)
}

// Set writes key on the default store. See Store.Set.
func Set(key string, value any) {
	Default().Set(key, value)
}

// Use subscribes the current component to key on the default store.
// See Store.Use.
func Use(key string, initial any) (any, func(any)) {
	return Default().Use(key, initial)
}

// Reset clears the default store. Meant for test isolation.
func Reset() {
	Default().Reset()
}
