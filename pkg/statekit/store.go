package statekit

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

// entry is one registered key: its current value and the set of listeners
// interested in it. Membership in listeners is deduplicated by listener ID;
// order carries no meaning.
type entry struct {
	value     any
	listeners []Listener
}

// Store is a keyed registry of shared state. Entries are created on first
// write, first subscription, or explicit Init, and live for the lifetime of
// the store. The zero value is not usable; call NewStore.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry

	logger  *slog.Logger
	metrics *storeMetrics
	tracer  *writeTracer
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init registers defaults for many keys at once. Each entry is created or
// overwritten with the given value and an empty listener set. Intended to
// run once at application start, before any subscriptions exist; running it
// later discards the listener sets of the keys it touches.
func (s *Store) Init(defaults map[string]any) {
	s.mu.Lock()
	for key, value := range defaults {
		s.entries[key] = &entry{value: value}
	}
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Debug("store initialized", "keys", len(defaults))
	}
}

// Get returns the current value for key, or nil if the key has never been
// registered. Reading never creates an entry. Structured values are returned
// as stored; callers must not assume immutability.
func (s *Store) Get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return nil
	}
	return e.value
}

// Lookup returns the current value for key and whether the key is registered.
// Unlike Get it distinguishes a stored nil from a missing entry.
func (s *Store) Lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set writes a value to key and synchronously notifies every listener of
// that key. If the key is unregistered, the entry is created with the value
// as-is and no merge is attempted. Otherwise the stored value becomes
// Merge(current, value).
//
// Listeners are notified after the value is stored and before Set returns,
// in unspecified order. Notification happens outside the store's locks, so
// a listener may re-enter the store (including writing the same key);
// guarding against notification loops is the caller's responsibility.
func (s *Store) Set(key string, value any) {
	start := time.Now()
	end := s.tracer.startWrite(key)

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.entries[key] = &entry{value: value}
		s.mu.Unlock()

		s.metrics.recordWrite(key, strategyReplace, 0)
		s.metrics.observeWriteDuration(time.Since(start).Seconds())
		end(strategyReplace, 0)
		if s.logger != nil {
			s.logger.Debug("store write", "key", key, "created", true)
		}
		return
	}

	merged, strategy := mergeWithStrategy(e.value, value)
	e.value = merged

	// Copy before notify so re-entrant writes cannot deadlock and
	// mid-notification subscription changes are not observed.
	subs := make([]Listener, len(e.listeners))
	copy(subs, e.listeners)
	s.mu.Unlock()

	for _, l := range subs {
		l.MarkDirty()
	}

	s.metrics.recordWrite(key, strategy, len(subs))
	s.metrics.observeWriteDuration(time.Since(start).Seconds())
	end(strategy, len(subs))
	if s.logger != nil {
		s.logger.Debug("store write", "key", key, "strategy", strategy, "notified", len(subs))
	}
}

// ensure makes sure an entry exists for key. A missing entry is created
// with initial; an existing entry with a nil value is backfilled with
// initial. The listener set is left untouched: subscription happens at the
// commit point, not here.
func (s *Store) ensure(key string, initial any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		s.entries[key] = &entry{value: initial}
		return
	}
	if e.value == nil {
		e.value = initial
	}
}

// subscribe adds a listener to key's listener set, creating the entry if
// needed. Adding the same listener twice is a no-op.
func (s *Store) subscribe(key string, l Listener) {
	if l == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}

	lid := l.ID()
	for _, existing := range e.listeners {
		if existing.ID() == lid {
			return
		}
	}
	e.listeners = append(e.listeners, l)
	s.metrics.listenerAdded()
}

// unsubscribe removes a listener from key's listener set.
// Removing a listener that is not subscribed is a no-op.
func (s *Store) unsubscribe(key string, l Listener) {
	if l == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return
	}

	lid := l.ID()
	for i, existing := range e.listeners {
		if existing.ID() == lid {
			// Remove by swapping with the last element (order doesn't matter)
			e.listeners[i] = e.listeners[len(e.listeners)-1]
			e.listeners = e.listeners[:len(e.listeners)-1]
			s.metrics.listenerRemoved()
			return
		}
	}
}

// Keys returns the registered keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the current key-to-value mapping.
// Values themselves are not copied.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[string]any, len(s.entries))
	for key, e := range s.entries {
		snap[key] = e.value
	}
	return snap
}

// ListenerCount returns the number of listeners subscribed to key.
func (s *Store) ListenerCount(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return 0
	}
	return len(e.listeners)
}

// Reset drops every entry and its listeners. Meant for test isolation;
// production stores never delete entries.
func (s *Store) Reset() {
	s.mu.Lock()
	s.entries = make(map[string]*entry)
	s.mu.Unlock()
}
