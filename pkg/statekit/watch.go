package statekit

import "sync"

// Watch invokes fn(key) whenever one of keys is written, until the returned
// stop function is called. Entries for unknown keys are created.
//
// fn runs synchronously on the writer's goroutine, inside the write's
// notification pass; it must not block and must not write the watched keys
// without its own re-entrancy guard. Hand off to a channel for anything
// slow (the devtools stream does exactly that).
//
// Stop is idempotent and removes every listener Watch added.
func (s *Store) Watch(keys []string, fn func(key string)) (stop func()) {
	listeners := make([]Listener, len(keys))
	for i, key := range keys {
		key := key
		l := ListenerFunc(func() { fn(key) })
		s.subscribe(key, l)
		listeners[i] = l
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i, key := range keys {
				s.unsubscribe(key, listeners[i])
			}
		})
	}
}
