package statekit

import "sync/atomic"

// globalIDCounter is the source of unique IDs for owners and listeners.
// Using atomic operations ensures thread-safe ID generation without locks.
var globalIDCounter uint64

// nextID returns the next unique ID.
// IDs are monotonically increasing and never reused.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// NextListenerID returns a fresh listener ID from the package-wide sequence.
// Hosts that implement Listener themselves must draw their IDs from here so
// they never collide with IDs handed out inside the package.
func NextListenerID() uint64 {
	return nextID()
}
