// Package devtools exposes a read-only HTTP inspector for a statekit.Store.
//
// Handler serves the registered keys and their current values as JSON;
// Stream upgrades to a WebSocket and pushes a message for every write to
// the keys the client asked to watch. Neither endpoint mutates the store,
// and nothing here persists or syncs state; it is observability tooling
// for development and dashboards.
//
// Mount both under a router of your choice:
//
//	r := chi.NewRouter()
//	r.Mount("/debug/state", devtools.Handler(store))
//	r.Handle("/debug/state/stream", devtools.Stream(store))
package devtools
