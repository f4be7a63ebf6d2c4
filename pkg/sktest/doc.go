// Package sktest provides a minimal component host for exercising statekit
// subscriptions in tests.
//
// It plays the role of the UI runtime: each mounted component gets an
// Owner, renders inside WithOwner/WithListener, and has its queued
// subscription commits flushed after the render. Writes that touch a
// subscribed key mark the component dirty; Flush re-renders it.
//
// Example:
//
//	c := sktest.Mount(func() {
//	    value, _ = store.Use("THEME", "dark")
//	})
//	store.Set("THEME", "light")
//	c.Flush()                       // one re-render, value == "light"
//	c.Unmount()                     // subscription removed
package sktest
