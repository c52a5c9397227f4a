// Package registry implements the stateful registries of the monitoring
// core: persons, power-failure incidents and connected peer devices.
//
// Each registry exclusively owns its entity store behind its own RWMutex and
// returns entities as copies, never as live aliases into internal storage.
// Every mutation appends an audit event to the shared event log; failed
// operations append an Error event before the error is surfaced to the
// caller. The event log carries its own lock, so appends from inside a
// registry's critical section cannot deadlock.
package registry
