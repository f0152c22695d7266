// Package server implements the DICT protocol network layer: a TCP
// listener, one session goroutine per connection, and the per-session
// state machine that parses commands, runs lookups against a shared
// read-only registry snapshot, and renders responses.
//
// Sessions are fully independent. A misbehaving or disconnecting client
// terminates only its own session; responses within one session are
// emitted strictly in command order, and no ordering exists across
// sessions. Stopping the server cancels every session's context and
// closes its connection, which unblocks pending reads and writes.
package server
