// Package history provides bounded undo/redo state for an editing session.
//
// Two layers are available:
//
// Stack is a generic dual-stack of full states (the editor snapshots whole
// document contents). Saving a new state invalidates the redo side, which
// is only meaningful until the next fresh edit. Both sides are bounded by
// a fixed capacity with oldest-first eviction, so memory stays constant no
// matter how long a session runs.
//
// Log records structured edit actions (insert/delete of one character at
// an offset) instead of snapshots, and can group a run of actions into a
// single logical undo unit. Group collapse keeps only the last action of
// the group; this intentionally matches the historical behavior rather
// than replaying the whole group.
//
// Nothing in this package returns errors: an empty stack is an expected
// steady state, reported through a boolean, not an exceptional one.
package history
