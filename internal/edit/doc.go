// Package edit implements the transactional operations of the document
// engine. Every operation is a pure function from a ContentState and a
// SelectionState to a new ContentState; inputs are never mutated, and a
// failed operation returns an error before any new tree has been produced,
// so there is no partially-updated state to observe.
//
// Operations that require a collapsed selection (SplitBlock, InsertFragment,
// InsertText) fail with ErrSelectionNotCollapsed rather than coercing the
// selection. Structural problems discovered while assembling the new tree
// (dangling parents, duplicate keys, broken ordering) surface as the content
// package's sentinel errors; they indicate a bug in the caller, not a
// recoverable condition.
//
// The returned state's SelectionAfter carries the computed post-edit
// selection; SelectionBefore carries the selection the operation consumed.
package edit
