// Package selection provides the SelectionState value type: an immutable
// description of a document selection as an anchor point and a focus point,
// each addressed by block key and character offset.
//
// A selection is "collapsed" when anchor and focus coincide, and "backward"
// when the focus precedes the anchor in document order. Because the package
// has no knowledge of block ordering, the backward flag is supplied by the
// caller that constructed the selection; the Start*/End* accessors normalize
// using that flag.
//
// A SelectionState is always computed against one specific content snapshot.
// Offsets are only meaningful for that snapshot; callers must discard or
// revalidate selections once the content they were computed against has been
// superseded. Validation against a concrete block map lives in the content
// package to keep this package dependency-free.
package selection
