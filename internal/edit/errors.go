package edit

import "errors"

// Errors returned by edit operations.
var (
	// ErrSelectionNotCollapsed indicates an operation that requires a
	// collapsed selection received one with extent.
	ErrSelectionNotCollapsed = errors.New("selection range must be collapsed")

	// ErrEmptyFragment indicates an insertion with no blocks.
	ErrEmptyFragment = errors.New("fragment contains no blocks")

	// ErrTargetHasChildren indicates a multi-block insertion into a block
	// that has children, which cannot keep the map a valid pre-order
	// flattening.
	ErrTargetHasChildren = errors.New("cannot insert a multi-block fragment into a block with children")

	// ErrRangeSplitsTree indicates a removal range whose deletion would
	// orphan blocks outside the range.
	ErrRangeSplitsTree = errors.New("removal range splits the block tree")
)
