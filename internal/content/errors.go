package content

import "errors"

// Errors returned by content model operations.
var (
	// ErrBlockNotFound indicates a lookup for a key absent from the map.
	ErrBlockNotFound = errors.New("block not found")

	// ErrDuplicateKey indicates two blocks in one tree share a key.
	ErrDuplicateKey = errors.New("duplicate block key")

	// ErrDanglingParent indicates a parent key that resolves to no block.
	ErrDanglingParent = errors.New("parent key does not resolve")

	// ErrBadOrder indicates the map is not a valid pre-order flattening.
	ErrBadOrder = errors.New("block order is not a pre-order flattening")

	// ErrCharCountMismatch indicates a character list whose length differs
	// from the text's rune count.
	ErrCharCountMismatch = errors.New("character list length does not match text length")

	// ErrOffsetOutOfRange indicates a character offset outside a block's text.
	ErrOffsetOutOfRange = errors.New("offset out of range")
)
