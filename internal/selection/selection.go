package selection

import "fmt"

// SelectionState describes a selection as an anchor point and a focus point.
// SelectionState is an immutable value type; all modifiers return new values.
type SelectionState struct {
	anchorKey    string
	anchorOffset int
	focusKey     string
	focusOffset  int
	backward     bool
	hasFocus     bool
}

// Collapsed creates a collapsed selection at the given block key and offset.
func Collapsed(key string, offset int) SelectionState {
	if offset < 0 {
		offset = 0
	}
	return SelectionState{
		anchorKey:    key,
		anchorOffset: offset,
		focusKey:     key,
		focusOffset:  offset,
	}
}

// Between creates a selection from an anchor point to a focus point.
// The backward flag must be true when the focus point precedes the anchor
// point in document order.
func Between(anchorKey string, anchorOffset int, focusKey string, focusOffset int, backward bool) SelectionState {
	if anchorOffset < 0 {
		anchorOffset = 0
	}
	if focusOffset < 0 {
		focusOffset = 0
	}
	return SelectionState{
		anchorKey:    anchorKey,
		anchorOffset: anchorOffset,
		focusKey:     focusKey,
		focusOffset:  focusOffset,
		backward:     backward,
	}
}

// AnchorKey returns the key of the block containing the anchor.
func (s SelectionState) AnchorKey() string { return s.anchorKey }

// AnchorOffset returns the character offset of the anchor within its block.
func (s SelectionState) AnchorOffset() int { return s.anchorOffset }

// FocusKey returns the key of the block containing the focus.
func (s SelectionState) FocusKey() string { return s.focusKey }

// FocusOffset returns the character offset of the focus within its block.
func (s SelectionState) FocusOffset() int { return s.focusOffset }

// IsBackward reports whether the focus precedes the anchor in document order.
func (s SelectionState) IsBackward() bool { return s.backward }

// HasFocus reports whether the selection's owner currently holds input focus.
func (s SelectionState) HasFocus() bool { return s.hasFocus }

// IsCollapsed reports whether anchor and focus refer to the same position.
func (s SelectionState) IsCollapsed() bool {
	return s.anchorKey == s.focusKey && s.anchorOffset == s.focusOffset
}

// StartKey returns the key of the earlier endpoint in document order.
func (s SelectionState) StartKey() string {
	if s.backward {
		return s.focusKey
	}
	return s.anchorKey
}

// StartOffset returns the offset of the earlier endpoint in document order.
func (s SelectionState) StartOffset() int {
	if s.backward {
		return s.focusOffset
	}
	return s.anchorOffset
}

// EndKey returns the key of the later endpoint in document order.
func (s SelectionState) EndKey() string {
	if s.backward {
		return s.anchorKey
	}
	return s.focusKey
}

// EndOffset returns the offset of the later endpoint in document order.
func (s SelectionState) EndOffset() int {
	if s.backward {
		return s.anchorOffset
	}
	return s.focusOffset
}

// WithFocus returns a copy with the hasFocus flag set.
func (s SelectionState) WithFocus(hasFocus bool) SelectionState {
	s.hasFocus = hasFocus
	return s
}

// CollapseToStart returns a collapsed selection at the earlier endpoint.
func (s SelectionState) CollapseToStart() SelectionState {
	c := Collapsed(s.StartKey(), s.StartOffset())
	c.hasFocus = s.hasFocus
	return c
}

// CollapseToEnd returns a collapsed selection at the later endpoint.
func (s SelectionState) CollapseToEnd() SelectionState {
	c := Collapsed(s.EndKey(), s.EndOffset())
	c.hasFocus = s.hasFocus
	return c
}

// Flip returns a selection with anchor and focus swapped and the backward
// flag inverted. A collapsed selection flips to itself.
func (s SelectionState) Flip() SelectionState {
	if s.IsCollapsed() {
		return s
	}
	return SelectionState{
		anchorKey:    s.focusKey,
		anchorOffset: s.focusOffset,
		focusKey:     s.anchorKey,
		focusOffset:  s.anchorOffset,
		backward:     !s.backward,
		hasFocus:     s.hasFocus,
	}
}

// Equal reports whether two selections are identical, including direction
// and focus flags.
func (s SelectionState) Equal(other SelectionState) bool {
	return s == other
}

// SameRange reports whether two selections cover the same span regardless
// of direction.
func (s SelectionState) SameRange(other SelectionState) bool {
	return s.StartKey() == other.StartKey() &&
		s.StartOffset() == other.StartOffset() &&
		s.EndKey() == other.EndKey() &&
		s.EndOffset() == other.EndOffset()
}

// String returns a human-readable representation of the selection.
func (s SelectionState) String() string {
	if s.IsCollapsed() {
		return fmt.Sprintf("Cursor(%s:%d)", s.anchorKey, s.anchorOffset)
	}
	dir := "forward"
	if s.backward {
		dir = "backward"
	}
	return fmt.Sprintf("Selection(%s:%d %s %s:%d)", s.anchorKey, s.anchorOffset, dir, s.focusKey, s.focusOffset)
}
