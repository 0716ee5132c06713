package content

import (
	"fmt"

	"github.com/dshills/richdoc/internal/selection"
)

// ContentState pairs an immutable block map with the selection it was
// computed against (selectionBefore) and the selection it produced
// (selectionAfter). Transactions consume one state and return another; the
// consumed state remains a valid snapshot.
type ContentState struct {
	blockMap        *BlockMap
	selectionBefore selection.SelectionState
	selectionAfter  selection.SelectionState
}

// NewContentState creates a state with the given map and a selection that is
// both the before and after selection.
func NewContentState(m *BlockMap, sel selection.SelectionState) *ContentState {
	return &ContentState{blockMap: m, selectionBefore: sel, selectionAfter: sel}
}

// NewContentStateFromBlocks builds a validated map from blocks and pairs it
// with a selection collapsed at the start of the first block.
func NewContentStateFromBlocks(blocks []*ContentBlock) (*ContentState, error) {
	m, err := NewBlockMap(blocks)
	if err != nil {
		return nil, err
	}
	var sel selection.SelectionState
	if first := m.First(); first != nil {
		sel = selection.Collapsed(first.Key(), 0)
	}
	return NewContentState(m, sel), nil
}

// BlockMap returns the state's block map.
func (s *ContentState) BlockMap() *BlockMap { return s.blockMap }

// SelectionBefore returns the selection this state was computed against.
func (s *ContentState) SelectionBefore() selection.SelectionState { return s.selectionBefore }

// SelectionAfter returns the selection produced alongside this state.
func (s *ContentState) SelectionAfter() selection.SelectionState { return s.selectionAfter }

// WithSelections returns a state sharing this state's map with the given
// before/after selections.
func (s *ContentState) WithSelections(before, after selection.SelectionState) *ContentState {
	return &ContentState{blockMap: s.blockMap, selectionBefore: before, selectionAfter: after}
}

// WithBlockMap returns a state with a different map and the same selections.
func (s *ContentState) WithBlockMap(m *BlockMap) *ContentState {
	return &ContentState{blockMap: m, selectionBefore: s.selectionBefore, selectionAfter: s.selectionAfter}
}

// ValidateSelection checks that both endpoints of sel resolve to blocks in
// the map and that their offsets lie within those blocks' text.
func (m *BlockMap) ValidateSelection(sel selection.SelectionState) error {
	anchor, err := m.Get(sel.AnchorKey())
	if err != nil {
		return fmt.Errorf("selection anchor: %w", err)
	}
	if sel.AnchorOffset() > anchor.Len() {
		return fmt.Errorf("selection anchor %s:%d (len %d): %w",
			sel.AnchorKey(), sel.AnchorOffset(), anchor.Len(), ErrOffsetOutOfRange)
	}
	focus, err := m.Get(sel.FocusKey())
	if err != nil {
		return fmt.Errorf("selection focus: %w", err)
	}
	if sel.FocusOffset() > focus.Len() {
		return fmt.Errorf("selection focus %s:%d (len %d): %w",
			sel.FocusKey(), sel.FocusOffset(), focus.Len(), ErrOffsetOutOfRange)
	}
	return nil
}
