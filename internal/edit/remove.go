package edit

import (
	"errors"

	"github.com/dshills/richdoc/internal/content"
	"github.com/dshills/richdoc/internal/selection"
)

// RemoveRange deletes the characters covered by the selection. Within one
// block this is a text splice; across blocks the start block absorbs the
// end block's remaining tail and every block in between is removed. The
// returned selection is collapsed at the cut point.
//
// A range whose removal would orphan blocks outside the range fails with
// ErrRangeSplitsTree before any new tree is produced.
func RemoveRange(st *content.ContentState, sel selection.SelectionState) (*content.ContentState, error) {
	m := st.BlockMap()
	if err := m.ValidateSelection(sel); err != nil {
		return nil, err
	}
	if sel.IsCollapsed() {
		after := sel
		return st.WithSelections(sel, after), nil
	}

	startKey, startOffset := sel.StartKey(), sel.StartOffset()
	endKey, endOffset := sel.EndKey(), sel.EndOffset()

	start, err := m.Get(startKey)
	if err != nil {
		return nil, err
	}

	if startKey == endKey {
		runes := start.TextRunes()
		text := string(runes[:startOffset]) + string(runes[endOffset:])
		chars := append(start.SliceChars(0, startOffset), start.SliceChars(endOffset, start.Len())...)
		updated, err := start.WithRichText(text, chars)
		if err != nil {
			return nil, err
		}
		next, err := m.Replace(updated)
		if err != nil {
			return nil, err
		}
		after := selection.Collapsed(startKey, startOffset).WithFocus(sel.HasFocus())
		return content.NewContentState(next, after).WithSelections(sel, after), nil
	}

	end, err := m.Get(endKey)
	if err != nil {
		return nil, err
	}

	startIdx, _ := m.IndexOf(startKey)
	endIdx, ok := m.IndexOf(endKey)
	if !ok || endIdx < startIdx {
		return nil, ErrRangeSplitsTree
	}

	// Merge the start block's head with the end block's tail.
	startRunes := start.TextRunes()
	endRunes := end.TextRunes()
	text := string(startRunes[:startOffset]) + string(endRunes[endOffset:])
	chars := append(start.SliceChars(0, startOffset), end.SliceChars(endOffset, end.Len())...)
	merged, err := start.WithRichText(text, chars)
	if err != nil {
		return nil, err
	}

	next, err := m.Replace(merged)
	if err != nil {
		return nil, err
	}

	keys := next.Keys()
	removed := keys[startIdx+1 : endIdx+1]
	next, err = next.Delete(removed...)
	if err != nil {
		// Deleting the interior orphaned a surviving block: the range cuts
		// across the tree structure.
		if errors.Is(err, content.ErrDanglingParent) {
			return nil, ErrRangeSplitsTree
		}
		return nil, err
	}

	after := selection.Collapsed(startKey, startOffset).WithFocus(sel.HasFocus())
	return content.NewContentState(next, after).WithSelections(sel, after), nil
}
