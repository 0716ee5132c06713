package edit

import (
	"github.com/dshills/richdoc/internal/content"
	"github.com/dshills/richdoc/internal/selection"
)

// SplitBlock splits the block at a collapsed selection into two (or three)
// blocks at the selection offset. All produced blocks carry fresh keys and
// inherit the original block's parent; the tail-derived block's data map is
// cleared. The returned state's selection is collapsed at offset 0 of the
// block that is current after the split.
func SplitBlock(st *content.ContentState, sel selection.SelectionState, keys content.KeyGenerator) (*content.ContentState, error) {
	if !sel.IsCollapsed() {
		return nil, ErrSelectionNotCollapsed
	}
	m := st.BlockMap()
	if err := m.ValidateSelection(sel); err != nil {
		return nil, err
	}
	target, err := m.Get(sel.AnchorKey())
	if err != nil {
		return nil, err
	}

	runes := target.TextRunes()
	offset := sel.AnchorOffset()
	headText := string(runes[:offset])
	tailText := string(runes[offset:])
	headChars := target.SliceChars(0, offset)
	tailChars := target.SliceChars(offset, target.Len())

	above := content.NewBlock(keys.NextKey(), target.Type()).
		WithParent(target.ParentKey()).
		WithDepth(target.Depth()).
		WithData(target.Data())
	above, err = above.WithRichText(headText, headChars)
	if err != nil {
		return nil, err
	}

	// The tail-derived block starts with empty data.
	below := content.NewBlock(keys.NextKey(), target.Type()).
		WithParent(target.ParentKey()).
		WithDepth(target.Depth())
	below, err = below.WithRichText(tailText, tailChars)
	if err != nil {
		return nil, err
	}

	var replacement []*content.ContentBlock
	var current *content.ContentBlock
	switch {
	case len(headChars) == 0:
		// Block boundary before content: empty block above, tail below.
		replacement = []*content.ContentBlock{above, below}
		current = below
	case len(tailChars) == 0:
		// Content above, new empty block below.
		replacement = []*content.ContentBlock{above, below}
		current = below
	default:
		middle := content.NewBlock(keys.NextKey(), target.Type()).
			WithParent(target.ParentKey()).
			WithDepth(target.Depth())
		replacement = []*content.ContentBlock{above, middle, below}
		current = middle
	}

	next, err := m.Splice(target.Key(), replacement)
	if err != nil {
		return nil, err
	}

	after := selection.Collapsed(current.Key(), 0).WithFocus(sel.HasFocus())
	return content.NewContentState(next, after).WithSelections(sel, after), nil
}
