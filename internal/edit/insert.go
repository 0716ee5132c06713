package edit

import (
	"github.com/dshills/richdoc/internal/content"
	"github.com/dshills/richdoc/internal/selection"
)

// SelectionPolicy controls where the selection collapses after a
// multi-block fragment insertion.
type SelectionPolicy int

const (
	// SelectAfterFragment collapses the selection at the end of the last
	// inserted fragment block.
	SelectAfterFragment SelectionPolicy = iota

	// SelectAfterHead collapses the selection at offset 0 of the head
	// block, reproducing the historical behavior.
	SelectAfterHead
)

// InsertOption configures InsertFragment.
type InsertOption func(*insertOptions)

type insertOptions struct {
	policy SelectionPolicy
}

// WithSelectionPolicy sets the post-insert selection policy.
func WithSelectionPolicy(p SelectionPolicy) InsertOption {
	return func(o *insertOptions) { o.policy = p }
}

// InsertFragment splices an ordered fragment of blocks into the tree at a
// collapsed selection. A single-block fragment is spliced directly into the
// target block's text; a multi-block fragment replaces the target with a
// head block (absorbing the fragment's first block) followed by the
// remaining fragment blocks, re-keyed through a stable remapping table so
// the fragment's internal hierarchy survives.
func InsertFragment(st *content.ContentState, sel selection.SelectionState, fragment *content.BlockMap, keys content.KeyGenerator, opts ...InsertOption) (*content.ContentState, error) {
	options := insertOptions{policy: SelectAfterFragment}
	for _, opt := range opts {
		opt(&options)
	}

	if !sel.IsCollapsed() {
		return nil, ErrSelectionNotCollapsed
	}
	if fragment == nil || fragment.Len() == 0 {
		return nil, ErrEmptyFragment
	}
	m := st.BlockMap()
	if err := m.ValidateSelection(sel); err != nil {
		return nil, err
	}
	target, err := m.Get(sel.AnchorKey())
	if err != nil {
		return nil, err
	}

	if fragment.Len() == 1 {
		return insertSingle(st, sel, target, fragment.First())
	}
	return insertMulti(st, sel, target, fragment, keys, options.policy)
}

// insertSingle splices one block's text and characters into the target at
// the selection offset, introducing no new block boundaries.
func insertSingle(st *content.ContentState, sel selection.SelectionState, target, frag *content.ContentBlock) (*content.ContentState, error) {
	offset := sel.AnchorOffset()
	runes := target.TextRunes()

	text := string(runes[:offset]) + frag.Text() + string(runes[offset:])
	chars := make([]content.CharacterMetadata, 0, target.Len()+frag.Len())
	chars = append(chars, target.SliceChars(0, offset)...)
	chars = append(chars, frag.Chars()...)
	chars = append(chars, target.SliceChars(offset, target.Len())...)

	updated, err := target.WithRichText(text, chars)
	if err != nil {
		return nil, err
	}
	next, err := st.BlockMap().Replace(updated)
	if err != nil {
		return nil, err
	}

	after := selection.Collapsed(target.Key(), offset+frag.Len()).WithFocus(sel.HasFocus())
	return content.NewContentState(next, after).WithSelections(sel, after), nil
}

func insertMulti(st *content.ContentState, sel selection.SelectionState, target *content.ContentBlock, fragment *content.BlockMap, keys content.KeyGenerator, policy SelectionPolicy) (*content.ContentState, error) {
	m := st.BlockMap()
	if len(m.Children(target.Key())) > 0 {
		return nil, ErrTargetHasChildren
	}

	offset := sel.AnchorOffset()
	runes := target.TextRunes()
	fragBlocks := fragment.BlocksInOrder()
	first := fragBlocks[0]
	last := fragBlocks[len(fragBlocks)-1]

	// Stable remapping of fragment-local keys to keys in the target tree.
	remap := make(map[string]string, len(fragBlocks))

	// The head retains the target's key when it keeps any of the target's
	// leading text; otherwise it is a fresh block.
	headKey := target.Key()
	if offset == 0 {
		headKey = keys.NextKey()
	}
	remap[first.Key()] = headKey

	headText := string(runes[:offset]) + first.Text()
	headChars := append(target.SliceChars(0, offset), first.Chars()...)

	tailText := string(runes[offset:])
	tailChars := target.SliceChars(offset, target.Len())

	head := content.NewBlock(headKey, target.Type()).
		WithParent(target.ParentKey()).
		WithDepth(target.Depth()).
		WithData(target.Data())
	head, err := head.WithRichText(headText, headChars)
	if err != nil {
		return nil, err
	}

	replacement := []*content.ContentBlock{head}
	lastKey := headKey
	lastLen := head.Len()

	for _, fb := range fragBlocks[1:] {
		newKey := keys.NextKey()
		remap[fb.Key()] = newKey

		parent := target.ParentKey()
		if mapped, ok := remap[fb.ParentKey()]; ok && fb.ParentKey() != "" {
			parent = mapped
		}

		nb := content.NewBlock(newKey, fb.Type()).
			WithParent(parent).
			WithDepth(fb.Depth()).
			WithData(fb.Data())

		text := fb.Text()
		chars := fb.Chars()
		endOfFragment := fb.Len()
		if fb.Key() == last.Key() && len(tailChars) > 0 {
			// The target's tail rides on the last fragment block.
			text += tailText
			chars = append(chars, tailChars...)
		}
		nb, err = nb.WithRichText(text, chars)
		if err != nil {
			return nil, err
		}
		replacement = append(replacement, nb)
		lastKey = newKey
		lastLen = endOfFragment
	}

	next, err := m.Splice(target.Key(), replacement)
	if err != nil {
		return nil, err
	}

	var after selection.SelectionState
	switch policy {
	case SelectAfterHead:
		after = selection.Collapsed(headKey, 0)
	default:
		after = selection.Collapsed(lastKey, lastLen)
	}
	after = after.WithFocus(sel.HasFocus())
	return content.NewContentState(next, after).WithSelections(sel, after), nil
}

// InsertText splices plain text with uniform character metadata into the
// block at a collapsed selection.
func InsertText(st *content.ContentState, sel selection.SelectionState, text string, meta content.CharacterMetadata) (*content.ContentState, error) {
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

	frag := content.NewBlock(target.Key(), target.Type()).WithText(text, meta)
	return insertSingle(st, sel, target, frag)
}
