package edit

import (
	"github.com/dshills/richdoc/internal/content"
	"github.com/dshills/richdoc/internal/selection"
)

// charRange is one block's slice of a possibly multi-block selection.
type charRange struct {
	block *content.ContentBlock
	start int
	end   int
}

// rangesOf resolves the selection into per-block character ranges in
// document order.
func rangesOf(m *content.BlockMap, sel selection.SelectionState) ([]charRange, error) {
	if err := m.ValidateSelection(sel); err != nil {
		return nil, err
	}
	startKey, startOffset := sel.StartKey(), sel.StartOffset()
	endKey, endOffset := sel.EndKey(), sel.EndOffset()

	if startKey == endKey {
		b, err := m.Get(startKey)
		if err != nil {
			return nil, err
		}
		return []charRange{{block: b, start: startOffset, end: endOffset}}, nil
	}

	startIdx, _ := m.IndexOf(startKey)
	endIdx, _ := m.IndexOf(endKey)
	if endIdx < startIdx {
		startIdx, endIdx = endIdx, startIdx
		startKey, endKey = endKey, startKey
		startOffset, endOffset = endOffset, startOffset
	}

	var out []charRange
	for _, b := range m.BlocksInOrder()[startIdx : endIdx+1] {
		r := charRange{block: b, start: 0, end: b.Len()}
		if b.Key() == startKey {
			r.start = startOffset
		}
		if b.Key() == endKey {
			r.end = endOffset
		}
		out = append(out, r)
	}
	return out, nil
}

func mapChars(st *content.ContentState, sel selection.SelectionState, f func(content.CharacterMetadata) content.CharacterMetadata) (*content.ContentState, error) {
	m := st.BlockMap()
	ranges, err := rangesOf(m, sel)
	if err != nil {
		return nil, err
	}
	for _, r := range ranges {
		if r.start >= r.end {
			continue
		}
		chars := r.block.Chars()
		for i := r.start; i < r.end; i++ {
			chars[i] = f(chars[i])
		}
		updated, err := r.block.WithRichText(r.block.Text(), chars)
		if err != nil {
			return nil, err
		}
		m, err = m.Replace(updated)
		if err != nil {
			return nil, err
		}
	}
	return content.NewContentState(m, sel).WithSelections(sel, sel), nil
}

// ApplyInlineStyle adds a style to every character in the selection.
func ApplyInlineStyle(st *content.ContentState, sel selection.SelectionState, style string) (*content.ContentState, error) {
	return mapChars(st, sel, func(c content.CharacterMetadata) content.CharacterMetadata {
		return c.WithStyle(style)
	})
}

// RemoveInlineStyle removes a style from every character in the selection.
func RemoveInlineStyle(st *content.ContentState, sel selection.SelectionState, style string) (*content.ContentState, error) {
	return mapChars(st, sel, func(c content.CharacterMetadata) content.CharacterMetadata {
		return c.WithoutStyle(style)
	})
}

// SetBlockType retypes every block touched by the selection.
func SetBlockType(st *content.ContentState, sel selection.SelectionState, typ content.BlockType) (*content.ContentState, error) {
	m := st.BlockMap()
	ranges, err := rangesOf(m, sel)
	if err != nil {
		return nil, err
	}
	for _, r := range ranges {
		m, err = m.Replace(r.block.WithType(typ))
		if err != nil {
			return nil, err
		}
	}
	return content.NewContentState(m, sel).WithSelections(sel, sel), nil
}

// SetBlockData replaces the data map of every block touched by the selection.
func SetBlockData(st *content.ContentState, sel selection.SelectionState, data map[string]any) (*content.ContentState, error) {
	m := st.BlockMap()
	ranges, err := rangesOf(m, sel)
	if err != nil {
		return nil, err
	}
	for _, r := range ranges {
		m, err = m.Replace(r.block.WithData(data))
		if err != nil {
			return nil, err
		}
	}
	return content.NewContentState(m, sel).WithSelections(sel, sel), nil
}
