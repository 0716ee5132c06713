package content

import (
	"fmt"
	"reflect"
	"unicode/utf8"
)

// BlockType identifies the structural role of a block.
type BlockType string

// Block types with built-in render configuration.
const (
	BlockParagraph     BlockType = "paragraph"
	BlockHeaderOne     BlockType = "header-one"
	BlockHeaderTwo     BlockType = "header-two"
	BlockHeaderThree   BlockType = "header-three"
	BlockHeaderFour    BlockType = "header-four"
	BlockHeaderFive    BlockType = "header-five"
	BlockHeaderSix     BlockType = "header-six"
	BlockBlockquote    BlockType = "blockquote"
	BlockCode          BlockType = "code-block"
	BlockOrderedList   BlockType = "ordered-list"
	BlockUnorderedList BlockType = "unordered-list"
	BlockListItem      BlockType = "list-item"
	BlockTable         BlockType = "table"
	BlockTableBody     BlockType = "table-body"
	BlockTableRow      BlockType = "table-row"
	BlockTableCell     BlockType = "table-cell"
)

// MaxDepth is the maximum nesting depth of a block.
const MaxDepth = 4

// ClampDepth clamps a depth value to [0, MaxDepth].
func ClampDepth(d int) int {
	if d < 0 {
		return 0
	}
	if d > MaxDepth {
		return MaxDepth
	}
	return d
}

// ContentBlock is one structural unit of a document. ContentBlock is
// immutable; all With* methods return modified copies that share unchanged
// fields with the receiver. The invariant len(chars) == rune count of text
// holds for every block.
type ContentBlock struct {
	key       string
	parentKey string
	typ       BlockType
	depth     int
	text      string
	chars     []CharacterMetadata
	data      map[string]any
}

// NewBlock creates an empty block with the given key and type.
func NewBlock(key string, typ BlockType) *ContentBlock {
	return &ContentBlock{key: key, typ: typ}
}

// Key returns the block's key, unique within its tree.
func (b *ContentBlock) Key() string { return b.key }

// ParentKey returns the key of the block's parent, or "" for roots.
func (b *ContentBlock) ParentKey() string { return b.parentKey }

// Type returns the block's type.
func (b *ContentBlock) Type() BlockType { return b.typ }

// Depth returns the block's nesting depth.
func (b *ContentBlock) Depth() int { return b.depth }

// Text returns the block's text.
func (b *ContentBlock) Text() string { return b.text }

// Len returns the block's text length in characters (runes).
func (b *ContentBlock) Len() int { return len(b.chars) }

// Chars returns a copy of the block's character metadata list.
func (b *ContentBlock) Chars() []CharacterMetadata {
	if len(b.chars) == 0 {
		return nil
	}
	out := make([]CharacterMetadata, len(b.chars))
	copy(out, b.chars)
	return out
}

// CharAt returns the metadata of the character at the given offset.
func (b *ContentBlock) CharAt(offset int) (CharacterMetadata, error) {
	if offset < 0 || offset >= len(b.chars) {
		return EmptyMeta, fmt.Errorf("char at %d in block %s: %w", offset, b.key, ErrOffsetOutOfRange)
	}
	return b.chars[offset], nil
}

// SliceChars returns a copy of the metadata in [start, end).
func (b *ContentBlock) SliceChars(start, end int) []CharacterMetadata {
	if start < 0 {
		start = 0
	}
	if end > len(b.chars) {
		end = len(b.chars)
	}
	if start >= end {
		return nil
	}
	out := make([]CharacterMetadata, end-start)
	copy(out, b.chars[start:end])
	return out
}

// TextRunes returns the block's text as a rune slice.
func (b *ContentBlock) TextRunes() []rune {
	return []rune(b.text)
}

// Data returns a copy of the block's data map.
func (b *ContentBlock) Data() map[string]any {
	if len(b.data) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(b.data))
	for k, v := range b.data {
		out[k] = v
	}
	return out
}

// DataValue returns a single entry of the block's data map.
func (b *ContentBlock) DataValue(key string) (any, bool) {
	v, ok := b.data[key]
	return v, ok
}

// clone returns a shallow copy suitable for With* modifications.
func (b *ContentBlock) clone() *ContentBlock {
	c := *b
	return &c
}

// WithKey returns a copy with a different key.
func (b *ContentBlock) WithKey(key string) *ContentBlock {
	c := b.clone()
	c.key = key
	return c
}

// WithParent returns a copy with a different parent key.
func (b *ContentBlock) WithParent(parentKey string) *ContentBlock {
	c := b.clone()
	c.parentKey = parentKey
	return c
}

// WithType returns a copy with a different block type.
func (b *ContentBlock) WithType(typ BlockType) *ContentBlock {
	c := b.clone()
	c.typ = typ
	return c
}

// WithDepth returns a copy with the depth clamped to [0, MaxDepth].
func (b *ContentBlock) WithDepth(depth int) *ContentBlock {
	c := b.clone()
	c.depth = ClampDepth(depth)
	return c
}

// WithText returns a copy whose text is uniformly styled with meta.
func (b *ContentBlock) WithText(text string, meta CharacterMetadata) *ContentBlock {
	c := b.clone()
	c.text = text
	c.chars = RepeatMeta(meta, utf8.RuneCountInString(text))
	return c
}

// WithRichText returns a copy with the given text and per-character
// metadata. The list length must match the text's rune count.
func (b *ContentBlock) WithRichText(text string, chars []CharacterMetadata) (*ContentBlock, error) {
	if utf8.RuneCountInString(text) != len(chars) {
		return nil, fmt.Errorf("block %s: %d chars for %d runes: %w",
			b.key, len(chars), utf8.RuneCountInString(text), ErrCharCountMismatch)
	}
	c := b.clone()
	c.text = text
	c.chars = make([]CharacterMetadata, len(chars))
	copy(c.chars, chars)
	return c, nil
}

// WithData returns a copy with the given data map (copied).
func (b *ContentBlock) WithData(data map[string]any) *ContentBlock {
	c := b.clone()
	if len(data) == 0 {
		c.data = nil
		return c
	}
	c.data = make(map[string]any, len(data))
	for k, v := range data {
		c.data[k] = v
	}
	return c
}

// WithoutData returns a copy with an empty data map.
func (b *ContentBlock) WithoutData() *ContentBlock {
	c := b.clone()
	c.data = nil
	return c
}

// Equal reports whether two blocks have equal contents, including character
// metadata and data. Equality is by value, never by identity.
func (b *ContentBlock) Equal(other *ContentBlock) bool {
	if b == other {
		return true
	}
	if b == nil || other == nil {
		return false
	}
	if b.key != other.key || b.parentKey != other.parentKey ||
		b.typ != other.typ || b.depth != other.depth || b.text != other.text {
		return false
	}
	if len(b.chars) != len(other.chars) {
		return false
	}
	for i := range b.chars {
		if !b.chars[i].Equal(other.chars[i]) {
			return false
		}
	}
	return reflect.DeepEqual(b.data, other.data) ||
		(len(b.data) == 0 && len(other.data) == 0)
}

// String returns a short description of the block.
func (b *ContentBlock) String() string {
	return fmt.Sprintf("Block(%s %s depth=%d %q)", b.key, b.typ, b.depth, b.text)
}
