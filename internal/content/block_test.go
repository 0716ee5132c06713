package content

import (
	"errors"
	"testing"
)

func TestNewBlockEmpty(t *testing.T) {
	b := NewBlock("a", BlockParagraph)

	if b.Key() != "a" || b.Type() != BlockParagraph {
		t.Error("key/type not set")
	}
	if b.Len() != 0 || b.Text() != "" {
		t.Error("new block should be empty")
	}
	if b.ParentKey() != "" {
		t.Error("new block should be a root")
	}
}

func TestWithTextInvariant(t *testing.T) {
	b := NewBlock("a", BlockParagraph).WithText("héllo", EmptyMeta)

	if b.Len() != 5 {
		t.Errorf("expected 5 characters (runes), got %d", b.Len())
	}
	if len(b.Chars()) != 5 {
		t.Errorf("character list must match rune count, got %d", len(b.Chars()))
	}
}

func TestWithRichTextMismatch(t *testing.T) {
	_, err := NewBlock("a", BlockParagraph).WithRichText("ab", RepeatMeta(EmptyMeta, 3))
	if !errors.Is(err, ErrCharCountMismatch) {
		t.Errorf("expected ErrCharCountMismatch, got %v", err)
	}
}

func TestWithRichTextMultibyte(t *testing.T) {
	b, err := NewBlock("a", BlockParagraph).WithRichText("日本", RepeatMeta(EmptyMeta, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("expected 2 characters, got %d", b.Len())
	}
}

func TestBlockImmutability(t *testing.T) {
	b := NewBlock("a", BlockParagraph).WithText("abc", EmptyMeta)
	b2 := b.WithType(BlockBlockquote).WithDepth(2).WithParent("p")

	if b.Type() != BlockParagraph || b.Depth() != 0 || b.ParentKey() != "" {
		t.Error("original block must be unchanged")
	}
	if b2.Type() != BlockBlockquote || b2.Depth() != 2 || b2.ParentKey() != "p" {
		t.Error("modified copy should carry new values")
	}
	if b2.Text() != "abc" {
		t.Error("copy should share unchanged text")
	}
}

func TestWithDepthClamped(t *testing.T) {
	if d := NewBlock("a", BlockListItem).WithDepth(9).Depth(); d != MaxDepth {
		t.Errorf("depth should clamp to %d, got %d", MaxDepth, d)
	}
	if d := NewBlock("a", BlockListItem).WithDepth(-1).Depth(); d != 0 {
		t.Errorf("depth should clamp to 0, got %d", d)
	}
}

func TestDataIsCopied(t *testing.T) {
	src := map[string]any{"align": "left"}
	b := NewBlock("a", BlockParagraph).WithData(src)
	src["align"] = "right"

	if v, _ := b.DataValue("align"); v != "left" {
		t.Error("WithData must copy the input map")
	}

	out := b.Data()
	out["align"] = "center"
	if v, _ := b.DataValue("align"); v != "left" {
		t.Error("Data must return a copy")
	}
}

func TestWithoutData(t *testing.T) {
	b := NewBlock("a", BlockParagraph).WithData(map[string]any{"x": 1}).WithoutData()
	if len(b.Data()) != 0 {
		t.Error("WithoutData should clear the map")
	}
}

func TestCharAt(t *testing.T) {
	bold := Meta(NewStyleSet(StyleBold), "")
	b, err := NewBlock("a", BlockParagraph).WithRichText("ab",
		[]CharacterMetadata{bold, EmptyMeta})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := b.CharAt(0)
	if err != nil || !c.HasStyle(StyleBold) {
		t.Error("expected bold at offset 0")
	}
	if _, err := b.CharAt(2); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestSliceChars(t *testing.T) {
	bold := Meta(NewStyleSet(StyleBold), "")
	b, _ := NewBlock("a", BlockParagraph).WithRichText("abcd",
		[]CharacterMetadata{bold, bold, EmptyMeta, EmptyMeta})

	s := b.SliceChars(1, 3)
	if len(s) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(s))
	}
	if !s[0].HasStyle(StyleBold) || s[1].HasStyle(StyleBold) {
		t.Error("slice should preserve per-character styles")
	}
	if got := b.SliceChars(3, 1); got != nil {
		t.Error("inverted range should be nil")
	}
}

func TestBlockEqualByValue(t *testing.T) {
	a := NewBlock("k", BlockParagraph).WithText("x", EmptyMeta)
	b := NewBlock("k", BlockParagraph).WithText("x", EmptyMeta)

	if !a.Equal(b) {
		t.Error("separately built equal blocks must compare equal")
	}
	if a.Equal(b.WithText("y", EmptyMeta)) {
		t.Error("different text should not compare equal")
	}
}

func TestMergeKeepsIdentity(t *testing.T) {
	// Text/char/data updates share key and type with the original record.
	a := NewBlock("k", BlockBlockquote).WithText("x", EmptyMeta)
	b := a.WithText("xy", EmptyMeta).WithData(map[string]any{"n": 1})

	if b.Key() != "k" || b.Type() != BlockBlockquote {
		t.Error("merge-style updates must preserve key and type")
	}
}
