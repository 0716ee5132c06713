package edit

import (
	"testing"

	"github.com/dshills/richdoc/internal/content"
	"github.com/dshills/richdoc/internal/selection"
)

func TestApplyInlineStyleWithinBlock(t *testing.T) {
	st := singleBlockState(t, "abcd")
	next, err := ApplyInlineStyle(st, selection.Between("orig", 1, "orig", 3, false), content.StyleBold)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	b, _ := next.BlockMap().Get("orig")
	for i := 0; i < 4; i++ {
		c, _ := b.CharAt(i)
		want := i == 1 || i == 2
		if c.HasStyle(content.StyleBold) != want {
			t.Errorf("char %d: bold=%v, want %v", i, c.HasStyle(content.StyleBold), want)
		}
	}
	if !next.SelectionAfter().Equal(next.SelectionBefore()) {
		t.Error("style application should not move the selection")
	}
}

func TestApplyInlineStyleAcrossBlocks(t *testing.T) {
	st := threeParagraphs(t)
	next, err := ApplyInlineStyle(st, selection.Between("a", 3, "c", 2, false), content.StyleItalic)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	a, _ := next.BlockMap().Get("a")
	bBlock, _ := next.BlockMap().Get("b")
	c, _ := next.BlockMap().Get("c")

	if ch, _ := a.CharAt(2); ch.HasStyle(content.StyleItalic) {
		t.Error("characters before the range must be untouched")
	}
	if ch, _ := a.CharAt(3); !ch.HasStyle(content.StyleItalic) {
		t.Error("range start should be styled")
	}
	for i := 0; i < bBlock.Len(); i++ {
		if ch, _ := bBlock.CharAt(i); !ch.HasStyle(content.StyleItalic) {
			t.Errorf("interior block char %d should be styled", i)
		}
	}
	if ch, _ := c.CharAt(1); !ch.HasStyle(content.StyleItalic) {
		t.Error("range end - 1 should be styled")
	}
	if ch, _ := c.CharAt(2); ch.HasStyle(content.StyleItalic) {
		t.Error("characters past the range must be untouched")
	}
}

func TestRemoveInlineStyle(t *testing.T) {
	st := singleBlockState(t, "ab")
	sel := selection.Between("orig", 0, "orig", 2, false)
	st2, err := ApplyInlineStyle(st, sel, content.StyleBold)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	st3, err := RemoveInlineStyle(st2, selection.Between("orig", 1, "orig", 2, false), content.StyleBold)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}

	b, _ := st3.BlockMap().Get("orig")
	if c, _ := b.CharAt(0); !c.HasStyle(content.StyleBold) {
		t.Error("char 0 should stay bold")
	}
	if c, _ := b.CharAt(1); c.HasStyle(content.StyleBold) {
		t.Error("char 1 should no longer be bold")
	}
}

func TestSetBlockType(t *testing.T) {
	st := threeParagraphs(t)
	next, err := SetBlockType(st, selection.Between("a", 0, "b", 1, false), content.BlockBlockquote)
	if err != nil {
		t.Fatalf("set type: %v", err)
	}

	a, _ := next.BlockMap().Get("a")
	b, _ := next.BlockMap().Get("b")
	c, _ := next.BlockMap().Get("c")
	if a.Type() != content.BlockBlockquote || b.Type() != content.BlockBlockquote {
		t.Error("touched blocks should be retyped")
	}
	if c.Type() != content.BlockParagraph {
		t.Error("untouched blocks must keep their type")
	}
	if a.Key() != "a" {
		t.Error("retyping must preserve block identity")
	}
}

func TestSetBlockData(t *testing.T) {
	st := singleBlockState(t, "x")
	next, err := SetBlockData(st, selection.Collapsed("orig", 0), map[string]any{"align": "center"})
	if err != nil {
		t.Fatalf("set data: %v", err)
	}
	b, _ := next.BlockMap().Get("orig")
	if v, _ := b.DataValue("align"); v != "center" {
		t.Errorf("expected center, got %v", v)
	}
}
