package edit

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/richdoc/internal/content"
	"github.com/dshills/richdoc/internal/selection"
)

func singleBlockState(t *testing.T, text string) *content.ContentState {
	t.Helper()
	st, err := content.NewContentStateFromBlocks([]*content.ContentBlock{
		content.NewBlock("orig", content.BlockParagraph).
			WithText(text, content.EmptyMeta).
			WithData(map[string]any{"align": "left"}),
	})
	if err != nil {
		t.Fatalf("building state: %v", err)
	}
	return st
}

func TestSplitBlockRequiresCollapsed(t *testing.T) {
	st := singleBlockState(t, "abc")
	_, err := SplitBlock(st, selection.Between("orig", 0, "orig", 2, false), content.SequentialKeys("k"))
	if !errors.Is(err, ErrSelectionNotCollapsed) {
		t.Errorf("expected ErrSelectionNotCollapsed, got %v", err)
	}
}

func TestSplitBlockMiddle(t *testing.T) {
	st := singleBlockState(t, "abcd")
	next, err := SplitBlock(st, selection.Collapsed("orig", 2), content.SequentialKeys("k"))
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	blocks := next.BlockMap().BlocksInOrder()
	if len(blocks) != 3 {
		t.Fatalf("interior split should produce 3 blocks, got %d", len(blocks))
	}
	if blocks[0].Text() != "ab" || blocks[1].Text() != "" || blocks[2].Text() != "cd" {
		t.Errorf("unexpected texts %q %q %q", blocks[0].Text(), blocks[1].Text(), blocks[2].Text())
	}

	// Character conservation.
	if blocks[0].Len()+blocks[2].Len() != 4 {
		t.Error("characters must be conserved across the split")
	}

	// Selection collapses at the new empty middle block.
	after := next.SelectionAfter()
	if after.AnchorKey() != blocks[1].Key() || after.AnchorOffset() != 0 || !after.IsCollapsed() {
		t.Errorf("expected collapsed selection at middle block, got %v", after)
	}

	// Fresh keys everywhere; the original key is gone.
	for _, b := range blocks {
		if b.Key() == "orig" {
			t.Error("split must produce fresh keys")
		}
	}

	// Data is retained on the head-derived block, cleared on the tail.
	if v, _ := blocks[0].DataValue("align"); v != "left" {
		t.Error("head block should retain data")
	}
	if len(blocks[2].Data()) != 0 {
		t.Error("tail-derived block data must be cleared")
	}
}

func TestSplitBlockAtStart(t *testing.T) {
	st := singleBlockState(t, "abcd")
	next, err := SplitBlock(st, selection.Collapsed("orig", 0), content.SequentialKeys("k"))
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	blocks := next.BlockMap().BlocksInOrder()
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Text() != "" || blocks[1].Text() != "abcd" {
		t.Errorf("unexpected texts %q %q", blocks[0].Text(), blocks[1].Text())
	}
	after := next.SelectionAfter()
	if after.AnchorKey() != blocks[1].Key() || after.AnchorOffset() != 0 {
		t.Errorf("selection should collapse at the tail block, got %v", after)
	}
}

func TestSplitBlockAtEnd(t *testing.T) {
	st := singleBlockState(t, "abcd")
	next, err := SplitBlock(st, selection.Collapsed("orig", 4), content.SequentialKeys("k"))
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	blocks := next.BlockMap().BlocksInOrder()
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Text() != "abcd" || blocks[1].Text() != "" {
		t.Errorf("unexpected texts %q %q", blocks[0].Text(), blocks[1].Text())
	}
	after := next.SelectionAfter()
	if after.AnchorKey() != blocks[1].Key() || after.AnchorOffset() != 0 {
		t.Errorf("selection should collapse at the new empty block, got %v", after)
	}
}

func TestSplitConservesTextAtEveryOffset(t *testing.T) {
	const text = "hello world"
	for offset := 0; offset <= len(text); offset++ {
		st := singleBlockState(t, text)
		next, err := SplitBlock(st, selection.Collapsed("orig", offset), content.SequentialKeys("k"))
		if err != nil {
			t.Fatalf("offset %d: %v", offset, err)
		}
		var sb strings.Builder
		for _, b := range next.BlockMap().BlocksInOrder() {
			sb.WriteString(b.Text())
		}
		if sb.String() != text {
			t.Errorf("offset %d: concatenation %q != %q", offset, sb.String(), text)
		}
	}
}

func TestSplitPreservesStyles(t *testing.T) {
	bold := content.Meta(content.NewStyleSet(content.StyleBold), "")
	block, err := content.NewBlock("orig", content.BlockParagraph).WithRichText("abcd",
		[]content.CharacterMetadata{bold, bold, content.EmptyMeta, content.EmptyMeta})
	if err != nil {
		t.Fatalf("building block: %v", err)
	}
	st, err := content.NewContentStateFromBlocks([]*content.ContentBlock{block})
	if err != nil {
		t.Fatalf("building state: %v", err)
	}

	next, err := SplitBlock(st, selection.Collapsed("orig", 1), content.SequentialKeys("k"))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	blocks := next.BlockMap().BlocksInOrder()
	head, tail := blocks[0], blocks[len(blocks)-1]

	if c, _ := head.CharAt(0); !c.HasStyle(content.StyleBold) {
		t.Error("head should keep its bold character")
	}
	if c, _ := tail.CharAt(0); !c.HasStyle(content.StyleBold) {
		t.Error("tail's first character was bold before the split")
	}
	if c, _ := tail.CharAt(1); c.HasStyle(content.StyleBold) {
		t.Error("no restyling may happen across the split point")
	}
}

func TestSplitInheritsParent(t *testing.T) {
	blocks := []*content.ContentBlock{
		content.NewBlock("list", content.BlockUnorderedList),
		content.NewBlock("item", content.BlockListItem).WithParent("list").WithText("ab", content.EmptyMeta),
	}
	st, err := content.NewContentStateFromBlocks(blocks)
	if err != nil {
		t.Fatalf("building state: %v", err)
	}

	next, err := SplitBlock(st, selection.Collapsed("item", 1), content.SequentialKeys("k"))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	for _, b := range next.BlockMap().Children("list") {
		if b.ParentKey() != "list" {
			t.Errorf("block %s lost its parent", b.Key())
		}
	}
	if len(next.BlockMap().Children("list")) != 3 {
		t.Errorf("expected 3 children under the list, got %d", len(next.BlockMap().Children("list")))
	}
}

func TestSplitLeavesOldSnapshotIntact(t *testing.T) {
	st := singleBlockState(t, "abcd")
	if _, err := SplitBlock(st, selection.Collapsed("orig", 2), content.SequentialKeys("k")); err != nil {
		t.Fatalf("split: %v", err)
	}
	if st.BlockMap().Len() != 1 {
		t.Error("input state must remain a valid, unchanged snapshot")
	}
	if b, _ := st.BlockMap().Get("orig"); b.Text() != "abcd" {
		t.Error("input block must be untouched")
	}
}
