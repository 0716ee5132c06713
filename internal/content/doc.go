// Package content provides the immutable document model: per-character
// metadata, content blocks, the ordered block map, and content snapshots.
//
// The model is a forest of blocks. Each block carries a stable key, a block
// type, a nesting depth, its text, one CharacterMetadata per character, and a
// free-form data map. Blocks with an empty parent key are roots. The block
// map preserves document order, which is always a valid pre-order flattening
// of the forest.
//
// Everything in this package is persistent: no value is ever mutated in
// place. Editing operations produce a new BlockMap that shares all untouched
// block values with its predecessor, so retaining old snapshots is cheap and
// prior states remain valid indefinitely.
//
// Character offsets throughout the package are rune offsets. The invariant
// len(characterList) == utf8.RuneCountInString(text) holds for every block at
// all times; constructors that could violate it return an error instead.
//
// Basic usage:
//
//	keys := content.SequentialKeys("b")
//	block := content.NewBlock(keys.NextKey(), content.BlockParagraph).
//		WithText("hello", content.EmptyMeta)
//	m, err := content.NewBlockMap([]*content.ContentBlock{block})
//	if err != nil {
//		// dangling parent, duplicate key, or bad ordering
//	}
//	state := content.NewContentState(m, selection.Collapsed(block.Key(), 0))
package content
