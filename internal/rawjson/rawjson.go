// Package rawjson persists content states as raw JSON documents.
//
// The raw format stores one record per block in document order, with
// per-character metadata compressed into maximal contiguous ranges, plus
// an entity map keyed by entity key:
//
//	{"blocks":[{"key":"a1","parent":"","type":"paragraph","depth":0,
//	  "text":"ab",
//	  "inlineStyleRanges":[{"offset":0,"length":1,"style":"BOLD"}],
//	  "entityRanges":[{"offset":0,"length":2,"key":"1"}],
//	  "data":{}}],
//	 "entityMap":{"1":{"type":"LINK","mutability":"MUTABLE","data":{}}}}
//
// Offsets and lengths count characters, matching block offsets everywhere
// else in the engine.
package rawjson

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"github.com/zeebo/blake3"

	"github.com/dshills/richdoc/internal/content"
	"github.com/dshills/richdoc/internal/entity"
)

// ErrInvalidDocument indicates input that is not a raw JSON document.
var ErrInvalidDocument = errors.New("invalid raw document")

type styleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

type entityRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Key    string `json:"key"`
}

// Encode serializes a content state and its entity registry.
func Encode(state *content.ContentState, reg entity.Registry) ([]byte, error) {
	doc := []byte(`{"blocks":[],"entityMap":{}}`)
	var err error

	for i, b := range state.BlockMap().BlocksInOrder() {
		base := fmt.Sprintf("blocks.%d", i)
		fields := []struct {
			path  string
			value any
		}{
			{base + ".key", b.Key()},
			{base + ".parent", b.ParentKey()},
			{base + ".type", string(b.Type())},
			{base + ".depth", b.Depth()},
			{base + ".text", b.Text()},
			{base + ".inlineStyleRanges", styleRangesOf(b)},
			{base + ".entityRanges", entityRangesOf(b)},
			{base + ".data", blockData(b)},
		}
		for _, f := range fields {
			if doc, err = sjson.SetBytes(doc, f.path, f.value); err != nil {
				return nil, fmt.Errorf("encoding block %s: %w", b.Key(), err)
			}
		}
	}

	if reg != nil {
		for _, key := range reg.Keys() {
			e, _ := reg.Get(key)
			base := "entityMap." + key
			data := e.Data
			if data == nil {
				data = map[string]any{}
			}
			for path, value := range map[string]any{
				base + ".type":       e.Type,
				base + ".mutability": e.Mutability,
				base + ".data":       data,
			} {
				if doc, err = sjson.SetBytes(doc, path, value); err != nil {
					return nil, fmt.Errorf("encoding entity %s: %w", key, err)
				}
			}
		}
	}
	return doc, nil
}

// styleRangesOf compresses per-character styles into one maximal run list
// per style name, in sorted name order for a stable encoding.
func styleRangesOf(b *content.ContentBlock) []styleRange {
	chars := b.Chars()
	seen := map[string]bool{}
	var names []string
	for _, c := range chars {
		for _, name := range c.Styles().List() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)

	ranges := []styleRange{}
	for _, name := range names {
		start := -1
		for i := 0; i <= len(chars); i++ {
			has := i < len(chars) && chars[i].HasStyle(name)
			switch {
			case has && start < 0:
				start = i
			case !has && start >= 0:
				ranges = append(ranges, styleRange{Offset: start, Length: i - start, Style: name})
				start = -1
			}
		}
	}
	return ranges
}

// entityRangesOf compresses per-character entity keys into maximal runs.
func entityRangesOf(b *content.ContentBlock) []entityRange {
	chars := b.Chars()
	ranges := []entityRange{}
	start, current := -1, ""
	for i := 0; i <= len(chars); i++ {
		key := ""
		if i < len(chars) {
			key, _ = chars[i].Entity()
		}
		if key == current {
			continue
		}
		if start >= 0 && current != "" {
			ranges = append(ranges, entityRange{Offset: start, Length: i - start, Key: current})
		}
		start, current = i, key
	}
	return ranges
}

func blockData(b *content.ContentBlock) map[string]any {
	if data := b.Data(); data != nil {
		return data
	}
	return map[string]any{}
}

// Decode rebuilds a content state and a registry holding the document's
// entities. The selection is collapsed at the start of the first block.
func Decode(data []byte) (*content.ContentState, entity.Registry, error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, ErrInvalidDocument
	}
	root := gjson.ParseBytes(data)
	if !root.Get("blocks").IsArray() {
		return nil, nil, fmt.Errorf("missing blocks array: %w", ErrInvalidDocument)
	}

	var blocks []*content.ContentBlock
	var decodeErr error
	root.Get("blocks").ForEach(func(_, rec gjson.Result) bool {
		b, err := decodeBlock(rec)
		if err != nil {
			decodeErr = err
			return false
		}
		blocks = append(blocks, b)
		return true
	})
	if decodeErr != nil {
		return nil, nil, decodeErr
	}

	reg := entity.NewInMemory()
	root.Get("entityMap").ForEach(func(key, rec gjson.Result) bool {
		e := entity.Entity{
			Type:       rec.Get("type").String(),
			Mutability: rec.Get("mutability").String(),
		}
		if d, ok := rec.Get("data").Value().(map[string]any); ok {
			e.Data = d
		}
		reg.Put(key.String(), e)
		return true
	})

	state, err := content.NewContentStateFromBlocks(blocks)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding document: %w", err)
	}
	return state, reg, nil
}

func decodeBlock(rec gjson.Result) (*content.ContentBlock, error) {
	key := rec.Get("key").String()
	if key == "" {
		return nil, fmt.Errorf("block without key: %w", ErrInvalidDocument)
	}
	typ := content.BlockType(rec.Get("type").String())
	if typ == "" {
		typ = content.BlockParagraph
	}
	text := rec.Get("text").String()
	runes := []rune(text)

	styles := make([][]string, len(runes))
	entities := make([]string, len(runes))

	var rangeErr error
	span := func(r gjson.Result) (int, int, bool) {
		offset := int(r.Get("offset").Int())
		length := int(r.Get("length").Int())
		if offset < 0 || length < 0 || offset+length > len(runes) {
			rangeErr = fmt.Errorf("block %s: range %d+%d exceeds text length %d: %w",
				key, offset, length, len(runes), ErrInvalidDocument)
			return 0, 0, false
		}
		return offset, length, true
	}

	rec.Get("inlineStyleRanges").ForEach(func(_, r gjson.Result) bool {
		offset, length, ok := span(r)
		if !ok {
			return false
		}
		name := r.Get("style").String()
		for i := offset; i < offset+length; i++ {
			styles[i] = append(styles[i], name)
		}
		return true
	})
	rec.Get("entityRanges").ForEach(func(_, r gjson.Result) bool {
		offset, length, ok := span(r)
		if !ok {
			return false
		}
		entityKey := r.Get("key").String()
		for i := offset; i < offset+length; i++ {
			entities[i] = entityKey
		}
		return true
	})
	if rangeErr != nil {
		return nil, rangeErr
	}

	chars := make([]content.CharacterMetadata, len(runes))
	for i := range runes {
		chars[i] = content.Meta(content.NewStyleSet(styles[i]...), entities[i])
	}

	b := content.NewBlock(key, typ).
		WithParent(rec.Get("parent").String()).
		WithDepth(int(rec.Get("depth").Int()))
	if data, ok := rec.Get("data").Value().(map[string]any); ok && len(data) > 0 {
		b = b.WithData(data)
	}
	return b.WithRichText(text, chars)
}

// Fingerprint returns the blake3 hex digest of the document's canonical
// (whitespace-free) encoding, so formatting differences do not change it.
func Fingerprint(doc []byte) string {
	sum := blake3.Sum256(pretty.Ugly(doc))
	return fmt.Sprintf("%x", sum[:])
}
