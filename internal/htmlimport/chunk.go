package htmlimport

import (
	"github.com/dshills/richdoc/internal/content"
)

// delimiter separates block segments in a chunk's text. Each delimiter is
// paired with exactly one descriptor for the segment that follows it.
const delimiter = '\r'

// blockDescriptor records the block that will own one text segment.
type blockDescriptor struct {
	typ       content.BlockType
	depth     int
	key       string
	parentKey string

	// forced boundaries come from explicit line breaks and survive the
	// adjacent-delimiter collapse. A <br><br> run must keep its empty
	// paragraphs.
	forced bool
}

// chunk is the flat import intermediate: document text with one style set
// and one entity key per rune, plus the descriptor list. Delimiter runes
// carry an empty metadata slot to keep the arrays parallel.
type chunk struct {
	text     []rune
	inlines  []content.StyleSet
	entities []string
	blocks   []blockDescriptor
}

func (c chunk) isEmpty() bool {
	return len(c.text) == 0 && len(c.blocks) == 0
}

// textChunk builds a leaf chunk for a run of text sharing one style set
// and entity key. Leaves carry no descriptor; the boundary they belong to
// comes from a preceding divider, or from the default paragraph added at
// finalization.
func textChunk(text []rune, styles content.StyleSet, entityKey string) chunk {
	c := chunk{
		text:     text,
		inlines:  make([]content.StyleSet, len(text)),
		entities: make([]string, len(text)),
	}
	for i := range text {
		c.inlines[i] = styles
		c.entities[i] = entityKey
	}
	return c
}

// dividerChunk builds a block boundary: one delimiter paired with one
// descriptor.
func dividerChunk(d blockDescriptor) chunk {
	return chunk{
		text:     []rune{delimiter},
		inlines:  []content.StyleSet{{}},
		entities: []string{""},
		blocks:   []blockDescriptor{d},
	}
}

// join appends b to a. In the default mode, a trailing delimiter meeting a
// leading one collapses: the earlier boundary would produce a spurious
// empty paragraph between two block elements that abut in the DOM. Only
// unforced paragraph descriptors collapse, so list and table containers
// keep their (empty-text) blocks. Concatenative mode skips the collapse;
// it is used for the children of nodes led by an inline wrapper, which
// introduce no boundary of their own.
func join(a, b chunk, concatenative bool) chunk {
	if !concatenative && endsWithDelimiter(a) && startsWithDelimiter(b) {
		if last := a.blocks[len(a.blocks)-1]; last.typ == content.BlockParagraph && !last.forced {
			a.text = a.text[:len(a.text)-1]
			a.inlines = a.inlines[:len(a.inlines)-1]
			a.entities = a.entities[:len(a.entities)-1]
			a.blocks = a.blocks[:len(a.blocks)-1]
		}
	}

	// Whitespace directly after a boundary belongs to the markup, not
	// the document.
	if len(a.text) == 0 || endsWithDelimiter(a) {
		b = trimLeadingSpace(b)
	} else if len(b.text) > 0 && b.text[0] == ' ' && a.text[len(a.text)-1] == ' ' {
		b = trimLeadingSpace(b)
	}

	out := chunk{
		text:     make([]rune, 0, len(a.text)+len(b.text)),
		inlines:  make([]content.StyleSet, 0, len(a.inlines)+len(b.inlines)),
		entities: make([]string, 0, len(a.entities)+len(b.entities)),
		blocks:   make([]blockDescriptor, 0, len(a.blocks)+len(b.blocks)),
	}
	out.text = append(append(out.text, a.text...), b.text...)
	out.inlines = append(append(out.inlines, a.inlines...), b.inlines...)
	out.entities = append(append(out.entities, a.entities...), b.entities...)
	out.blocks = append(append(out.blocks, a.blocks...), b.blocks...)
	return out
}

func endsWithDelimiter(c chunk) bool {
	return len(c.text) > 0 && c.text[len(c.text)-1] == delimiter && len(c.blocks) > 0
}

func startsWithDelimiter(c chunk) bool {
	return len(c.text) > 0 && c.text[0] == delimiter
}

func trimLeadingSpace(c chunk) chunk {
	n := 0
	for n < len(c.text) && c.text[n] == ' ' {
		n++
	}
	if n == 0 {
		return c
	}
	c.text = c.text[n:]
	c.inlines = c.inlines[n:]
	c.entities = c.entities[n:]
	return c
}

// segment is one delimiter-separated slice of the chunk, paired with its
// descriptor at finalization.
type segment struct {
	text     []rune
	inlines  []content.StyleSet
	entities []string
}

// split slices the chunk on its delimiters. A chunk with no delimiters
// yields a single segment.
func (c chunk) split() []segment {
	var segs []segment
	start := 0
	for i, r := range c.text {
		if r == delimiter {
			segs = append(segs, segment{
				text:     c.text[start:i],
				inlines:  c.inlines[start:i],
				entities: c.entities[start:i],
			})
			start = i + 1
		}
	}
	segs = append(segs, segment{
		text:     c.text[start:],
		inlines:  c.inlines[start:],
		entities: c.entities[start:],
	})
	return segs
}

// finalize turns the chunk into content blocks. Each segment becomes one
// block under its descriptor. A document that never produced a boundary
// gets a single synthesized paragraph; a segment left without a descriptor
// falls back to a default paragraph rather than failing the conversion.
func (c chunk) finalize(keys content.KeyGenerator) ([]*content.ContentBlock, error) {
	// A leading delimiter opens the first segment; without the strip it
	// would read as an empty segment before the first block.
	if startsWithDelimiter(c) {
		c.text = c.text[1:]
		c.inlines = c.inlines[1:]
		c.entities = c.entities[1:]
	}

	segs := c.split()
	descs := c.blocks

	// Text before the first boundary has no descriptor of its own.
	if len(segs) == len(descs)+1 {
		descs = append([]blockDescriptor{defaultParagraph(keys)}, descs...)
	}

	blocks := make([]*content.ContentBlock, 0, len(segs))
	for i, seg := range segs {
		var d blockDescriptor
		if i < len(descs) {
			d = descs[i]
		} else {
			d = defaultParagraph(keys)
		}

		chars := make([]content.CharacterMetadata, len(seg.text))
		for j := range seg.text {
			chars[j] = content.Meta(seg.inlines[j], seg.entities[j])
		}
		b, err := content.NewBlock(d.key, d.typ).
			WithParent(d.parentKey).
			WithDepth(d.depth).
			WithRichText(string(seg.text), chars)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func defaultParagraph(keys content.KeyGenerator) blockDescriptor {
	return blockDescriptor{typ: content.BlockParagraph, key: keys.NextKey()}
}
