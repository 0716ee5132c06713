package htmlimport

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/richdoc/internal/content"
	"github.com/dshills/richdoc/internal/entity"
	"github.com/dshills/richdoc/internal/renderconfig"
)

// containerTypes are block types whose child elements become child blocks.
var containerTypes = map[content.BlockType]bool{
	content.BlockOrderedList:   true,
	content.BlockUnorderedList: true,
	content.BlockListItem:      true,
	content.BlockTable:         true,
	content.BlockTableBody:     true,
	content.BlockTableRow:      true,
	content.BlockTableCell:     true,
}

// skippedTags are subtrees that contribute nothing to document content.
var skippedTags = map[string]bool{
	"head": true, "iframe": true, "link": true, "meta": true,
	"noscript": true, "object": true, "script": true, "style": true,
	"title": true,
}

// Importer converts markup into content blocks. The zero configuration
// uses the default render config, a fresh in-memory entity registry, and
// random block keys.
type Importer struct {
	cfg  *renderconfig.Config
	tags map[string]content.BlockType
	reg  entity.Registry
	keys content.KeyGenerator
}

// Option configures an Importer.
type Option func(*Importer)

// WithConfig sets the render configuration whose supported-tag set drives
// block splitting.
func WithConfig(cfg *renderconfig.Config) Option {
	return func(im *Importer) { im.cfg = cfg }
}

// WithRegistry sets the entity registry that receives link entities.
func WithRegistry(reg entity.Registry) Option {
	return func(im *Importer) { im.reg = reg }
}

// WithKeys sets the block key generator.
func WithKeys(gen content.KeyGenerator) Option {
	return func(im *Importer) { im.keys = gen }
}

// NewImporter builds an importer.
func NewImporter(opts ...Option) *Importer {
	im := &Importer{}
	for _, opt := range opts {
		opt(im)
	}
	if im.cfg == nil {
		im.cfg = renderconfig.Default()
	}
	if im.reg == nil {
		im.reg = entity.NewInMemory()
	}
	if im.keys == nil {
		im.keys = content.RandomKeys()
	}
	im.tags = im.cfg.SupportedTags()
	return im
}

// Registry returns the entity registry entities were created in.
func (im *Importer) Registry() entity.Registry { return im.reg }

// ImportBlocks converts markup into an ordered block list. The result is
// never empty: markup with no content yields one empty paragraph.
func (im *Importer) ImportBlocks(markup string) ([]*content.ContentBlock, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	ck := im.walkChildren(findBody(doc), walkCtx{})
	return ck.finalize(im.keys)
}

// Import converts markup into a content state with the selection collapsed
// at the start of the first block.
func (im *Importer) Import(markup string) (*content.ContentState, error) {
	blocks, err := im.ImportBlocks(markup)
	if err != nil {
		return nil, err
	}
	return content.NewContentStateFromBlocks(blocks)
}

// ImportHTML is a convenience wrapper over a one-shot Importer.
func ImportHTML(markup string, opts ...Option) (*content.ContentState, error) {
	return NewImporter(opts...).Import(markup)
}

// walkCtx is the inherited traversal context.
type walkCtx struct {
	styles    content.StyleSet
	entityKey string
	parentKey string
	depth     int
	inPre     bool
}

func (im *Importer) walk(n *html.Node, ctx walkCtx) chunk {
	switch n.Type {
	case html.TextNode:
		return im.textNode(n.Data, ctx)
	case html.ElementNode:
		return im.elementNode(n, ctx)
	case html.DocumentNode:
		return im.walkChildren(n, ctx)
	default:
		return chunk{}
	}
}

// walkChildren joins a node's children in order. When the first child is a
// pure inline wrapper the siblings join concatenatively, because such
// wrappers never introduce a block boundary of their own.
func (im *Importer) walkChildren(n *html.Node, ctx walkCtx) chunk {
	if n == nil {
		return chunk{}
	}
	first := n.FirstChild
	concatenative := first != nil && first.Type == html.ElementNode && inlineWrappers[first.Data]

	out := chunk{}
	for c := first; c != nil; c = c.NextSibling {
		next := im.walk(c, ctx)
		if next.isEmpty() {
			continue
		}
		out = join(out, next, concatenative)
	}
	return out
}

func (im *Importer) elementNode(n *html.Node, ctx walkCtx) chunk {
	name := n.Data
	if skippedTags[name] {
		return chunk{}
	}
	if name == "br" {
		return dividerChunk(blockDescriptor{
			typ:       content.BlockParagraph,
			depth:     ctx.depth,
			key:       im.keys.NextKey(),
			parentKey: ctx.parentKey,
			forced:    true,
		})
	}

	child := ctx
	child.styles = styleForTag(ctx.styles, name)
	if attr, ok := attrValue(n.Attr, "style"); ok {
		child.styles = applyStyleAttr(child.styles, attr)
	}
	if name == "a" {
		if href, ok := attrValue(n.Attr, "href"); ok && href != "" {
			child.entityKey = im.reg.Create("LINK", entity.Mutable, map[string]any{"url": href})
		}
	}
	if name == "pre" {
		child.inPre = true
	}

	if typ, ok := im.tags[name]; ok {
		d := blockDescriptor{
			typ:       typ,
			depth:     ctx.depth,
			key:       im.keys.NextKey(),
			parentKey: ctx.parentKey,
		}
		// Containers adopt their child blocks; leaf blocks hold only
		// inline content, so their context parent passes through.
		if containerTypes[typ] {
			child.parentKey = d.key
		}
		if typ == content.BlockListItem {
			child.depth = content.ClampDepth(ctx.depth + 1)
		}
		return join(dividerChunk(d), im.walkChildren(n, child), false)
	}

	// Unrecognized div still splits paragraphs. The divider owns no
	// subtree, so the parent context is left alone.
	if name == "div" {
		d := blockDescriptor{
			typ:       content.BlockParagraph,
			depth:     ctx.depth,
			key:       im.keys.NextKey(),
			parentKey: ctx.parentKey,
		}
		return join(dividerChunk(d), im.walkChildren(n, child), false)
	}

	return im.walkChildren(n, child)
}

func (im *Importer) textNode(text string, ctx walkCtx) chunk {
	if ctx.inPre {
		return textChunk([]rune(text), ctx.styles, ctx.entityKey)
	}
	if strings.TrimSpace(text) == "" {
		// Newlines between tags are source formatting; other
		// whitespace-only nodes separate inline content.
		if strings.ContainsRune(text, '\n') {
			return chunk{}
		}
		return textChunk([]rune{' '}, ctx.styles, ctx.entityKey)
	}
	return textChunk([]rune(collapseWhitespace(text)), ctx.styles, ctx.entityKey)
}

// collapseWhitespace reduces every whitespace run to a single space.
func collapseWhitespace(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	inSpace := false
	for _, r := range text {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			if !inSpace {
				sb.WriteRune(' ')
			}
			inSpace = true
		default:
			sb.WriteRune(r)
			inSpace = false
		}
	}
	return sb.String()
}

func findBody(doc *html.Node) *html.Node {
	var body *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	if body == nil {
		return doc
	}
	return body
}
