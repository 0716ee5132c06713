package content

import "fmt"

// BlockMap is a persistent ordered mapping from block key to ContentBlock.
// Reading the map in order yields a valid pre-order flattening of the block
// forest. BlockMap is immutable: mutating operations return a new map that
// shares all block values with the receiver.
type BlockMap struct {
	order    []string
	blocks   map[string]*ContentBlock
	children map[string][]string // parent key -> ordered child keys; "" holds roots
}

// NewBlockMap builds a map from blocks in document order. It validates key
// uniqueness, parent resolution, and pre-order consistency, failing fast on
// any structural inconsistency.
func NewBlockMap(blocks []*ContentBlock) (*BlockMap, error) {
	m := &BlockMap{
		order:    make([]string, 0, len(blocks)),
		blocks:   make(map[string]*ContentBlock, len(blocks)),
		children: make(map[string][]string),
	}
	for _, b := range blocks {
		if _, exists := m.blocks[b.Key()]; exists {
			return nil, fmt.Errorf("block %s: %w", b.Key(), ErrDuplicateKey)
		}
		m.order = append(m.order, b.Key())
		m.blocks[b.Key()] = b
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	m.buildChildren()
	return m, nil
}

// validate checks parent resolution and the pre-order flattening property.
func (m *BlockMap) validate() error {
	for _, key := range m.order {
		b := m.blocks[key]
		if b.ParentKey() == "" {
			continue
		}
		if _, ok := m.blocks[b.ParentKey()]; !ok {
			return fmt.Errorf("block %s parent %s: %w", key, b.ParentKey(), ErrDanglingParent)
		}
	}

	// A block's parent must be an open ancestor: seen already, and not yet
	// closed by a sibling at the same or a shallower level.
	var stack []string
	for _, key := range m.order {
		parent := m.blocks[key].ParentKey()
		for len(stack) > 0 && stack[len(stack)-1] != parent {
			stack = stack[:len(stack)-1]
		}
		if parent != "" && len(stack) == 0 {
			return fmt.Errorf("block %s under %s: %w", key, parent, ErrBadOrder)
		}
		stack = append(stack, key)
	}
	return nil
}

func (m *BlockMap) buildChildren() {
	for _, key := range m.order {
		parent := m.blocks[key].ParentKey()
		m.children[parent] = append(m.children[parent], key)
	}
}

// Len returns the number of blocks in the map.
func (m *BlockMap) Len() int { return len(m.order) }

// Get returns the block with the given key.
func (m *BlockMap) Get(key string) (*ContentBlock, error) {
	b, ok := m.blocks[key]
	if !ok {
		return nil, fmt.Errorf("block %s: %w", key, ErrBlockNotFound)
	}
	return b, nil
}

// Lookup returns the block with the given key, if present.
func (m *BlockMap) Lookup(key string) (*ContentBlock, bool) {
	b, ok := m.blocks[key]
	return b, ok
}

// Keys returns the block keys in document order. The slice is a copy.
func (m *BlockMap) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// BlocksInOrder returns all blocks in document order.
func (m *BlockMap) BlocksInOrder() []*ContentBlock {
	out := make([]*ContentBlock, len(m.order))
	for i, key := range m.order {
		out[i] = m.blocks[key]
	}
	return out
}

// First returns the first block in document order, or nil if empty.
func (m *BlockMap) First() *ContentBlock {
	if len(m.order) == 0 {
		return nil
	}
	return m.blocks[m.order[0]]
}

// Last returns the last block in document order, or nil if empty.
func (m *BlockMap) Last() *ContentBlock {
	if len(m.order) == 0 {
		return nil
	}
	return m.blocks[m.order[len(m.order)-1]]
}

// IndexOf returns the position of a key in document order.
func (m *BlockMap) IndexOf(key string) (int, bool) {
	for i, k := range m.order {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

// Children returns the direct children of the given key in tree order.
// Passing "" returns the root blocks.
func (m *BlockMap) Children(key string) []*ContentBlock {
	keys := m.children[key]
	if len(keys) == 0 {
		return nil
	}
	out := make([]*ContentBlock, len(keys))
	for i, k := range keys {
		out[i] = m.blocks[k]
	}
	return out
}

// Descendants returns the subtree rooted at key in pre-order, excluding the
// root itself.
func (m *BlockMap) Descendants(key string) []*ContentBlock {
	var out []*ContentBlock
	var walk func(k string)
	walk = func(k string) {
		for _, child := range m.children[k] {
			out = append(out, m.blocks[child])
			walk(child)
		}
	}
	walk(key)
	return out
}

// PrevSibling returns the sibling immediately before the given block, if any.
func (m *BlockMap) PrevSibling(key string) (*ContentBlock, bool) {
	b, ok := m.blocks[key]
	if !ok {
		return nil, false
	}
	sibs := m.children[b.ParentKey()]
	for i, k := range sibs {
		if k == key && i > 0 {
			return m.blocks[sibs[i-1]], true
		}
	}
	return nil, false
}

// NextSibling returns the sibling immediately after the given block, if any.
func (m *BlockMap) NextSibling(key string) (*ContentBlock, bool) {
	b, ok := m.blocks[key]
	if !ok {
		return nil, false
	}
	sibs := m.children[b.ParentKey()]
	for i, k := range sibs {
		if k == key && i+1 < len(sibs) {
			return m.blocks[sibs[i+1]], true
		}
	}
	return nil, false
}

// Replace returns a map with the block of the same key replaced. The
// replacement must not change the key.
func (m *BlockMap) Replace(block *ContentBlock) (*BlockMap, error) {
	old, ok := m.blocks[block.Key()]
	if !ok {
		return nil, fmt.Errorf("replace %s: %w", block.Key(), ErrBlockNotFound)
	}
	next := m.cloneShallow()
	next.blocks[block.Key()] = block
	if old.ParentKey() != block.ParentKey() {
		// Reparenting can invalidate ordering; revalidate from scratch.
		if err := next.validate(); err != nil {
			return nil, err
		}
		next.children = make(map[string][]string)
		next.buildChildren()
	}
	return next, nil
}

// Splice returns a map with the block at key replaced by the given blocks,
// in order, at the same position. The resulting map is fully revalidated.
func (m *BlockMap) Splice(key string, replacement []*ContentBlock) (*BlockMap, error) {
	idx, ok := m.IndexOf(key)
	if !ok {
		return nil, fmt.Errorf("splice at %s: %w", key, ErrBlockNotFound)
	}
	blocks := make([]*ContentBlock, 0, len(m.order)-1+len(replacement))
	for i, k := range m.order {
		if i == idx {
			blocks = append(blocks, replacement...)
			continue
		}
		blocks = append(blocks, m.blocks[k])
	}
	return NewBlockMap(blocks)
}

// Delete returns a map with the given keys removed. The resulting map is
// fully revalidated, so removing a parent while keeping its children fails
// with ErrDanglingParent.
func (m *BlockMap) Delete(keys ...string) (*BlockMap, error) {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, ok := m.blocks[k]; !ok {
			return nil, fmt.Errorf("delete %s: %w", k, ErrBlockNotFound)
		}
		drop[k] = true
	}
	blocks := make([]*ContentBlock, 0, len(m.order)-len(keys))
	for _, k := range m.order {
		if !drop[k] {
			blocks = append(blocks, m.blocks[k])
		}
	}
	return NewBlockMap(blocks)
}

func (m *BlockMap) cloneShallow() *BlockMap {
	next := &BlockMap{
		order:    m.order,
		blocks:   make(map[string]*ContentBlock, len(m.blocks)),
		children: m.children,
	}
	for k, v := range m.blocks {
		next.blocks[k] = v
	}
	return next
}
