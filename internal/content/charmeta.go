package content

import "sync"

// CharacterMetadata describes the inline styling and entity reference of a
// single character. It is an immutable value type with value equality: two
// instances with equal contents are interchangeable, which is what diffing
// during incremental re-render relies on.
type CharacterMetadata struct {
	styles StyleSet
	entity string
}

// EmptyMeta is the metadata of an unstyled character with no entity.
var EmptyMeta = CharacterMetadata{}

// metaPool interns style sets so equal CharacterMetadata values share the
// backing storage of their style lists.
var metaPool = struct {
	sync.Mutex
	sets map[string]StyleSet
}{sets: make(map[string]StyleSet)}

func internStyles(s StyleSet) StyleSet {
	if s.IsEmpty() {
		return StyleSet{}
	}
	k := s.key()
	metaPool.Lock()
	defer metaPool.Unlock()
	if cached, ok := metaPool.sets[k]; ok {
		return cached
	}
	metaPool.sets[k] = s
	return s
}

// Meta creates character metadata with the given styles and entity key.
// An empty entity key means no entity reference.
func Meta(styles StyleSet, entity string) CharacterMetadata {
	return CharacterMetadata{styles: internStyles(styles), entity: entity}
}

// Styles returns the character's style set.
func (m CharacterMetadata) Styles() StyleSet { return m.styles }

// Entity returns the character's entity key, if any.
func (m CharacterMetadata) Entity() (string, bool) {
	return m.entity, m.entity != ""
}

// HasStyle reports whether the character carries the given style.
func (m CharacterMetadata) HasStyle(name string) bool {
	return m.styles.Has(name)
}

// WithStyle returns metadata that additionally carries the given style.
func (m CharacterMetadata) WithStyle(name string) CharacterMetadata {
	if m.styles.Has(name) {
		return m
	}
	return Meta(m.styles.With(name), m.entity)
}

// WithoutStyle returns metadata with the given style removed.
func (m CharacterMetadata) WithoutStyle(name string) CharacterMetadata {
	if !m.styles.Has(name) {
		return m
	}
	return Meta(m.styles.Without(name), m.entity)
}

// WithEntity returns metadata referencing the given entity key.
func (m CharacterMetadata) WithEntity(key string) CharacterMetadata {
	if m.entity == key {
		return m
	}
	return CharacterMetadata{styles: m.styles, entity: key}
}

// Equal reports whether two metadata values have equal contents.
func (m CharacterMetadata) Equal(other CharacterMetadata) bool {
	return m.entity == other.entity && m.styles.Equal(other.styles)
}

// RepeatMeta returns a character list of n copies of m.
func RepeatMeta(m CharacterMetadata, n int) []CharacterMetadata {
	if n <= 0 {
		return nil
	}
	out := make([]CharacterMetadata, n)
	for i := range out {
		out[i] = m
	}
	return out
}
