package content

import (
	"sort"
	"strings"
)

// Inline style names used by the HTML importer and the raw codec. Styles are
// open-ended strings; these are the ones with built-in tag mappings.
const (
	StyleBold          = "BOLD"
	StyleItalic        = "ITALIC"
	StyleUnderline     = "UNDERLINE"
	StyleStrikethrough = "STRIKETHROUGH"
	StyleCode          = "CODE"
)

// StyleSet is an immutable, ordered set of inline style names.
// The zero value is the empty set.
type StyleSet struct {
	styles []string // sorted, unique; never mutated after construction
}

// NewStyleSet creates a style set from the given names.
func NewStyleSet(names ...string) StyleSet {
	if len(names) == 0 {
		return StyleSet{}
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	sort.Strings(out)
	out = dedupSorted(out)
	if len(out) == 0 {
		return StyleSet{}
	}
	return StyleSet{styles: out}
}

func dedupSorted(s []string) []string {
	w := 0
	for i, v := range s {
		if i == 0 || v != s[w-1] {
			s[w] = v
			w++
		}
	}
	return s[:w]
}

// Has reports whether the set contains the given style.
func (s StyleSet) Has(name string) bool {
	i := sort.SearchStrings(s.styles, name)
	return i < len(s.styles) && s.styles[i] == name
}

// With returns a set that additionally contains the given style.
func (s StyleSet) With(name string) StyleSet {
	if name == "" || s.Has(name) {
		return s
	}
	out := make([]string, 0, len(s.styles)+1)
	out = append(out, s.styles...)
	out = append(out, name)
	sort.Strings(out)
	return StyleSet{styles: out}
}

// Without returns a set with the given style removed.
func (s StyleSet) Without(name string) StyleSet {
	if !s.Has(name) {
		return s
	}
	out := make([]string, 0, len(s.styles)-1)
	for _, v := range s.styles {
		if v != name {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return StyleSet{}
	}
	return StyleSet{styles: out}
}

// Len returns the number of styles in the set.
func (s StyleSet) Len() int { return len(s.styles) }

// IsEmpty reports whether the set contains no styles.
func (s StyleSet) IsEmpty() bool { return len(s.styles) == 0 }

// List returns the styles in sorted order. The returned slice is a copy.
func (s StyleSet) List() []string {
	if len(s.styles) == 0 {
		return nil
	}
	out := make([]string, len(s.styles))
	copy(out, s.styles)
	return out
}

// Equal reports whether two sets contain the same styles.
func (s StyleSet) Equal(other StyleSet) bool {
	if len(s.styles) != len(other.styles) {
		return false
	}
	for i, v := range s.styles {
		if other.styles[i] != v {
			return false
		}
	}
	return true
}

// key returns a canonical representation used for interning and hashing.
func (s StyleSet) key() string {
	return strings.Join(s.styles, "\x1f")
}

// String returns a human-readable representation of the set.
func (s StyleSet) String() string {
	return "{" + strings.Join(s.styles, ",") + "}"
}
