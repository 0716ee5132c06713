package content

import "github.com/rivo/uniseg"

// Cursor helpers over grapheme clusters. Model offsets are rune offsets, but
// a cursor placed inside a multi-rune cluster (emoji sequences, combining
// marks) is invisible to the user; these helpers let callers step cursors by
// user-perceived character.

// graphemeBoundaries returns the rune offsets that start each grapheme
// cluster in text, plus the final offset.
func graphemeBoundaries(text string) []int {
	bounds := []int{0}
	off := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		off += len([]rune(cluster))
		bounds = append(bounds, off)
	}
	return bounds
}

// IsCursorBoundary reports whether the rune offset falls on a grapheme
// cluster boundary of text.
func IsCursorBoundary(text string, offset int) bool {
	for _, b := range graphemeBoundaries(text) {
		if b == offset {
			return true
		}
		if b > offset {
			return false
		}
	}
	return false
}

// NextCursorOffset returns the next grapheme boundary after offset, or the
// text length when offset is at or past the end.
func NextCursorOffset(text string, offset int) int {
	bounds := graphemeBoundaries(text)
	for _, b := range bounds {
		if b > offset {
			return b
		}
	}
	return bounds[len(bounds)-1]
}

// PrevCursorOffset returns the previous grapheme boundary before offset, or
// 0 when offset is at or before the start.
func PrevCursorOffset(text string, offset int) int {
	prev := 0
	for _, b := range graphemeBoundaries(text) {
		if b >= offset {
			break
		}
		prev = b
	}
	return prev
}
