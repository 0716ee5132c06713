package content

import "testing"

func TestCursorBoundariesASCII(t *testing.T) {
	text := "abc"
	for off := 0; off <= 3; off++ {
		if !IsCursorBoundary(text, off) {
			t.Errorf("offset %d should be a boundary in plain ASCII", off)
		}
	}
}

func TestCursorBoundariesCombining(t *testing.T) {
	// "e" followed by a combining acute accent is one user-perceived character.
	text := "éx"
	if !IsCursorBoundary(text, 0) || !IsCursorBoundary(text, 2) || !IsCursorBoundary(text, 3) {
		t.Error("cluster edges should be boundaries")
	}
	if IsCursorBoundary(text, 1) {
		t.Error("inside a combining sequence is not a boundary")
	}
}

func TestNextPrevCursorOffset(t *testing.T) {
	text := "éx" // boundaries at 0, 2, 3

	if got := NextCursorOffset(text, 0); got != 2 {
		t.Errorf("next from 0: expected 2, got %d", got)
	}
	if got := NextCursorOffset(text, 1); got != 2 {
		t.Errorf("next from inside cluster: expected 2, got %d", got)
	}
	if got := NextCursorOffset(text, 3); got != 3 {
		t.Errorf("next from end: expected 3, got %d", got)
	}

	if got := PrevCursorOffset(text, 3); got != 2 {
		t.Errorf("prev from 3: expected 2, got %d", got)
	}
	if got := PrevCursorOffset(text, 2); got != 0 {
		t.Errorf("prev from 2: expected 0, got %d", got)
	}
	if got := PrevCursorOffset(text, 0); got != 0 {
		t.Errorf("prev from 0: expected 0, got %d", got)
	}
}

func TestCursorOffsetsEmptyText(t *testing.T) {
	if NextCursorOffset("", 0) != 0 || PrevCursorOffset("", 0) != 0 {
		t.Error("empty text has a single boundary at 0")
	}
	if !IsCursorBoundary("", 0) {
		t.Error("offset 0 is a boundary of empty text")
	}
}
