package selection

import "testing"

func TestCollapsed(t *testing.T) {
	s := Collapsed("b1", 4)

	if s.AnchorKey() != "b1" || s.FocusKey() != "b1" {
		t.Error("collapsed selection should use the same key for both ends")
	}
	if s.AnchorOffset() != 4 || s.FocusOffset() != 4 {
		t.Errorf("expected offsets 4/4, got %d/%d", s.AnchorOffset(), s.FocusOffset())
	}
	if !s.IsCollapsed() {
		t.Error("expected collapsed selection")
	}
	if s.IsBackward() {
		t.Error("collapsed selection should not be backward")
	}
}

func TestCollapsedClampsNegativeOffset(t *testing.T) {
	s := Collapsed("b1", -3)
	if s.AnchorOffset() != 0 {
		t.Errorf("negative offset should clamp to 0, got %d", s.AnchorOffset())
	}
}

func TestBetweenForward(t *testing.T) {
	s := Between("a", 1, "b", 3, false)

	if s.IsCollapsed() {
		t.Error("selection with extent should not be collapsed")
	}
	if s.StartKey() != "a" || s.StartOffset() != 1 {
		t.Errorf("expected start a:1, got %s:%d", s.StartKey(), s.StartOffset())
	}
	if s.EndKey() != "b" || s.EndOffset() != 3 {
		t.Errorf("expected end b:3, got %s:%d", s.EndKey(), s.EndOffset())
	}
}

func TestBetweenBackward(t *testing.T) {
	s := Between("b", 3, "a", 1, true)

	if !s.IsBackward() {
		t.Error("expected backward selection")
	}
	if s.StartKey() != "a" || s.StartOffset() != 1 {
		t.Errorf("backward start should be the focus point, got %s:%d", s.StartKey(), s.StartOffset())
	}
	if s.EndKey() != "b" || s.EndOffset() != 3 {
		t.Errorf("backward end should be the anchor point, got %s:%d", s.EndKey(), s.EndOffset())
	}
}

func TestFlipRoundTrip(t *testing.T) {
	fwd := Between("a", 1, "b", 3, false)
	back := fwd.Flip()

	if !back.IsBackward() {
		t.Error("flipped forward selection should be backward")
	}
	if !back.SameRange(fwd) {
		t.Error("flip should preserve the covered range")
	}
	if !back.Flip().Equal(fwd) {
		t.Error("double flip should restore the original selection")
	}
}

func TestFlipCollapsed(t *testing.T) {
	s := Collapsed("a", 2)
	if !s.Flip().Equal(s) {
		t.Error("collapsed selection should flip to itself")
	}
}

func TestCollapseToStartEnd(t *testing.T) {
	s := Between("b", 3, "a", 1, true).WithFocus(true)

	start := s.CollapseToStart()
	if !start.IsCollapsed() || start.AnchorKey() != "a" || start.AnchorOffset() != 1 {
		t.Errorf("expected collapsed at a:1, got %v", start)
	}
	if !start.HasFocus() {
		t.Error("collapse should preserve the focus flag")
	}

	end := s.CollapseToEnd()
	if !end.IsCollapsed() || end.AnchorKey() != "b" || end.AnchorOffset() != 3 {
		t.Errorf("expected collapsed at b:3, got %v", end)
	}
}

func TestWithFocus(t *testing.T) {
	s := Collapsed("a", 0)
	if s.HasFocus() {
		t.Error("selections should not have focus by default")
	}
	if !s.WithFocus(true).HasFocus() {
		t.Error("WithFocus(true) should set the flag")
	}
	if s.HasFocus() {
		t.Error("original selection must be unchanged")
	}
}

func TestString(t *testing.T) {
	if got := Collapsed("a", 2).String(); got != "Cursor(a:2)" {
		t.Errorf("unexpected string: %s", got)
	}
	if got := Between("a", 1, "b", 3, false).String(); got != "Selection(a:1 forward b:3)" {
		t.Errorf("unexpected string: %s", got)
	}
}
