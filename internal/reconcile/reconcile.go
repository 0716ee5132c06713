// Package reconcile pushes an abstract selection into a host environment's
// native selection object.
//
// A renderer splits each block's text across one or more render units.
// Reconciliation visits the units in document order and, for each unit
// containing a selection endpoint, updates the native selection. Native
// range APIs are anchor-relative and cannot create a backward range
// directly, so backward selections are applied in two passes: the focus is
// placed first as a collapsed point, then when the anchor's unit is
// reached the range is rebuilt from the anchor and extended back to the
// previously placed focus.
package reconcile

import "github.com/dshills/richdoc/internal/selection"

// NativeSelection abstracts the host selection and range API. The native
// focus moves by extension relative to the already-placed anchor, which is
// why ordering matters throughout this package.
type NativeSelection interface {
	// RangeCount returns the number of ranges the selection holds.
	RangeCount() int

	// HasVisibleRange reports whether the current range occupies visible
	// space. Some hosts briefly hold a zero-size range during focus
	// transitions; that state cannot be extended reliably.
	HasVisibleRange() bool

	// Collapse replaces the selection with a collapsed range at the
	// given unit and unit-local offset.
	Collapse(unit string, offset int)

	// Extend moves the focus endpoint, keeping the anchor. It fails when
	// the host's focused element differs from the selection owner.
	Extend(unit string, offset int) error

	// Anchor returns the current anchor endpoint.
	Anchor() (unit string, offset int)

	// Focus returns the current focus endpoint.
	Focus() (unit string, offset int)

	// RemoveAllRanges clears the selection.
	RemoveAllRanges()
}

// RenderUnit identifies one rendered run of a block's text: the block key
// and the closed rune span [Start, End] the unit covers.
type RenderUnit struct {
	Key   string
	Start int
	End   int
}

// contains uses closed-interval containment so a boundary offset belongs
// to both the unit ending there and the unit starting there.
func (u RenderUnit) contains(key string, offset int) bool {
	return u.Key == key && u.Start <= offset && offset <= u.End
}

// SyncUnit applies the parts of sel that fall inside unit to the native
// selection. Units must be visited in document order for multi-unit
// selections to come out right. A selection without input focus is left
// alone. Extension failures propagate: continuing after one would leave
// the native state silently out of sync with the model.
func SyncUnit(native NativeSelection, unit RenderUnit, sel selection.SelectionState) error {
	if !sel.HasFocus() {
		return nil
	}
	hasAnchor := unit.contains(sel.AnchorKey(), sel.AnchorOffset())
	hasFocus := unit.contains(sel.FocusKey(), sel.FocusOffset())

	if !sel.IsBackward() {
		if hasAnchor {
			addPoint(native, unit.Key, sel.AnchorOffset()-unit.Start)
		}
		if hasFocus {
			return native.Extend(unit.Key, sel.FocusOffset()-unit.Start)
		}
		return nil
	}

	// Backward: the focus is placed first as a collapsed point. When the
	// anchor's unit arrives, whatever focus the native selection holds is
	// captured, the range is rebuilt at the anchor, and the captured
	// focus is restored by extension.
	if hasFocus {
		addPoint(native, unit.Key, sel.FocusOffset()-unit.Start)
	}
	if hasAnchor {
		focusUnit, focusOffset := native.Focus()
		native.RemoveAllRanges()
		addPoint(native, unit.Key, sel.AnchorOffset()-unit.Start)
		return native.Extend(focusUnit, focusOffset)
	}
	return nil
}

// Sync reconciles sel against every unit in document order.
func Sync(native NativeSelection, units []RenderUnit, sel selection.SelectionState) error {
	for _, unit := range units {
		if err := SyncUnit(native, unit, sel); err != nil {
			return err
		}
	}
	return nil
}

// addPoint sets a collapsed range. A selection stuck in the degenerate
// zero-size state is destroyed and recreated first; a valid visible range
// is never torn down here.
func addPoint(native NativeSelection, unit string, offset int) {
	if native.RangeCount() > 0 && !native.HasVisibleRange() {
		native.RemoveAllRanges()
	}
	native.Collapse(unit, offset)
}
