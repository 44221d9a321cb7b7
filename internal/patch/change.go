package patch

import "github.com/wan-qy/superstring/internal/unicode16"

// Change records one edit: the span [OldStart, OldEnd) it replaced in the
// parent's coordinates, the span [NewStart, NewEnd) it occupies in this
// layer's coordinates, and the replacement text. OldTextSize is the
// number of code units deleted from the parent; it is tracked separately
// from OldEnd-OldStart's row/column delta because it is needed in code
// units, not points, by clip_position's CRLF-stitch arithmetic.
//
// PrecedingOldTextSize and PrecedingNewTextSize are the running totals of
// OldTextSize and NewText.Size() over every change before this one in
// the patch's sorted order; they let a query translate between old and
// new coordinates without rescanning every prior change.
type Change struct {
	OldStart Point
	OldEnd   Point
	NewStart Point
	NewEnd   Point

	OldTextSize uint32
	NewText     *unicode16.Text

	PrecedingOldTextSize uint32
	PrecedingNewTextSize uint32
}

// Point is an alias so callers of this package do not need to import
// unicode16 directly just to build a Change.
type Point = unicode16.Point

// clone returns a deep-enough copy of the change: the NewText pointer is
// shared (Text is never mutated once attached to a Change) but the struct
// itself is copied so callers may reorder or edit bookkeeping fields
// independently.
func (c Change) clone() Change { return c }
