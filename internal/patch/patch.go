package patch

import (
	"sort"

	"github.com/wan-qy/superstring/internal/unicode16"
)

// Patch is an ordered, non-overlapping list of Changes, sorted by
// NewStart (equivalently OldStart, since changes never reorder across
// coordinate spaces).
type Patch struct {
	changes []Change
}

// New returns an empty patch.
func New() *Patch {
	return &Patch{}
}

// ChangeCount returns the number of changes recorded.
func (p *Patch) ChangeCount() int { return len(p.changes) }

// Changes returns the patch's changes in sorted order. Callers must treat
// the returned slice as read-only.
func (p *Patch) Changes() []Change { return p.changes }

// Clear discards every change.
func (p *Patch) Clear() { p.changes = nil }

// FindChangeForNewPosition returns the change whose [NewStart, NewEnd)
// contains p, or nil if none does.
func (p *Patch) FindChangeForNewPosition(pos Point) *Change {
	i := p.indexOfLastChangeStartingAtOrBefore(pos)
	if i < 0 {
		return nil
	}
	c := &p.changes[i]
	if pos.Compare(c.NewEnd) < 0 {
		return c
	}
	return nil
}

// ChangeForNewPosition is FindChangeForNewPosition but treats the open
// end of the change's span as inclusive, so a position exactly at a
// change's NewEnd is still reported as inside that change. This is the
// query the top layer uses, per the layer's clip_position contract: it
// stabilises clip behaviour at the tail of the most recent edit.
func (p *Patch) ChangeForNewPosition(pos Point) *Change {
	i := p.indexOfLastChangeStartingAtOrBefore(pos)
	if i < 0 {
		return nil
	}
	c := &p.changes[i]
	if pos.Compare(c.NewEnd) <= 0 {
		return c
	}
	return nil
}

// FindChangeEndingAfterNewPosition returns the first change, in sorted
// order, whose NewEnd is strictly greater than pos, or nil if none.
func (p *Patch) FindChangeEndingAfterNewPosition(pos Point) *Change {
	i := sort.Search(len(p.changes), func(i int) bool {
		return p.changes[i].NewEnd.Compare(pos) > 0
	})
	if i >= len(p.changes) {
		return nil
	}
	return &p.changes[i]
}

// indexOfLastChangeStartingAtOrBefore returns the index of the last
// change whose NewStart <= pos, or -1 if no such change exists.
func (p *Patch) indexOfLastChangeStartingAtOrBefore(pos Point) int {
	i := sort.Search(len(p.changes), func(i int) bool {
		return p.changes[i].NewStart.Compare(pos) > 0
	})
	return i - 1
}

// Splice records that the region [start, start+deletedExtent) — expressed
// in this patch's current (pre-splice) coordinate space — has been
// replaced by newText, which spans newExtent and whose deletion removed
// deletedTextSize code units from the ultimate parent. Any existing
// changes overlapping the replaced region are merged into the new one;
// changes entirely after it have their NewStart/NewEnd shifted by the net
// delta between newExtent and deletedExtent.
func (p *Patch) Splice(start, deletedExtent, newExtent Point, newText *unicode16.Text, deletedTextSize uint32) {
	deletionEnd := unicode16.Traverse(start, deletedExtent)
	newEnd := unicode16.Traverse(start, newExtent)

	lo := sort.Search(len(p.changes), func(i int) bool {
		return p.changes[i].NewEnd.Compare(start) > 0
	})
	hi := lo
	for hi < len(p.changes) && p.changes[hi].NewStart.Compare(deletionEnd) < 0 {
		hi++
	}

	oldStart := p.translateToOldStart(start, lo)
	oldEnd := p.translateToOldEnd(deletionEnd, hi, oldStart, deletedExtent)

	merged := Change{
		OldStart:    oldStart,
		OldEnd:      oldEnd,
		NewStart:    start,
		NewEnd:      newEnd,
		OldTextSize: deletedTextSize,
		NewText:     newText,
	}

	tail := make([]Change, len(p.changes)-hi)
	copy(tail, p.changes[hi:])
	for i := range tail {
		tail[i].NewStart = shiftPoint(tail[i].NewStart, deletionEnd, newEnd)
		tail[i].NewEnd = shiftPoint(tail[i].NewEnd, deletionEnd, newEnd)
	}

	result := make([]Change, 0, lo+1+len(tail))
	result = append(result, p.changes[:lo]...)
	result = append(result, merged)
	result = append(result, tail...)
	p.changes = result
	p.recomputePrecedingSizes()
}

// shiftPoint moves a point that lies at or after pivotOld to the
// equivalent position after the pivot has moved to pivotNew, using the
// point algebra rather than raw arithmetic so rows and columns compose
// correctly across the shift.
func shiftPoint(q, pivotOld, pivotNew Point) Point {
	return unicode16.Traverse(pivotNew, unicode16.Traversal(q, pivotOld))
}

// translateToOldStart finds the old-coordinate point corresponding to a
// new-coordinate point newPos, given that the first overlapped change (if
// any) is at index lo.
func (p *Patch) translateToOldStart(newPos Point, lo int) Point {
	if lo < len(p.changes) && p.changes[lo].NewStart.Compare(newPos) <= 0 {
		return p.changes[lo].OldStart
	}
	// Nearest preceding, non-overlapped change: translate via its end.
	if lo > 0 {
		prev := p.changes[lo-1]
		return unicode16.Traverse(prev.OldEnd, unicode16.Traversal(newPos, prev.NewEnd))
	}
	return newPos
}

// translateToOldEnd finds the old-coordinate point corresponding to a
// new-coordinate point deletionEnd, given that the last overlapped change
// (if any) is at index hi-1. oldStart traversed by deletedExtent is used
// when no change informs the translation at all.
func (p *Patch) translateToOldEnd(deletionEnd Point, hi int, oldStart Point, deletedExtent Point) Point {
	if hi > 0 && p.changes[hi-1].NewEnd.Compare(deletionEnd) >= 0 {
		return p.changes[hi-1].OldEnd
	}
	if hi < len(p.changes) {
		next := p.changes[hi]
		return unicode16.Traverse(next.OldStart, unicode16.Traversal(deletionEnd, next.NewStart))
	}
	return unicode16.Traverse(oldStart, deletedExtent)
}

func (p *Patch) recomputePrecedingSizes() {
	var oldTotal, newTotal uint32
	for i := range p.changes {
		p.changes[i].PrecedingOldTextSize = oldTotal
		p.changes[i].PrecedingNewTextSize = newTotal
		oldTotal += p.changes[i].OldTextSize
		if p.changes[i].NewText != nil {
			newTotal += p.changes[i].NewText.Size()
		}
	}
}

// Clone returns a deep-enough copy of the patch for use as a base in
// Combine: the Change slice is copied, NewText pointers are shared.
func (p *Patch) Clone() *Patch {
	c := &Patch{changes: make([]Change, len(p.changes))}
	copy(c.changes, p.changes)
	return c
}

// Combine merges other into p, producing a single patch equivalent to
// applying both sets of edits in sequence. When leftToRight is true, p is
// treated as the earlier ("old") patch and other's changes — whose old
// coordinates are p's new coordinates — are replayed against it via
// Splice, in sorted order, each at its NewStart (the position it has once
// every earlier change of other has been replayed). When leftToRight is
// false, the roles swap: other becomes the base and p's changes are
// replayed against it instead, for callers that hold the later patch as
// the receiver.
func (p *Patch) Combine(other *Patch, leftToRight bool) {
	var base, overlay *Patch
	if leftToRight {
		base, overlay = p.Clone(), other
	} else {
		base, overlay = other.Clone(), p
	}
	for _, c := range overlay.changes {
		oldExtent := unicode16.Traversal(c.OldEnd, c.OldStart)
		newExtent := unicode16.Traversal(c.NewEnd, c.NewStart)
		base.Splice(c.NewStart, oldExtent, newExtent, c.NewText, c.OldTextSize)
	}
	p.changes = base.changes
}
