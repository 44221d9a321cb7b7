package buffer

import (
	"github.com/wan-qy/superstring/internal/patch"
	"github.com/wan-qy/superstring/internal/unicode16"
)

// layer is a node in the patch stack. Its parent capability is modelled
// as a closed two-case sum type — exactly one of parent or base is set —
// rather than an interface, so every query monomorphises into one of two
// branches instead of dispatching through a boxed value.
type layer struct {
	parent *layer
	base   *unicode16.Text

	patch  *patch.Patch
	extent unicode16.Point
	size   uint32

	snapshotCount uint32
	isFirst       bool
	isLast        bool

	debugID string
}

func newFirstLayer(base *unicode16.Text) *layer {
	return &layer{
		base:    base,
		patch:   patch.New(),
		extent:  base.Extent(),
		size:    base.Size(),
		isFirst: true,
		isLast:  true,
	}
}

func newLayerAbove(parent *layer) *layer {
	return &layer{
		parent: parent,
		patch:  patch.New(),
		extent: parent.extent,
		size:   parent.size,
		isLast: true,
	}
}

func (l *layer) Size() uint32            { return l.size }
func (l *layer) Extent() unicode16.Point { return l.extent }

func (l *layer) parentSize() uint32 {
	if l.parent != nil {
		return l.parent.Size()
	}
	return l.base.Size()
}

func (l *layer) parentCharacterAt(p unicode16.Point) uint16 {
	if l.parent != nil {
		return l.parent.CharacterAt(p)
	}
	return l.base.CharacterAt(p)
}

func (l *layer) parentClipPosition(p unicode16.Point) unicode16.ClipResult {
	if l.parent != nil {
		return l.parent.ClipPosition(p)
	}
	return l.base.ClipPosition(p)
}

func (l *layer) parentForEachChunkInRange(start, end unicode16.Point, cb func(unicode16.TextSlice) bool) bool {
	if l.parent != nil {
		return l.parent.ForEachChunkInRange(start, end, cb)
	}
	return l.base.ForEachChunkInRange(start, end, cb)
}

// CharacterAt returns the code unit at position, descending the patch
// stack until it is resolved against an inserted change or the base text.
func (l *layer) CharacterAt(position unicode16.Point) uint16 {
	if change := l.patch.FindChangeForNewPosition(position); change != nil {
		rel := unicode16.Traversal(position, change.NewStart)
		offset := change.NewText.ClipPosition(rel).Offset
		units := change.NewText.Units()
		if int(offset) < len(units) {
			return units[offset]
		}
		parentPos := unicode16.Traverse(change.OldEnd, unicode16.Traversal(position, change.NewEnd))
		return l.parentCharacterAt(parentPos)
	}
	if prev := l.precedingChange(position); prev != nil {
		parentPos := unicode16.Traverse(prev.OldEnd, unicode16.Traversal(position, prev.NewEnd))
		return l.parentCharacterAt(parentPos)
	}
	return l.parentCharacterAt(position)
}

// precedingChange returns the last change, in sorted order, whose
// NewStart <= position, or nil. It is used to translate positions that
// fall in the gap after a change but before the next one, where old and
// new coordinates differ only by a constant shift.
func (l *layer) precedingChange(position unicode16.Point) *patch.Change {
	changes := l.patch.Changes()
	lo, hi := 0, len(changes)
	for lo < hi {
		mid := (lo + hi) / 2
		if changes[mid].NewStart.Compare(position) <= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return nil
	}
	return &changes[lo-1]
}

func previousColumn(p unicode16.Point) unicode16.Point {
	return unicode16.Point{Row: p.Row, Column: p.Column - 1}
}

// ClipPosition snaps position to the nearest valid boundary and returns
// it together with its absolute code-unit offset within this layer,
// implementing the two CRLF-stitch rules so a CR/LF pair split across an
// edit boundary still collapses to one logical position.
func (l *layer) ClipPosition(position unicode16.Point) unicode16.ClipResult {
	var change *patch.Change
	if l.isLast {
		change = l.patch.ChangeForNewPosition(position)
	} else {
		change = l.patch.FindChangeForNewPosition(position)
	}

	if change == nil {
		// Not inside any change's span. If a change precedes position,
		// position still sits at-or-after that change's end — the same
		// situation Case B below handles, including its CRLF stitch — so
		// route through the identical code path instead of a plain
		// translation that would silently skip the stitch.
		if prev := l.precedingChange(position); prev != nil {
			return l.clipCaseB(prev, position)
		}
		return l.parentClipPosition(position)
	}

	if position.Compare(change.NewEnd) < 0 {
		// Case A: inside the inserted text.
		baseOffset := l.parentClipPosition(change.OldStart).Offset
		currentOffset := baseOffset + change.PrecedingNewTextSize - change.PrecedingOldTextSize

		r := change.NewText.ClipPosition(unicode16.Traversal(position, change.NewStart))
		if r.Offset == 0 && change.OldStart.Column > 0 {
			units := change.NewText.Units()
			if len(units) > 0 && units[0] == '\n' && l.parentCharacterAt(previousColumn(change.OldStart)) == '\r' {
				return unicode16.ClipResult{Position: previousColumn(change.NewStart), Offset: currentOffset - 1}
			}
		}
		return unicode16.ClipResult{Position: unicode16.Traverse(change.NewStart, r.Position), Offset: currentOffset + r.Offset}
	}

	// Case B: at or after the end of the insertion.
	return l.clipCaseB(change, position)
}

// clipCaseB handles clipping a position at or after change's insertion —
// including the point exactly at change.NewEnd, which is where the
// CRLF-stitch-across-insertion-end rule lives. It is shared by the
// change!=nil "at or after NewEnd" branch of ClipPosition and by the
// change==nil gap branch once a preceding change has been found, so a
// layer that is not isLast still runs the stitch for positions strictly
// past a change's span, not only for positions inside one.
func (l *layer) clipCaseB(change *patch.Change, position unicode16.Point) unicode16.ClipResult {
	baseOffset := l.parentClipPosition(change.OldStart).Offset
	currentOffset := baseOffset + change.PrecedingNewTextSize - change.PrecedingOldTextSize

	parentPos := unicode16.Traverse(change.OldEnd, unicode16.Traversal(position, change.NewEnd))
	b := l.parentClipPosition(parentPos)
	distancePosition := unicode16.Traversal(b.Position, change.OldEnd)
	distanceOffset := b.Offset - (baseOffset + change.OldTextSize)

	if distanceOffset == 0 && b.Offset < l.parentSize() {
		var prevChar uint16
		units := change.NewText.Units()
		if len(units) > 0 {
			prevChar = units[len(units)-1]
		} else if change.OldStart.Column > 0 {
			prevChar = l.parentCharacterAt(previousColumn(change.OldStart))
		}
		if prevChar == '\r' && l.parentCharacterAt(b.Position) == '\n' {
			return unicode16.ClipResult{Position: previousColumn(change.NewEnd), Offset: currentOffset + change.NewText.Size() - 1}
		}
	}
	return unicode16.ClipResult{
		Position: unicode16.Traverse(change.NewEnd, distancePosition),
		Offset:   currentOffset + change.NewText.Size() + distanceOffset,
	}
}

// parentPositionFor translates a position in this layer's coordinates
// into the corresponding position in its parent's coordinates, used to
// seed for_each_chunk_in_range's base_position.
func (l *layer) parentPositionFor(p unicode16.Point) unicode16.Point {
	if change := l.patch.FindChangeForNewPosition(p); change != nil {
		return change.OldStart
	}
	if prev := l.precedingChange(p); prev != nil {
		return unicode16.Traverse(prev.OldEnd, unicode16.Traversal(p, prev.NewEnd))
	}
	return p
}

// ForEachChunkInRange emits the minimum number of TextSlice fragments
// covering [start, end) in order. The callback returning true aborts
// iteration; that result propagates as this method's own return value.
func (l *layer) ForEachChunkInRange(start, end unicode16.Point, cb func(unicode16.TextSlice) bool) bool {
	goal := l.ClipPosition(end).Position
	current := l.ClipPosition(start).Position
	base := l.parentPositionFor(current)

	for current.Before(goal) {
		if change := l.patch.FindChangeForNewPosition(current); change != nil {
			clippedEnd := unicode16.Min(change.NewEnd, goal)
			startOff := change.NewText.ClipPosition(unicode16.Traversal(current, change.NewStart)).Offset
			endOff := change.NewText.ClipPosition(unicode16.Traversal(clippedEnd, change.NewStart)).Offset
			if startOff < endOff {
				if cb(change.NewText.Slice(startOff, endOff)) {
					return true
				}
			}
			current = clippedEnd
			base = change.OldEnd
			continue
		}

		next := l.patch.FindChangeEndingAfterNewPosition(current)
		remaining := unicode16.Traversal(goal, current)
		var nextBase, nextCurrent unicode16.Point
		if next != nil && next.NewStart.Before(goal) {
			nextBase = unicode16.Min(unicode16.Traverse(base, remaining), next.OldStart)
			nextCurrent = unicode16.Min(goal, next.NewStart)
		} else {
			nextBase = unicode16.Traverse(base, remaining)
			nextCurrent = goal
		}

		if l.parentForEachChunkInRange(base, nextBase, cb) {
			return true
		}
		current = nextCurrent
		base = nextBase
	}
	return false
}

// PositionForOffset walks chunks from the start of the layer accumulating
// offset until it finds the chunk containing goalOffset, clamping to
// Extent() if goalOffset exceeds Size().
func (l *layer) PositionForOffset(goalOffset uint32) unicode16.Point {
	if goalOffset >= l.size {
		return l.extent
	}

	var result unicode16.Point
	var runningOffset uint32
	var runningPoint unicode16.Point

	found := l.ForEachChunkInRange(unicode16.Zero, l.extent, func(s unicode16.TextSlice) bool {
		if goalOffset < runningOffset+s.Size() {
			result = unicode16.Traverse(runningPoint, s.PositionForOffset(goalOffset-runningOffset))
			return true
		}
		runningPoint = unicode16.Traverse(runningPoint, s.Extent())
		runningOffset += s.Size()
		return false
	})
	if !found {
		return l.extent
	}
	return result
}

// TextInRange materialises [r.Start, r.End) as a standalone Text.
func (l *layer) TextInRange(r unicode16.Range) *unicode16.Text {
	var units []uint16
	l.ForEachChunkInRange(r.Start, r.End, func(s unicode16.TextSlice) bool {
		units = append(units, s.Units()...)
		return false
	})
	return unicode16.NewTextFromUTF16(units)
}

// ChunksInRange materialises [r.Start, r.End) as a sequence of
// independent TextSlices, each copied out of its source chunk so they
// outlive the iteration that produced them.
func (l *layer) ChunksInRange(r unicode16.Range) []unicode16.TextSlice {
	var chunks []unicode16.TextSlice
	l.ForEachChunkInRange(r.Start, r.End, func(s unicode16.TextSlice) bool {
		t := unicode16.NewTextFromUTF16(s.Units())
		chunks = append(chunks, t.Slice(0, t.Size()))
		return false
	})
	return chunks
}

// SetTextInRange splices newText into [oldRange.Start, oldRange.End),
// updating the layer's cached size and extent. Only the top layer is
// ever mutated this way; non-top layers are immutable for the lifetime
// of any snapshot that pins them.
func (l *layer) SetTextInRange(oldRange unicode16.Range, newText *unicode16.Text) {
	start := l.ClipPosition(oldRange.Start)
	end := l.ClipPosition(oldRange.End)
	deletedSize := end.Offset - start.Offset

	l.patch.Splice(oldRange.Start, oldRange.Extent(), newText.Extent(), newText, deletedSize)

	newEndPos := unicode16.Traverse(start.Position, newText.Extent())
	l.extent = unicode16.Traverse(newEndPos, unicode16.Traversal(l.extent, end.Position))
	l.size = l.size - deletedSize + newText.Size()
}
