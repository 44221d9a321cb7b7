package buffer

import (
	"github.com/google/uuid"

	"github.com/wan-qy/superstring/internal/unicode16"
)

// Snapshot is an immutable, pinned view of a buffer at the moment it was
// created. Edits made to the buffer afterward never alter what a live
// Snapshot sees; the buffer instead grows a new top layer above the
// pinned one. Snapshots never expose mutating operations.
type Snapshot struct {
	buffer *TextBuffer
	pinned *layer
}

// CreateSnapshot pins the buffer's current state and returns a view onto
// it. If the top layer already has an empty patch and is not the first
// layer, the layer below it is pinned instead and the existing empty top
// layer stays in place, rather than stacking up empty layers on repeated
// snapshotting with no edits in between.
func (b *TextBuffer) CreateSnapshot() *Snapshot {
	top := b.topLayer
	var pinned *layer
	if !top.isFirst && top.patch.ChangeCount() == 0 {
		pinned = top.parent
	} else {
		pinned = top
		pinned.isLast = false
		b.topLayer = newLayerAbove(pinned)
		if b.debugIDs {
			b.topLayer.debugID = uuid.New().String()
		}
	}
	pinned.snapshotCount++
	return &Snapshot{buffer: b, pinned: pinned}
}

// Text returns the snapshot's full text.
func (s *Snapshot) Text() *unicode16.Text {
	return s.TextInRange(unicode16.Range{Start: unicode16.Zero, End: s.Extent()})
}

// TextInRange returns the text within r, as it was when the snapshot was
// created.
func (s *Snapshot) TextInRange(r unicode16.Range) *unicode16.Text {
	return s.pinned.TextInRange(r)
}

// Extent returns the snapshot's extent.
func (s *Snapshot) Extent() unicode16.Point { return s.pinned.Extent() }

// Size returns the snapshot's size in code units.
func (s *Snapshot) Size() uint32 { return s.pinned.Size() }

// ClipPosition snaps a point to the nearest valid boundary within the
// snapshot.
func (s *Snapshot) ClipPosition(p unicode16.Point) unicode16.ClipResult {
	return s.pinned.ClipPosition(p)
}

// Chunks returns the snapshot's text as a sequence of independent chunks.
func (s *Snapshot) Chunks() []unicode16.TextSlice {
	return s.pinned.ChunksInRange(unicode16.Range{Start: unicode16.Zero, End: s.Extent()})
}

// Release unpins the snapshot. Once every snapshot pinning a layer has
// been released, and that layer is no longer the buffer's top, the
// layer stack folds ("coalesces") as far down as it can: layers whose
// parent nobody else is pinning are merged into that parent's patch via
// Patch.Combine, one fold at a time, working from the innermost
// unpinned layer (the one sitting directly above the surviving base)
// outward toward the top. Each fold's patch is always the later of the
// two — already expressed in the accumulated base's current
// coordinate space — so every call keeps Combine's leftToRight fixed at
// true. Release is idempotent; calling it more than once on the same
// Snapshot is a no-op.
func (s *Snapshot) Release() {
	if s.pinned == nil {
		return
	}
	pinned := s.pinned
	s.pinned = nil

	pinned.snapshotCount--
	if pinned.snapshotCount > 0 {
		return
	}
	if pinned == s.buffer.topLayer {
		return
	}
	if s.buffer.topLayer.snapshotCount > 0 {
		return
	}

	var upper []*layer
	for l := s.buffer.topLayer; l.parent != nil && l.parent.snapshotCount == 0; l = l.parent {
		upper = append(upper, l)
	}
	if len(upper) == 0 {
		return
	}

	base := upper[len(upper)-1].parent
	base.size = s.buffer.topLayer.size
	base.extent = s.buffer.topLayer.extent

	s.buffer.logger.Debugf("coalescing %d layer(s) into base (debugID=%q)", len(upper), base.debugID)
	for i := len(upper) - 1; i >= 0; i-- {
		base.patch.Combine(upper[i].patch, true)
	}

	base.isLast = true
	s.buffer.topLayer = base
}
