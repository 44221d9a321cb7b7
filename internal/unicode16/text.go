package unicode16

import (
	"hash/fnv"
	"unicode/utf16"
)

const (
	unitCR = uint16('\r')
	unitLF = uint16('\n')
)

// Text is a flat, immutable-in-normal-operation container of UTF-16 code
// units. It is the buffer's base text: the leaf that every Layer in the
// patch stack eventually bottoms out at. Editing a live document never
// mutates a Text directly — that is the Patch stack's job — but
// TextBuffer.ResetBaseText and TextBuffer.FlushOutstandingChanges do
// replace or splice it when no layers stand above the first.
type Text struct {
	units      []uint16
	lineStarts []uint32 // lineStarts[r] is the code-unit offset of the start of row r.
}

// NewText returns an empty text.
func NewText() *Text {
	return &Text{lineStarts: []uint32{0}}
}

// NewTextFromUTF16 builds a Text directly from UTF-16 code units. This is
// the canonical constructor: callers are expected to hand the buffer
// UTF-16 code units already, since character-encoding transcoding is
// outside this module's scope.
func NewTextFromUTF16(units []uint16) *Text {
	t := &Text{units: append([]uint16(nil), units...)}
	t.reindex()
	return t
}

// NewTextFromString builds a Text from a Go string, encoding it to UTF-16
// via the standard library. This is a convenience for the common case of
// in-process UTF-8 text; it is not a general charset transcoder.
func NewTextFromString(s string) *Text {
	return NewTextFromUTF16(utf16.Encode([]rune(s)))
}

// reindex rebuilds the line-start index from units. A row starts at
// offset 0 and immediately after every LF, whether alone or the second
// half of a CRLF pair; a lone CR does not end a row.
func (t *Text) reindex() {
	starts := []uint32{0}
	for i := 0; i < len(t.units); i++ {
		if t.units[i] == unitLF {
			starts = append(starts, uint32(i+1))
		}
	}
	t.lineStarts = starts
}

// Size returns the number of UTF-16 code units in the text.
func (t *Text) Size() uint32 { return uint32(len(t.units)) }

// Extent returns the (row, column) of the end of the text.
func (t *Text) Extent() Point {
	row := uint32(len(t.lineStarts) - 1)
	col := uint32(len(t.units)) - t.lineStarts[row]
	return Point{Row: row, Column: col}
}

// String renders the text back to a Go string.
func (t *Text) String() string {
	return string(utf16.Decode(t.units))
}

// Units returns the underlying code units. Callers must not mutate the
// returned slice.
func (t *Text) Units() []uint16 { return t.units }

// Digest returns a stable, order-sensitive hash of the text's code units,
// used by TextBuffer.BaseTextDigest to detect underlying file changes.
func (t *Text) Digest() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 2)
	for _, u := range t.units {
		buf[0] = byte(u)
		buf[1] = byte(u >> 8)
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

// rowSpan returns, for row r: the offset of its first code unit, the
// offset of the first code unit of the next row (or Size() if r is the
// last row), and the length of its line-terminator sequence (0, 1, or 2).
func (t *Text) rowSpan(r uint32) (start, nextStart uint32, termLen uint32) {
	start = t.lineStarts[r]
	if int(r)+1 < len(t.lineStarts) {
		nextStart = t.lineStarts[r+1]
		switch {
		case nextStart >= 2 && t.units[nextStart-2] == unitCR && t.units[nextStart-1] == unitLF:
			termLen = 2
		default:
			termLen = 1
		}
	} else {
		nextStart = uint32(len(t.units))
		termLen = 0
	}
	return
}

// CharacterAt returns the code unit at p after clipping it with
// ClipPosition, or 0 if the clipped position is the end of the text.
func (t *Text) CharacterAt(p Point) uint16 {
	r := t.ClipPosition(p)
	if r.Offset >= uint32(len(t.units)) {
		return 0
	}
	return t.units[r.Offset]
}

// ClipPosition snaps p to the nearest valid boundary: rows clamp to the
// last row, columns clamp to end-of-row content, a column landing on the
// LF half of a CRLF pair collapses onto the CR, and a column landing
// between a high and low surrogate snaps back to the high surrogate.
func (t *Text) ClipPosition(p Point) ClipResult {
	lastRow := uint32(len(t.lineStarts) - 1)
	row := p.Row
	if row > lastRow {
		row = lastRow
	}

	start, nextStart, termLen := t.rowSpan(row)
	contentLen := nextStart - start - termLen

	col := p.Column
	switch {
	case col <= contentLen:
		// within content or exactly at the terminator-start boundary.
	case termLen == 2 && col == contentLen+1:
		// sitting on the LF half of a CRLF pair: collapse onto the CR.
		col = contentLen
	default:
		col = contentLen
	}

	offset := start + col

	// Mid-surrogate-pair clip: never land between a high and low surrogate.
	if offset > 0 && offset < uint32(len(t.units)) &&
		isLowSurrogate(t.units[offset]) && isHighSurrogate(t.units[offset-1]) {
		offset--
		col--
	}

	return ClipResult{Position: Point{Row: row, Column: col}, Offset: offset}
}

// PositionForOffset returns the Point for a code-unit offset, clamping to
// Extent() if offset exceeds Size().
func (t *Text) PositionForOffset(offset uint32) Point {
	if offset >= uint32(len(t.units)) {
		return t.Extent()
	}
	// binary search for the row containing offset
	lo, hi := 0, len(t.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if t.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return Point{Row: uint32(lo), Column: offset - t.lineStarts[lo]}
}

// ForEachChunkInRange emits the single TextSlice covering [start, end),
// after clipping both ends to valid boundaries. The base text, unlike a
// Layer, is never fragmented by edits, so it yields one chunk, or none
// when the clipped range is empty.
func (t *Text) ForEachChunkInRange(start, end Point, cb func(TextSlice) bool) bool {
	s := t.ClipPosition(start)
	e := t.ClipPosition(end)
	if s.Offset >= e.Offset {
		return false
	}
	return cb(TextSlice{text: t, start: s.Offset, end: e.Offset})
}

// Slice returns the TextSlice covering [start, end) of code-unit offsets.
func (t *Text) Slice(start, end uint32) TextSlice {
	return TextSlice{text: t, start: start, end: end}
}

// Splice replaces the region [point, point+deletedExtent) with newText,
// mutating the text in place. Within the buffer it is used only by
// TextBuffer.FlushOutstandingChanges, which is gated on "no layers above
// the first" per the buffer's precondition contract; ResetBaseText
// replaces the base text outright instead.
func (t *Text) Splice(point Point, deletedExtent Point, newText *Text) {
	startOffset := t.ClipPosition(point).Offset
	endPoint := Traverse(point, deletedExtent)
	endOffset := t.ClipPosition(endPoint).Offset

	merged := make([]uint16, 0, startOffset+uint32(len(newText.units))+(uint32(len(t.units))-endOffset))
	merged = append(merged, t.units[:startOffset]...)
	merged = append(merged, newText.units...)
	merged = append(merged, t.units[endOffset:]...)
	t.units = merged
	t.reindex()
}

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u <= 0xDBFF }
func isLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u <= 0xDFFF }
