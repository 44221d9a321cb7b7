package unicode16

// TextSlice is a view of a contiguous span of code units inside a Text. A
// slice does not own its backing storage and must not outlive the Text it
// views, mirroring the "chunk iteration callback" contract of the layer
// stack: callers copy out before returning.
type TextSlice struct {
	text  *Text
	start uint32 // inclusive offset into text.units
	end   uint32 // exclusive offset into text.units
}

// Size returns the number of code units in the slice.
func (s TextSlice) Size() uint32 { return s.end - s.start }

// IsEmpty reports whether the slice spans no code units.
func (s TextSlice) IsEmpty() bool { return s.start >= s.end }

// Extent returns the slice's span expressed as a Point delta, relative to
// its own start.
func (s TextSlice) Extent() Point {
	return Traversal(s.text.PositionForOffset(s.end), s.text.PositionForOffset(s.start))
}

// At returns the code unit at offset i within the slice.
func (s TextSlice) At(i uint32) uint16 {
	return s.text.units[s.start+i]
}

// Front returns the first code unit of the slice and whether the slice is
// non-empty.
func (s TextSlice) Front() (uint16, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	return s.text.units[s.start], true
}

// Back returns the last code unit of the slice and whether the slice is
// non-empty.
func (s TextSlice) Back() (uint16, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	return s.text.units[s.end-1], true
}

// Units returns a copy of the slice's code units. Callers that need the
// content to outlive the originating chunk-iteration callback must use
// this rather than holding onto the TextSlice itself.
func (s TextSlice) Units() []uint16 {
	return append([]uint16(nil), s.text.units[s.start:s.end]...)
}

// String renders the slice to a Go string.
func (s TextSlice) String() string {
	return NewTextFromUTF16(s.text.units[s.start:s.end]).String()
}

// PositionForOffset returns the Point, relative to the slice's own start,
// for a code-unit offset within the slice.
func (s TextSlice) PositionForOffset(offset uint32) Point {
	if offset > s.Size() {
		offset = s.Size()
	}
	absolute := s.text.PositionForOffset(s.start + offset)
	sliceStart := s.text.PositionForOffset(s.start)
	return Traversal(absolute, sliceStart)
}

// ClipPosition clips a Point relative to the slice's own start, returning
// a ClipResult whose offset is also relative to the slice.
func (s TextSlice) ClipPosition(p Point) ClipResult {
	sliceStart := s.text.PositionForOffset(s.start)
	absolute := Traverse(sliceStart, p)
	r := s.text.ClipPosition(absolute)
	if r.Offset > s.end {
		r.Offset = s.end
	}
	if r.Offset < s.start {
		r.Offset = s.start
	}
	return ClipResult{Position: Traversal(r.Position, sliceStart), Offset: r.Offset - s.start}
}

// Slice returns a sub-slice of this slice covering the given relative
// code-unit range.
func (s TextSlice) Slice(r Range) TextSlice {
	start := s.ClipPosition(r.Start).Offset
	end := s.ClipPosition(r.End).Offset
	return TextSlice{text: s.text, start: s.start + start, end: s.start + end}
}

// Prefix returns the portion of the slice before p.
func (s TextSlice) Prefix(p Point) TextSlice {
	end := s.ClipPosition(p).Offset
	return TextSlice{text: s.text, start: s.start, end: s.start + end}
}

// Suffix returns the portion of the slice from p onward.
func (s TextSlice) Suffix(p Point) TextSlice {
	start := s.ClipPosition(p).Offset
	return TextSlice{text: s.text, start: s.start + start, end: s.end}
}
