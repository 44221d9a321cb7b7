package buffer

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/wan-qy/superstring/internal/patch"
	"github.com/wan-qy/superstring/internal/unicode16"
)

// LineEnding identifies the line-terminator sequence found at the end of
// a row.
type LineEnding int

const (
	// LineEndingNone marks the last row, which has no terminator.
	LineEndingNone LineEnding = iota
	LineEndingLF
	LineEndingCRLF
)

// String returns the literal terminator sequence.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	default:
		return ""
	}
}

// TextBuffer is the top-level owner of the base text and the top of the
// layer stack. Reads delegate to the top layer; writes splice into the
// top layer's patch only.
type TextBuffer struct {
	baseText *unicode16.Text
	topLayer *layer

	logger          Logger
	debugIDs        bool
	chunkTargetSize uint32
	searchTimeout   time.Duration
}

// New creates a buffer over text, with one empty first layer.
func New(text *unicode16.Text, opts ...Option) *TextBuffer {
	if text == nil {
		text = unicode16.NewText()
	}
	b := &TextBuffer{
		baseText:        text,
		logger:          noopLogger{},
		chunkTargetSize: 4096,
	}
	b.topLayer = newFirstLayer(text)
	for _, opt := range opts {
		opt(b)
	}
	if b.debugIDs {
		b.topLayer.debugID = uuid.New().String()
	}
	return b
}

// NewFromString creates a buffer from a Go string, encoded to UTF-16.
func NewFromString(s string, opts ...Option) *TextBuffer {
	return New(unicode16.NewTextFromString(s), opts...)
}

// ResetBaseText replaces the base text outright. It is allowed only when
// the top layer is the first layer; otherwise it returns false and makes
// no change.
func (b *TextBuffer) ResetBaseText(t *unicode16.Text) bool {
	if !b.topLayer.isFirst {
		return false
	}
	b.baseText = t
	b.topLayer.base = t
	b.topLayer.patch.Clear()
	b.topLayer.extent = t.Extent()
	b.topLayer.size = t.Size()
	return true
}

// FlushOutstandingChanges applies every pending change to the base text
// and clears the patch. Allowed only when the top layer is the first
// layer. Changes are applied in reverse sorted order so that an earlier
// change's recorded OldStart/OldEnd — expressed against the base text as
// it was before any flushing — stays valid as later changes are applied.
func (b *TextBuffer) FlushOutstandingChanges() bool {
	if !b.topLayer.isFirst {
		return false
	}
	changes := b.topLayer.patch.Changes()
	for i := len(changes) - 1; i >= 0; i-- {
		c := changes[i]
		b.baseText.Splice(c.OldStart, unicode16.Traversal(c.OldEnd, c.OldStart), c.NewText)
	}
	b.topLayer.patch.Clear()
	b.topLayer.base = b.baseText
	b.topLayer.extent = b.baseText.Extent()
	b.topLayer.size = b.baseText.Size()
	return true
}

// SerializeOutstandingChanges writes the top layer's patch, then its
// cached size and extent, to w. Allowed only when the top layer is the
// first layer.
func (b *TextBuffer) SerializeOutstandingChanges(w io.Writer) bool {
	if !b.topLayer.isFirst {
		return false
	}
	if err := b.topLayer.patch.Serialize(w); err != nil {
		return false
	}
	if err := writeUint32(w, b.topLayer.size); err != nil {
		return false
	}
	if err := writePoint(w, b.topLayer.extent); err != nil {
		return false
	}
	return true
}

// DeserializeOutstandingChanges reads back a patch written by
// SerializeOutstandingChanges. Allowed only when the top layer is the
// first layer and its current patch is empty.
func (b *TextBuffer) DeserializeOutstandingChanges(r io.Reader) bool {
	if !b.topLayer.isFirst || b.topLayer.patch.ChangeCount() != 0 {
		return false
	}
	p, err := patch.Deserialize(r)
	if err != nil {
		return false
	}
	size, err := readUint32(r)
	if err != nil {
		return false
	}
	extent, err := readPoint(r)
	if err != nil {
		return false
	}
	b.topLayer.patch = p
	b.topLayer.size = size
	b.topLayer.extent = extent
	return true
}

// SetText replaces the entire visible text with t.
func (b *TextBuffer) SetText(t *unicode16.Text) {
	b.SetTextInRange(unicode16.Range{Start: unicode16.Zero, End: b.Extent()}, t)
}

// SetTextInRange replaces [r.Start, r.End) with t, delegating to the top
// layer.
func (b *TextBuffer) SetTextInRange(r unicode16.Range, t *unicode16.Text) {
	b.topLayer.SetTextInRange(r, t)
}

// Extent returns the buffer's extent.
func (b *TextBuffer) Extent() unicode16.Point { return b.topLayer.Extent() }

// Size returns the buffer's size in code units.
func (b *TextBuffer) Size() uint32 { return b.topLayer.Size() }

// ClipPosition snaps a point to the nearest valid boundary.
func (b *TextBuffer) ClipPosition(p unicode16.Point) unicode16.ClipResult {
	return b.topLayer.ClipPosition(p)
}

// PositionForOffset returns the Point for a code-unit offset.
func (b *TextBuffer) PositionForOffset(offset uint32) unicode16.Point {
	return b.topLayer.PositionForOffset(offset)
}

// Text returns the buffer's full text.
func (b *TextBuffer) Text() *unicode16.Text {
	return b.TextInRange(unicode16.Range{Start: unicode16.Zero, End: b.Extent()})
}

// TextInRange returns the text within r.
func (b *TextBuffer) TextInRange(r unicode16.Range) *unicode16.Text {
	return b.topLayer.TextInRange(r)
}

// Chunks returns the buffer's text as a sequence of independent chunks.
func (b *TextBuffer) Chunks() []unicode16.TextSlice {
	return b.ChunksInRange(unicode16.Range{Start: unicode16.Zero, End: b.Extent()})
}

// ChunksInRange returns the text within r as a sequence of independent
// chunks. Each chunk yielded by the layer stack is further split at
// chunkTargetSize, so callers holding a large unedited span still get
// output bounded to roughly the hinted size instead of one huge
// fragment per underlying source chunk.
func (b *TextBuffer) ChunksInRange(r unicode16.Range) []unicode16.TextSlice {
	return splitChunks(b.topLayer.ChunksInRange(r), b.chunkTargetSize)
}

// splitChunks re-chunks slices so that none exceeds targetSize code
// units, preserving order and total content. targetSize == 0 disables
// splitting (ChunksInRange's output is returned unchanged).
func splitChunks(chunks []unicode16.TextSlice, targetSize uint32) []unicode16.TextSlice {
	if targetSize == 0 {
		return chunks
	}
	out := make([]unicode16.TextSlice, 0, len(chunks))
	for _, c := range chunks {
		units := c.Units()
		for uint32(len(units)) > targetSize {
			head := unicode16.NewTextFromUTF16(units[:targetSize])
			out = append(out, head.Slice(0, head.Size()))
			units = units[targetSize:]
		}
		if len(units) > 0 {
			tail := unicode16.NewTextFromUTF16(units)
			out = append(out, tail.Slice(0, tail.Size()))
		}
	}
	return out
}

// LineLengthForRow returns the number of code units on row, excluding
// its line terminator.
func (b *TextBuffer) LineLengthForRow(row uint32) uint32 {
	return b.ClipPosition(unicode16.Point{Row: row, Column: unicode16.MaxColumn}).Position.Column
}

// LineEndingForRow returns the terminator style at the end of row.
func (b *TextBuffer) LineEndingForRow(row uint32) LineEnding {
	result := LineEndingNone
	b.topLayer.ForEachChunkInRange(
		unicode16.Point{Row: row, Column: unicode16.MaxColumn},
		unicode16.Point{Row: row + 1, Column: 0},
		func(s unicode16.TextSlice) bool {
			front, ok := s.Front()
			if !ok {
				return false
			}
			if front == '\r' {
				result = LineEndingCRLF
			} else {
				result = LineEndingLF
			}
			return true
		},
	)
	return result
}

// IsModified reports whether any layer in the stack has a non-empty
// patch.
func (b *TextBuffer) IsModified() bool {
	for l := b.topLayer; l != nil; l = l.parent {
		if l.patch.ChangeCount() > 0 {
			return true
		}
	}
	return false
}

// BaseTextDigest returns a stable, order-sensitive hash of the base
// text's code units, used to detect an underlying file change out from
// under the buffer.
func (b *TextBuffer) BaseTextDigest() uint64 {
	return b.baseText.Digest()
}

// CodepointOffsetForPosition returns the Unicode code-point offset (not
// UTF-16 code-unit offset) corresponding to p, built on the same
// surrogate-pair accounting as the search iterator. It supplements the
// code-unit-only PositionForOffset/ClipPosition pair with a code-point
// coordinate for callers working in rune space instead of UTF-16 units.
func (b *TextBuffer) CodepointOffsetForPosition(p unicode16.Point) uint32 {
	codeUnitOffset := b.ClipPosition(p).Offset
	units := b.Text().Units()
	var cp uint32
	var i uint32
	for i < codeUnitOffset && i < uint32(len(units)) {
		if unicode16.IsHighSurrogate(units[i]) && i+1 < uint32(len(units)) && unicode16.IsLowSurrogate(units[i+1]) {
			i += 2
		} else {
			i++
		}
		cp++
	}
	return cp
}

// PositionForCodepointOffset is the inverse of CodepointOffsetForPosition.
func (b *TextBuffer) PositionForCodepointOffset(codepointOffset uint32) unicode16.Point {
	units := b.Text().Units()
	var cp, i uint32
	for cp < codepointOffset && i < uint32(len(units)) {
		if unicode16.IsHighSurrogate(units[i]) && i+1 < uint32(len(units)) && unicode16.IsLowSurrogate(units[i+1]) {
			i += 2
		} else {
			i++
		}
		cp++
	}
	return b.PositionForOffset(i)
}
