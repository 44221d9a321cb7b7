package unicode16

import (
	"testing"
	"testing/quick"
)

func TestClipPositionCollapsesLFOntoCR(t *testing.T) {
	txt := NewTextFromString("abc\r\ndef")
	r := txt.ClipPosition(Point{Row: 0, Column: 4})
	if r.Position != (Point{Row: 0, Column: 3}) || r.Offset != 3 {
		t.Fatalf("ClipPosition((0,4)) = %+v, want position (0,3) offset 3", r)
	}
}

func TestClipPositionClampsPastEndOfLine(t *testing.T) {
	txt := NewTextFromString("abc\ndef")
	r := txt.ClipPosition(Point{Row: 0, Column: MaxColumn})
	if r.Position.Column != 3 {
		t.Fatalf("end-of-row column = %d, want 3", r.Position.Column)
	}
}

func TestClipPositionSnapsMidSurrogate(t *testing.T) {
	// U+1F601 encodes as the surrogate pair D83D DE01.
	txt := NewTextFromUTF16([]uint16{'a', 'b', 0xD83D, 0xDE01, 'c', 'd'})
	r := txt.ClipPosition(Point{Row: 0, Column: 3})
	if r.Offset != 2 {
		t.Fatalf("mid-surrogate clip offset = %d, want 2", r.Offset)
	}
}

func TestPositionForOffsetRoundTrip(t *testing.T) {
	txt := NewTextFromString("abc\ndef\nghi")
	f := func(o uint8) bool {
		offset := uint32(o) % (txt.Size() + 1)
		p := txt.PositionForOffset(offset)
		got := txt.ClipPosition(p).Offset
		return got == offset
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestExtentMatchesLastRow(t *testing.T) {
	txt := NewTextFromString("abc\ndef")
	if got := txt.Extent(); got != (Point{Row: 1, Column: 3}) {
		t.Fatalf("Extent() = %v, want (1,3)", got)
	}
}

func TestSpliceReplacesRange(t *testing.T) {
	txt := NewTextFromString("abc\ndef")
	txt.Splice(Point{Row: 0, Column: 1}, Point{Row: 0, Column: 1}, NewTextFromString("BB"))
	if got := txt.String(); got != "aBBc\ndef" {
		t.Fatalf("Splice result = %q, want aBBc\\ndef", got)
	}
}
