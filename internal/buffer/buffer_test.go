package buffer

import (
	"bytes"
	"testing"
	"time"

	"github.com/wan-qy/superstring/internal/unicode16"
)

func rng(sr, sc, er, ec uint32) unicode16.Range {
	return unicode16.Range{
		Start: unicode16.Point{Row: sr, Column: sc},
		End:   unicode16.Point{Row: er, Column: ec},
	}
}

func TestSetTextInRangeSplicesMidLine(t *testing.T) {
	b := NewFromString("abc\ndef")
	b.SetTextInRange(rng(0, 1, 0, 2), unicode16.NewTextFromString("BB"))

	if got := b.Text().String(); got != "aBBc\ndef" {
		t.Fatalf("Text() = %q, want %q", got, "aBBc\ndef")
	}
	if got := b.LineLengthForRow(0); got != 4 {
		t.Fatalf("LineLengthForRow(0) = %d, want 4", got)
	}
	if got := b.Size(); got != 8 {
		t.Fatalf("Size() = %d, want 8", got)
	}
}

func TestClipPositionCollapsesLFOntoCRAcrossBuffer(t *testing.T) {
	b := NewFromString("abc\r\ndef")
	r := b.ClipPosition(unicode16.Point{Row: 0, Column: 4})
	want := unicode16.Point{Row: 0, Column: 3}
	if r.Position != want || r.Offset != 3 {
		t.Fatalf("ClipPosition((0,4)) = %+v, want Position %+v Offset 3", r, want)
	}
	if le := b.LineEndingForRow(0); le != LineEndingCRLF {
		t.Fatalf("LineEndingForRow(0) = %v, want CRLF", le)
	}
}

func TestSearchFindsSurrogatePairAsSingleCodepointOffset(t *testing.T) {
	b := NewFromString("ab\U0001F601cd")
	if got := b.Search("\U0001F601"); got != 2 {
		t.Fatalf("Search = %d, want 2", got)
	}
}

func TestCodepointIteratorOverSurrogatePair(t *testing.T) {
	b := NewFromString("ab\U0001F601cd")
	slices := b.Chunks()
	it := unicode16.NewCodepointIterator(slices)

	var got []rune
	for it.Next() {
		got = append(got, rune(it.Codepoint()))
	}
	want := []rune{'a', 'b', '\U0001F601', 'c', 'd'}
	if len(got) != len(want) {
		t.Fatalf("got %d codepoints, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("codepoint[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSnapshotIsolatesFromLaterEdits(t *testing.T) {
	b := NewFromString("abc")
	s1 := b.CreateSnapshot()

	b.SetTextInRange(rng(0, 1, 0, 2), unicode16.NewTextFromString("BB"))

	if got := s1.Text().String(); got != "abc" {
		t.Fatalf("s1.Text() = %q, want %q", got, "abc")
	}
	if got := b.Text().String(); got != "aBBc" {
		t.Fatalf("b.Text() = %q, want %q", got, "aBBc")
	}

	s1.Release()

	if got := b.Text().String(); got != "aBBc" {
		t.Fatalf("b.Text() after release = %q, want %q", got, "aBBc")
	}

	count := 0
	for l := b.topLayer; l != nil; l = l.parent {
		count++
	}
	if count != 1 {
		t.Fatalf("layer stack has %d layers after coalescence, want 1", count)
	}
}

func TestFlushOutstandingChangesClearsModifiedFlag(t *testing.T) {
	b := NewFromString("")
	b.SetTextInRange(rng(0, 0, 0, 0), unicode16.NewTextFromString("hello"))

	if !b.IsModified() {
		t.Fatal("IsModified() = false before flush, want true")
	}
	if ok := b.FlushOutstandingChanges(); !ok {
		t.Fatal("FlushOutstandingChanges() = false, want true")
	}
	if b.IsModified() {
		t.Fatal("IsModified() = true after flush, want false")
	}

	want := unicode16.NewTextFromString("hello").Digest()
	if got := b.BaseTextDigest(); got != want {
		t.Fatalf("BaseTextDigest() = %d, want %d", got, want)
	}
}

func TestSearchSentinels(t *testing.T) {
	b := NewFromString("abc")
	if got := b.Search("("); got != ResultInvalidPattern {
		t.Fatalf("Search(invalid) = %d, want %d", got, ResultInvalidPattern)
	}
	if got := b.Search("zzz"); got != ResultNoResults {
		t.Fatalf("Search(no match) = %d, want %d", got, ResultNoResults)
	}
}

func TestSetTextInRangeWithOwnTextIsANoop(t *testing.T) {
	b := NewFromString("hello world")
	r := rng(0, 2, 0, 7)
	existing := b.TextInRange(r)

	before := b.Text().String()
	b.SetTextInRange(r, existing)
	after := b.Text().String()

	if before != after {
		t.Fatalf("round-trip replace changed text: %q -> %q", before, after)
	}
}

func TestSerializeDeserializeOutstandingChangesRoundTrip(t *testing.T) {
	b := NewFromString("hello world")
	b.SetTextInRange(rng(0, 0, 0, 5), unicode16.NewTextFromString("HELLO"))

	var buf bytes.Buffer
	if ok := b.SerializeOutstandingChanges(&buf); !ok {
		t.Fatal("SerializeOutstandingChanges() = false")
	}

	b2 := NewFromString("hello world")
	if ok := b2.DeserializeOutstandingChanges(&buf); !ok {
		t.Fatal("DeserializeOutstandingChanges() = false")
	}

	if got, want := b2.Text().String(), b.Text().String(); got != want {
		t.Fatalf("b2.Text() = %q, want %q", got, want)
	}
}

func TestResetBaseTextFailsWhenNotFirstLayer(t *testing.T) {
	b := NewFromString("abc")
	_ = b.CreateSnapshot()

	if ok := b.ResetBaseText(unicode16.NewTextFromString("xyz")); ok {
		t.Fatal("ResetBaseText() = true with a non-first top layer, want false")
	}
}

func TestClipPositionIsIdempotentWithinExtent(t *testing.T) {
	b := NewFromString("abc\ndefgh\nij")
	extent := b.Extent()
	for row := uint32(0); row <= extent.Row; row++ {
		length := b.LineLengthForRow(row)
		for col := uint32(0); col <= length; col++ {
			p := unicode16.Point{Row: row, Column: col}
			r := b.ClipPosition(p)
			if r.Position != p {
				t.Fatalf("ClipPosition(%+v) = %+v, want idempotent", p, r.Position)
			}
		}
	}
}

func TestPositionForOffsetClipPositionRoundTrip(t *testing.T) {
	b := NewFromString("abc\ndefgh\nij")
	size := b.Size()
	for offset := uint32(0); offset <= size; offset++ {
		p := b.PositionForOffset(offset)
		if got := b.ClipPosition(p).Offset; got != offset {
			t.Fatalf("ClipPosition(PositionForOffset(%d)).Offset = %d, want %d", offset, got, offset)
		}
	}
}

func TestNewFromStringWithNoEditsMatchesOriginalText(t *testing.T) {
	b := NewFromString("unchanged text\nsecond line")
	if got := b.Text().String(); got != "unchanged text\nsecond line" {
		t.Fatalf("Text() = %q, want original", got)
	}
}

func TestChunksInRangeRespectsChunkTargetSize(t *testing.T) {
	b := NewFromString("0123456789", WithChunkTargetSize(4))

	chunks := b.Chunks()
	var rebuilt []uint16
	for _, c := range chunks {
		if c.Size() > 4 {
			t.Fatalf("chunk size %d exceeds target size 4", c.Size())
		}
		rebuilt = append(rebuilt, c.Units()...)
	}
	if got := unicode16.NewTextFromUTF16(rebuilt).String(); got != "0123456789" {
		t.Fatalf("reassembled chunks = %q, want %q", got, "0123456789")
	}
}

func TestSplitChunksWithZeroTargetSizeIsANoop(t *testing.T) {
	chunks := []unicode16.TextSlice{unicode16.NewTextFromString("0123456789").Slice(0, 10)}
	got := splitChunks(chunks, 0)
	if len(got) != 1 || got[0].Size() != 10 {
		t.Fatalf("splitChunks(_, 0) = %+v, want input unchanged", got)
	}
}

func TestSearchTimeoutIsAppliedToCompiledRegexp(t *testing.T) {
	b := NewFromString("abc", WithSearchTimeout(50*time.Millisecond))
	if b.searchTimeout != 50*time.Millisecond {
		t.Fatalf("searchTimeout = %v, want 50ms", b.searchTimeout)
	}
	if got := b.Search("b"); got != 1 {
		t.Fatalf("Search(\"b\") = %d, want 1", got)
	}
}
