package unicode16

import "testing"

func TestCodepointIteratorForwardSurrogatePair(t *testing.T) {
	txt := NewTextFromUTF16([]uint16{'a', 'b', 0xD83D, 0xDE01, 'c', 'd'})
	it := NewCodepointIterator([]TextSlice{txt.Slice(0, txt.Size())})

	var got []rune
	for it.Next() {
		got = append(got, it.Codepoint())
	}

	want := []rune{'a', 'b', 0x1F601, 'c', 'd'}
	if len(got) != len(want) {
		t.Fatalf("got %d codepoints, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("codepoint[%d] = %U, want %U", i, got[i], want[i])
		}
	}
}

func TestCodepointIteratorBackward(t *testing.T) {
	txt := NewTextFromUTF16([]uint16{'a', 'b', 0xD83D, 0xDE01, 'c', 'd'})
	it := NewCodepointIteratorAtEnd([]TextSlice{txt.Slice(0, txt.Size())})

	var got []rune
	for it.Prev() {
		got = append(got, it.Codepoint())
	}

	want := []rune{'d', 'c', 0x1F601, 'b', 'a'}
	if len(got) != len(want) {
		t.Fatalf("got %d codepoints, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("codepoint[%d] = %U, want %U", i, got[i], want[i])
		}
	}
}

func TestCodepointIteratorAcrossChunkBoundary(t *testing.T) {
	a := NewTextFromUTF16([]uint16{'a', 0xD83D})
	b := NewTextFromUTF16([]uint16{0xDE01, 'c'})
	it := NewCodepointIterator([]TextSlice{a.Slice(0, a.Size()), b.Slice(0, b.Size())})

	var got []rune
	for it.Next() {
		got = append(got, it.Codepoint())
	}
	want := []rune{'a', 0x1F601, 'c'}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
