package patch

import (
	"bytes"
	"testing"

	"github.com/wan-qy/superstring/internal/unicode16"
)

func text(s string) *unicode16.Text { return unicode16.NewTextFromString(s) }

func TestPatchSpliceSingleChange(t *testing.T) {
	p := New()
	p.Splice(Point{Row: 0, Column: 1}, Point{Row: 0, Column: 1}, Point{Row: 0, Column: 2}, text("BB"), 1)

	if got := p.ChangeCount(); got != 1 {
		t.Fatalf("ChangeCount() = %d, want 1", got)
	}
	c := p.Changes()[0]
	if c.OldStart != (Point{Row: 0, Column: 1}) || c.OldEnd != (Point{Row: 0, Column: 2}) {
		t.Fatalf("unexpected old span: %v..%v", c.OldStart, c.OldEnd)
	}
	if c.NewStart != (Point{Row: 0, Column: 1}) || c.NewEnd != (Point{Row: 0, Column: 3}) {
		t.Fatalf("unexpected new span: %v..%v", c.NewStart, c.NewEnd)
	}
}

func TestPatchSpliceRecordsLaterChangeAfterEarlierOne(t *testing.T) {
	p := New()
	p.Splice(Point{Row: 0, Column: 1}, Point{Row: 0, Column: 0}, Point{Row: 0, Column: 1}, text("X"), 0)
	p.Splice(Point{Row: 0, Column: 5}, Point{Row: 0, Column: 0}, Point{Row: 0, Column: 1}, text("Y"), 0)

	changes := p.Changes()
	if len(changes) != 2 {
		t.Fatalf("ChangeCount() = %d, want 2", len(changes))
	}
	if changes[0].NewStart != (Point{Row: 0, Column: 1}) {
		t.Fatalf("first change unshifted: %v", changes[0].NewStart)
	}
	if changes[1].NewStart != (Point{Row: 0, Column: 5}) {
		t.Fatalf("second change NewStart = %v, want (0,5)", changes[1].NewStart)
	}
}

func TestPatchFindChangeForNewPosition(t *testing.T) {
	p := New()
	p.Splice(Point{Row: 0, Column: 2}, Point{Row: 0, Column: 0}, Point{Row: 0, Column: 3}, text("abc"), 0)

	if c := p.FindChangeForNewPosition(Point{Row: 0, Column: 3}); c == nil {
		t.Fatal("expected a change covering (0,3)")
	}
	if c := p.FindChangeForNewPosition(Point{Row: 0, Column: 5}); c != nil {
		t.Fatalf("expected no change at (0,5) exactly at NewEnd, got %v", c)
	}
	if c := p.ChangeForNewPosition(Point{Row: 0, Column: 5}); c == nil {
		t.Fatal("ChangeForNewPosition should treat NewEnd as inside the change")
	}
}

func TestPatchCombineKeepsChanges(t *testing.T) {
	a := New()
	a.Splice(Point{Row: 0, Column: 1}, Point{Row: 0, Column: 1}, Point{Row: 0, Column: 2}, text("BB"), 1)

	b := New()
	// Edit expressed against a's new coordinates (B-space).
	b.Splice(Point{Row: 0, Column: 0}, Point{Row: 0, Column: 0}, Point{Row: 0, Column: 1}, text("!"), 0)

	a.Combine(b, true)
	if a.ChangeCount() == 0 {
		t.Fatal("expected combined patch to have changes")
	}
}

func TestPatchSerializeRoundTrip(t *testing.T) {
	p := New()
	p.Splice(Point{Row: 0, Column: 1}, Point{Row: 0, Column: 1}, Point{Row: 0, Column: 2}, text("BB"), 1)

	var buf bytes.Buffer
	if err := p.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := Deserialize(&buf)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got.ChangeCount() != p.ChangeCount() {
		t.Fatalf("ChangeCount() = %d, want %d", got.ChangeCount(), p.ChangeCount())
	}
	if got.Changes()[0].NewText.String() != "BB" {
		t.Fatalf("NewText = %q, want BB", got.Changes()[0].NewText.String())
	}
}
