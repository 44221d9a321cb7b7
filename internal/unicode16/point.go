package unicode16

import "fmt"

// MaxColumn is the sentinel column value meaning "end of row", mirroring
// UINT32_MAX in the original design.
const MaxColumn uint32 = ^uint32(0)

// Point is a (row, column) position measured in UTF-16 code units. Row
// counts LF and CRLF line terminators seen so far; column counts code
// units since the start of the row.
type Point struct {
	Row    uint32
	Column uint32
}

// Zero is the Point at the start of the buffer.
var Zero = Point{}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	switch {
	case p.Row < other.Row:
		return -1
	case p.Row > other.Row:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	default:
		return 0
	}
}

// Before reports whether p comes strictly before other.
func (p Point) Before(other Point) bool { return p.Compare(other) < 0 }

// After reports whether p comes strictly after other.
func (p Point) After(other Point) bool { return p.Compare(other) > 0 }

// IsZero reports whether p is the zero point.
func (p Point) IsZero() bool { return p.Row == 0 && p.Column == 0 }

// Min returns the lesser of two points.
func Min(a, b Point) Point {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}

// Max returns the greater of two points.
func Max(a, b Point) Point {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

// Traverse composes a point a with a delta b: the result of moving b rows
// and columns from a, where a delta with a nonzero row resets the column
// rather than adding to it (mirroring how row/column composition works
// for code-unit offsets split across line boundaries).
func Traverse(a, b Point) Point {
	if b.Row == 0 {
		return Point{Row: a.Row, Column: a.Column + b.Column}
	}
	return Point{Row: a.Row + b.Row, Column: b.Column}
}

// Traversal returns the delta point d such that Traverse(b, d) == a. It is
// the inverse of Traverse.
func Traversal(a, b Point) Point {
	if a.Row == b.Row {
		return Point{Row: 0, Column: a.Column - b.Column}
	}
	return Point{Row: a.Row - b.Row, Column: a.Column}
}

// Range is a half-open span [Start, End) of Points.
type Range struct {
	Start Point
	End   Point
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start, r.End)
}

// Extent returns the span of the range expressed as a delta point.
func (r Range) Extent() Point {
	return Traversal(r.End, r.Start)
}

// IsEmpty reports whether the range spans no code units.
func (r Range) IsEmpty() bool { return r.Start.Compare(r.End) == 0 }

// ClipResult is the snapped (Point, offset) pair returned by clipping.
type ClipResult struct {
	Position Point
	Offset   uint32
}

// previousColumn returns p with its column decremented by one, used when a
// CRLF stitch needs to step back onto the preceding code unit in the same
// row.
func previousColumn(p Point) Point {
	return Point{Row: p.Row, Column: p.Column - 1}
}
