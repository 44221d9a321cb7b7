package buffer

import (
	"github.com/dlclark/regexp2"
)

// Search runs an ECMAScript-flavored regular expression over the
// buffer's code-point stream and returns the code-point offset of the
// first match, or one of the sentinel results. regexp2 is used rather
// than the standard library's RE2-based regexp because RE2 cannot
// express ECMAScript constructs such as backreferences or lookaround,
// which the contract requires. regexp2 matches over Go runes, i.e.
// Unicode code points, which is exactly the coordinate space this
// search contract asks for — no surrogate-pair translation is needed on
// the result index.
func (b *TextBuffer) Search(pattern string) int {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return ResultInvalidPattern
	}
	if b.searchTimeout > 0 {
		re.MatchTimeout = b.searchTimeout
	}

	s := b.Text().String()
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return ResultNoResults
	}
	return m.Index
}

// SearchAll returns the code-point offsets of every non-overlapping
// match, or nil if the pattern is invalid or matches nothing.
func (b *TextBuffer) SearchAll(pattern string) []int {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil
	}
	if b.searchTimeout > 0 {
		re.MatchTimeout = b.searchTimeout
	}

	s := b.Text().String()
	var offsets []int
	m, err := re.FindStringMatch(s)
	for err == nil && m != nil {
		offsets = append(offsets, m.Index)
		m, err = re.FindNextMatch(m)
	}
	return offsets
}
