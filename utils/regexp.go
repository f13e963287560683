package utils

import "github.com/dlclark/regexp2"

// FindAll returns every match of re in s, left to right. A matcher error ends
// the scan early with whatever was found so far.
func FindAll(re *regexp2.Regexp, s string) []*regexp2.Match {
	var out []*regexp2.Match
	m, err := re.FindStringMatch(s)
	for err == nil && m != nil {
		out = append(out, m)
		m, err = re.FindNextMatch(m)
	}
	return out
}

// Group returns capture group n of m, or "" if the group did not take part
// in the match.
func Group(m *regexp2.Match, n int) string {
	if g := m.GroupByNumber(n); g != nil && len(g.Captures) > 0 {
		return g.String()
	}
	return ""
}

// ByteOffsets maps rune indices, as reported by regexp2, to byte offsets in
// s. The final entry maps the rune count to len(s).
func ByteOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

// Span converts the rune span of m to a byte span using offsets from
// ByteOffsets.
func Span(m *regexp2.Match, offsets []int) (start, end int) {
	return offsets[m.Index], offsets[m.Index+m.Length]
}
