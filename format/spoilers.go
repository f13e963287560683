package format

import (
	"strings"

	"github.com/charmbracelet/postfmt/segment"
)

// CountSpoilers returns the number of spoiler spans opened in raw.
func CountSpoilers(raw string) int {
	return strings.Count(raw, "<s>")
}

// SpoilerRange locates one spoiler in formatted output. Range is a byte range
// over the concatenated segment text.
type SpoilerRange struct {
	Range segment.Range `json:"range"`
	Index int           `json:"index"`
}

// FindSpoilerRanges returns the ranges covered by each spoiler in segs, in
// order. Neighbouring segments of the same spoiler are reported once.
func FindSpoilerRanges(segs []segment.Segment) []SpoilerRange {
	var (
		out    []SpoilerRange
		offset int
	)
	for _, s := range segs {
		start := offset
		offset += len(s.Text)
		if !s.Style.Role.IsSpoiler() {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Index == s.Style.SpoilerIndex && out[n-1].Range.End == start {
			out[n-1].Range.End = offset
			continue
		}
		out = append(out, SpoilerRange{
			Range: segment.Range{Start: start, End: offset},
			Index: s.Style.SpoilerIndex,
		})
	}
	return out
}
