package format

import "github.com/charmbracelet/postfmt/segment"

// Document is a formatted post together with what a client needs to draw
// it and to address its spoilers.
type Document struct {
	Segments     []segment.Segment `json:"segments"`
	Spoilers     []SpoilerRange    `json:"spoilers"`
	SpoilerCount int               `json:"spoiler_count"`
	Plain        string            `json:"plain"`
}

// NewDocument wraps segs, the formatted form of raw. Slices are never nil
// so they encode as empty JSON arrays.
func NewDocument(raw string, segs []segment.Segment) Document {
	spoilers := FindSpoilerRanges(segs)
	if spoilers == nil {
		spoilers = []SpoilerRange{}
	}
	if segs == nil {
		segs = []segment.Segment{}
	}
	return Document{
		Segments:     segs,
		Spoilers:     spoilers,
		SpoilerCount: CountSpoilers(raw),
		Plain:        segment.Text(segs),
	}
}
