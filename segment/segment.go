// Package segment defines the styled text runs produced by the formatter and
// consumed by the terminal renderer, the viewer and the HTTP service.
package segment

import (
	"strings"

	"github.com/charmbracelet/postfmt/syntax"
)

// Role is the foreground role of a segment.
type Role int

// Roles.
const (
	Normal Role = iota
	Greentext
	GreentextArrow
	SpoilerHidden
	SpoilerRevealed
	QuoteLink
	Code
	Math
	Link
)

var roleNames = [...]string{
	Normal:          "normal",
	Greentext:       "greentext",
	GreentextArrow:  "greentext-arrow",
	SpoilerHidden:   "spoiler-hidden",
	SpoilerRevealed: "spoiler-revealed",
	QuoteLink:       "quotelink",
	Code:            "code",
	Math:            "math",
	Link:            "link",
}

func (r Role) String() string { return name(roleNames[:], int(r)) }

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// IsSpoiler reports whether the role belongs to a spoiler span.
func (r Role) IsSpoiler() bool { return r == SpoilerHidden || r == SpoilerRevealed }

// Background is the block background painted behind a segment.
type Background int

// Backgrounds.
const (
	NoBackground Background = iota
	SpoilerBackground
	CodeBackground
)

var backgroundNames = [...]string{"none", "spoiler", "code"}

func (b Background) String() string { return name(backgroundNames[:], int(b)) }

// MarshalText implements encoding.TextMarshaler.
func (b Background) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// MathKind classifies pieces of rendered math.
type MathKind int

// Math kinds.
const (
	MathText MathKind = iota
	MathNumber
	MathOperator
)

var mathNames = [...]string{"text", "number", "operator"}

func (k MathKind) String() string { return name(mathNames[:], int(k)) }

// MarshalText implements encoding.TextMarshaler.
func (k MathKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// LinkKind classifies external links.
type LinkKind int

// Link kinds.
const (
	NoLink LinkKind = iota
	VideoLink
	SocialLink
	GenericLink
)

var linkNames = [...]string{"none", "video", "social", "generic"}

func (k LinkKind) String() string { return name(linkNames[:], int(k)) }

// MarshalText implements encoding.TextMarshaler.
func (k LinkKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func name(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return names[0]
	}
	return names[i]
}

// Style describes how a segment is drawn. Styles are comparable; two adjacent
// segments with equal styles may be merged.
type Style struct {
	Role       Role        `json:"role"`
	Code       syntax.Kind `json:"code,omitempty"`
	Math       MathKind    `json:"math,omitempty"`
	Link       LinkKind    `json:"link,omitempty"`
	Background Background  `json:"background,omitempty"`

	// Target is "post://<id>" for quotelinks, or the external URL for links.
	Target string `json:"target,omitempty"`

	// SpoilerIndex is the 1-based index of the enclosing spoiler within its
	// post, 0 outside spoilers.
	SpoilerIndex int  `json:"spoiler,omitempty"`
	Greentext    bool `json:"greentext,omitempty"`

	Bold      bool `json:"bold,omitempty"`
	Italic    bool `json:"italic,omitempty"`
	Underline bool `json:"underline,omitempty"`
	Monospace bool `json:"monospace,omitempty"`
	Display   bool `json:"display,omitempty"`

	// Filtered marks every segment of a post matched by a content filter.
	Filtered bool `json:"filtered,omitempty"`
}

// Segment is a run of text drawn in a single style.
type Segment struct {
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

// Text concatenates the text of all segments.
func Text(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Coalesce drops empty segments and merges neighbours that share a style.
func Coalesce(segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style == s.Style {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

// Range is a half-open byte range [Start, End) over some text.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the length of the range.
func (r Range) Len() int { return r.End - r.Start }

// Overlaps reports whether r and o share at least one byte.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}
