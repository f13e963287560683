// Package links finds URLs in post text and classifies the ones that point
// at known video and social platforms.
package links

import (
	"net/url"
	"slices"
	"strings"

	"github.com/charmbracelet/postfmt/segment"
	"github.com/charmbracelet/postfmt/utils"
	"github.com/dlclark/regexp2"
)

// Link is a URL found in text. Range is a byte range over the text passed to
// Extract.
type Link struct {
	URL         string           `json:"url"`
	Kind        segment.LinkKind `json:"kind"`
	VideoID     string           `json:"video_id,omitempty"`
	PostID      string           `json:"post_id,omitempty"`
	Author      string           `json:"author,omitempty"`
	Host        string           `json:"host,omitempty"`
	DisplayText string           `json:"display_text"`
	Range       segment.Range    `json:"range"`
}

// Image host used by the thread viewer itself. Links to it are never
// previewed.
const mediaHost = "4cdn.org"

// notInHost keeps a platform domain from matching as the tail of a longer
// host name, as in netflix.com.
const notInHost = `(?<![a-zA-Z0-9.-])`

func compile(expr string) *regexp2.Regexp {
	return regexp2.MustCompile(notInHost+expr, regexp2.IgnoreCase)
}

var videoPatterns = []*regexp2.Regexp{
	compile(`(?:https?://)?(?:www\.|m\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	compile(`(?:https?://)?youtu\.be/([a-zA-Z0-9_-]{11})`),
	compile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	compile(`(?:https?://)?(?:www\.)?youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
}

var socialPatterns = []*regexp2.Regexp{
	compile(`(?:https?://)?(?:www\.|mobile\.)?twitter\.com/([a-zA-Z0-9_]+)/status/([0-9]+)`),
	compile(`(?:https?://)?(?:www\.)?x\.com/([a-zA-Z0-9_]+)/status/([0-9]+)`),
}

var genericPattern = regexp2.MustCompile(`https?://[a-zA-Z0-9\-._~:/?#\[\]@!$&'()*+,;=%]+`, regexp2.IgnoreCase)

// Extract returns the links of text sorted by position. Video and social
// links are found first; a generic URL overlapping one of them is dropped.
func Extract(text string) []Link {
	offsets := utils.ByteOffsets(text)

	var found []Link
	add := func(l Link) bool {
		if slices.ContainsFunc(found, func(o Link) bool { return o.Range.Overlaps(l.Range) }) {
			return false
		}
		found = append(found, l)
		return true
	}

	for _, re := range videoPatterns {
		for _, m := range utils.FindAll(re, text) {
			id := utils.Group(m, 1)
			add(Link{
				URL:         withScheme(m.String()),
				Kind:        segment.VideoLink,
				VideoID:     id,
				DisplayText: "YouTube: " + id,
				Range:       span(m, offsets),
			})
		}
	}

	for _, re := range socialPatterns {
		for _, m := range utils.FindAll(re, text) {
			author, id := utils.Group(m, 1), utils.Group(m, 2)
			add(Link{
				URL:         withScheme(m.String()),
				Kind:        segment.SocialLink,
				PostID:      id,
				Author:      author,
				DisplayText: "@" + author + "'s post",
				Range:       span(m, offsets),
			})
		}
	}

	for _, m := range utils.FindAll(genericPattern, text) {
		r := span(m, offsets)
		raw := trimTrailing(text[r.Start:r.End])
		r.End = r.Start + len(raw)

		u, err := url.Parse(raw)
		if err != nil || u.Hostname() == "" {
			continue
		}
		host := strings.ToLower(u.Hostname())
		if strings.Contains(host, mediaHost) {
			continue
		}
		add(Link{
			URL:         raw,
			Kind:        segment.GenericLink,
			Host:        host,
			DisplayText: host,
			Range:       r,
		})
	}

	slices.SortFunc(found, func(a, b Link) int { return a.Range.Start - b.Range.Start })
	return found
}

func withScheme(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "http") {
		return s
	}
	return "https://" + s
}

// trimTrailing drops sentence punctuation that the URL pattern swallows, and
// a closing parenthesis with no opening partner.
func trimTrailing(s string) string {
	for len(s) > 0 {
		last := s[len(s)-1]
		switch {
		case strings.IndexByte(".,;:!?'\"", last) >= 0:
			s = s[:len(s)-1]
		case last == ')' && strings.Count(s, "(") < strings.Count(s, ")"):
			s = s[:len(s)-1]
		default:
			return s
		}
	}
	return s
}

// Apply splits text into segments, giving every link range a link style
// derived from base. Links are spliced from last to first so earlier offsets
// stay valid; text outside links keeps base unchanged.
func Apply(text string, links []Link, base segment.Style) []segment.Segment {
	var rev []segment.Segment
	end := len(text)
	for i := len(links) - 1; i >= 0; i-- {
		r := links[i].Range
		if r.Start < 0 || r.End > end || r.Start >= r.End {
			continue
		}
		rev = append(rev,
			segment.Segment{Text: text[r.End:end], Style: base},
			segment.Segment{Text: text[r.Start:r.End], Style: linkStyle(base, links[i])},
		)
		end = r.Start
	}
	rev = append(rev, segment.Segment{Text: text[:end], Style: base})

	slices.Reverse(rev)
	return segment.Coalesce(rev)
}

func linkStyle(base segment.Style, l Link) segment.Style {
	s := base
	s.Role = segment.Link
	s.Link = l.Kind
	s.Underline = true
	s.Target = l.URL
	return s
}

func span(m *regexp2.Match, offsets []int) segment.Range {
	start, end := utils.Span(m, offsets)
	return segment.Range{Start: start, End: end}
}
