package links

import (
	"testing"

	"github.com/charmbracelet/postfmt/segment"
	"github.com/google/go-cmp/cmp"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Link
	}{
		{
			name:  "short video link",
			input: "see https://youtu.be/dQw4w9WgXcQ now",
			expected: []Link{{
				URL:         "https://youtu.be/dQw4w9WgXcQ",
				Kind:        segment.VideoLink,
				VideoID:     "dQw4w9WgXcQ",
				DisplayText: "YouTube: dQw4w9WgXcQ",
				Range:       segment.Range{Start: 4, End: 32},
			}},
		},
		{
			name:  "video link without scheme",
			input: "www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: []Link{{
				URL:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
				Kind:        segment.VideoLink,
				VideoID:     "dQw4w9WgXcQ",
				DisplayText: "YouTube: dQw4w9WgXcQ",
				Range:       segment.Range{Start: 0, End: 35},
			}},
		},
		{
			name:  "social post",
			input: "https://x.com/someone/status/12345 lol",
			expected: []Link{{
				URL:         "https://x.com/someone/status/12345",
				Kind:        segment.SocialLink,
				PostID:      "12345",
				Author:      "someone",
				DisplayText: "@someone's post",
				Range:       segment.Range{Start: 0, End: 34},
			}},
		},
		{
			name:  "generic with trailing period",
			input: "read https://Example.com/a?b=1.",
			expected: []Link{{
				URL:         "https://Example.com/a?b=1",
				Kind:        segment.GenericLink,
				Host:        "example.com",
				DisplayText: "example.com",
				Range:       segment.Range{Start: 5, End: 30},
			}},
		},
		{
			name:     "media host excluded",
			input:    "https://i.4cdn.org/g/123.png",
			expected: nil,
		},
		{
			name:     "platform name inside another host",
			input:    "netflix.com/user/status/1",
			expected: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.input)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Extract(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestExtractSortedNonOverlapping(t *testing.T) {
	in := "https://example.org/x then https://youtu.be/dQw4w9WgXcQ and " +
		"https://twitter.com/a_b/status/9 (https://example.net/y)"
	got := Extract(in)
	if len(got) != 4 {
		t.Fatalf("Expected 4 links, Actual %d: %+v", len(got), got)
	}
	kinds := []segment.LinkKind{segment.GenericLink, segment.VideoLink, segment.SocialLink, segment.GenericLink}
	for i, l := range got {
		if l.Kind != kinds[i] {
			t.Errorf("link %d: Expected: %s Actual %s", i, kinds[i], l.Kind)
		}
		if i > 0 {
			if got[i-1].Range.Start > l.Range.Start || got[i-1].Range.Overlaps(l.Range) {
				t.Errorf("links %d and %d out of order or overlapping", i-1, i)
			}
		}
		if in[l.Range.Start:l.Range.End] != l.URL {
			t.Errorf("range of %q covers %q", l.URL, in[l.Range.Start:l.Range.End])
		}
	}
}

func TestApply(t *testing.T) {
	text := "see https://youtu.be/dQw4w9WgXcQ now"
	base := segment.Style{}
	got := Apply(text, Extract(text), base)

	expected := []segment.Segment{
		{Text: "see "},
		{
			Text: "https://youtu.be/dQw4w9WgXcQ",
			Style: segment.Style{
				Role:      segment.Link,
				Link:      segment.VideoLink,
				Underline: true,
				Target:    "https://youtu.be/dQw4w9WgXcQ",
			},
		},
		{Text: " now"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
	if segment.Text(got) != text {
		t.Errorf("Expected: %s Actual %s", text, segment.Text(got))
	}
}

func TestApplyNoLinks(t *testing.T) {
	base := segment.Style{Greentext: true}
	got := Apply("nothing here", nil, base)
	expected := []segment.Segment{{Text: "nothing here", Style: base}}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
}
