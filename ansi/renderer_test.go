package ansi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/postfmt/segment"
	"github.com/charmbracelet/postfmt/syntax"
	"github.com/google/go-cmp/cmp"
	"github.com/muesli/termenv"
)

func newTestRenderer(t *testing.T, styles StyleConfig, width int, profile termenv.Profile) *Renderer {
	t.Helper()
	r, err := NewRenderer(Options{WordWrap: width, Styles: styles, ColorProfile: profile})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRender(t *testing.T) {
	hidden := segment.Style{Role: segment.SpoilerHidden, SpoilerIndex: 1, Background: segment.SpoilerBackground}
	revealed := hidden
	revealed.Role = segment.SpoilerRevealed

	tests := []struct {
		name     string
		width    int
		segs     []segment.Segment
		expected string
	}{
		{
			name:     "plain",
			segs:     []segment.Segment{{Text: "hello"}},
			expected: "\n  hello\n",
		},
		{
			name:     "line breaks keep the margin",
			segs:     []segment.Segment{{Text: "a\n"}, {Text: "b"}},
			expected: "\n  a\n  b\n",
		},
		{
			name:     "word wrap",
			width:    12,
			segs:     []segment.Segment{{Text: "the quick brown fox"}},
			expected: "\n  the quick\n  brown fox\n",
		},
		{
			name: "hidden spoiler is masked",
			segs: []segment.Segment{
				{Text: "a "},
				{Text: "秘密 x", Style: hidden},
				{Text: " b"},
			},
			expected: "\n  a ██████ b\n",
		},
		{
			name: "revealed spoiler",
			segs: []segment.Segment{
				{Text: "a "},
				{Text: "secret", Style: revealed},
			},
			expected: "\n  a secret\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRenderer(t, DarkStyleConfig, tc.width, termenv.Ascii)
			if diff := cmp.Diff(tc.expected, r.Render(tc.segs)); diff != "" {
				t.Errorf("Render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderColors(t *testing.T) {
	r := newTestRenderer(t, DarkStyleConfig, 80, termenv.TrueColor)
	out := r.Render([]segment.Segment{{Text: "int", Style: segment.Style{Role: segment.Code, Code: syntax.Keyword, Bold: true}}})
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected escape sequences in %q", out)
	}
}

func TestPrimitive(t *testing.T) {
	r := newTestRenderer(t, DarkStyleConfig, 0, termenv.TrueColor)

	hidden := r.primitive(segment.Style{Role: segment.SpoilerHidden, Background: segment.SpoilerBackground})
	if hidden.Color == nil || hidden.BackgroundColor == nil || *hidden.Color != *hidden.BackgroundColor {
		t.Errorf("hidden spoiler foreground should match its background: %v %v", hidden.Color, hidden.BackgroundColor)
	}

	arrow := r.primitive(segment.Style{Role: segment.GreentextArrow, Greentext: true, Bold: true})
	if arrow.Bold == nil || !*arrow.Bold {
		t.Error("greentext arrow should be bold")
	}
	if arrow.Color == nil || *arrow.Color != *DarkStyleConfig.Greentext.Color {
		t.Errorf("Expected: %s Actual %v", *DarkStyleConfig.Greentext.Color, arrow.Color)
	}

	kw := r.primitive(segment.Style{Role: segment.Code, Code: syntax.Keyword, Bold: true})
	if kw.Color == nil || !strings.EqualFold(*kw.Color, "#00AAFF") {
		t.Errorf("Expected: #00AAFF Actual %v", kw.Color)
	}
	if kw.BackgroundColor == nil || *kw.BackgroundColor != "#303030" {
		t.Errorf("Expected: #303030 Actual %v", kw.BackgroundColor)
	}

	filtered := r.primitive(segment.Style{Filtered: true})
	if filtered.CrossedOut == nil || !*filtered.CrossedOut {
		t.Error("filtered text should be crossed out")
	}
}

func TestCodeTheme(t *testing.T) {
	r := newTestRenderer(t, LightStyleConfig, 0, termenv.TrueColor)
	kw := r.primitive(segment.Style{Role: segment.Code, Code: syntax.Keyword})
	if kw.Color == nil {
		t.Error("expected the theme to colour keywords")
	}
	if kw.BackgroundColor == nil || *kw.BackgroundColor != "#EEEEEE" {
		t.Errorf("Expected: #EEEEEE Actual %v", kw.BackgroundColor)
	}

	s := LightStyleConfig
	s.Code.Theme = "no-such-theme"
	if _, err := NewRenderer(Options{Styles: s}); err == nil {
		t.Error("expected an error for an unknown theme")
	}
}

func TestChromaColor(t *testing.T) {
	p := StylePrimitive{
		Color:           stringPtr("#ffffff"),
		BackgroundColor: stringPtr("#000000"),
		Bold:            boolPtr(false),
		Italic:          boolPtr(true),
	}
	expected := "#ffffff bg:#000000 nobold italic"
	if got := chromaColor(p); got != expected {
		t.Errorf("Expected: %s Actual %s", expected, got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		color string
		ok    bool
	}{
		{"#ff00ff", true},
		{"42", true},
		{"300", false},
		{"#zz", false},
		{"red", false},
	}
	for _, tc := range tests {
		t.Run(tc.color, func(t *testing.T) {
			s := NoTTYStyleConfig
			s.Text.Color = stringPtr(tc.color)
			if err := s.Validate(); (err == nil) != tc.ok {
				t.Errorf("Validate(%q): Expected ok %v Actual error %v", tc.color, tc.ok, err)
			}
		})
	}
}

func TestStyleFor(t *testing.T) {
	for name := range DefaultStyles {
		if _, err := StyleFor(name); err != nil {
			t.Errorf("StyleFor(%q): %v", name, err)
		}
	}

	path := filepath.Join(t.TempDir(), "custom.json")
	data := `{"greentext":{"color":"#00ff00"},"spoiler":{"mask":"#"}}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := StyleFor(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Greentext.Color == nil || *s.Greentext.Color != "#00ff00" || s.Spoiler.Mask != "#" {
		t.Errorf("unexpected style: %+v", s)
	}

	if _, err := StyleFor(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing style")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"text":{"color":"nope"}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStyle(bad); err == nil {
		t.Error("expected an error for an invalid colour")
	}
}
