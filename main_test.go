package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/postfmt/ansi"
	"github.com/charmbracelet/postfmt/segment"
	"github.com/charmbracelet/postfmt/server"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

type options struct {
	board, post, style  string
	width               uint
	json, links, reveal bool
}

// withOptions sets the command globals for one test.
func withOptions(t *testing.T, b, s string, w uint, json, lnk bool) {
	t.Helper()
	saved := options{board, post, style, width, asJSON, showLinks, reveal}
	board, post, style, width, asJSON, showLinks, reveal = b, "", s, w, json, lnk, false
	t.Cleanup(func() {
		board, post, style, width = saved.board, saved.post, saved.style, saved.width
		asJSON, showLinks, reveal = saved.json, saved.links, saved.reveal
	})
}

func stringSource(s, path string) *source {
	return &source{reader: io.NopCloser(strings.NewReader(s)), path: path}
}

func TestExecuteCLI(t *testing.T) {
	tt := []struct {
		name     string
		input    string
		board    string
		width    uint
		expected string
	}{
		{
			name:     "hidden spoiler",
			input:    "a <s>b</s>",
			board:    "a",
			width:    80,
			expected: "\n  a █\n",
		},
		{
			name:     "line breaks",
			input:    "one<br>two",
			board:    "a",
			width:    80,
			expected: "\n  one\n  two\n",
		},
		{
			name:     "wrapped",
			input:    "the quick brown fox",
			board:    "a",
			width:    12,
			expected: "\n  the quick\n  brown fox\n",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			withOptions(t, tc.board, ansi.NoTTYStyle, tc.width, false, false)

			buf := &bytes.Buffer{}
			if err := executeCLI(rootCmd, stringSource(tc.input, ""), buf); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tc.expected {
				t.Errorf("Expected: %q Actual %q", tc.expected, buf.String())
			}
		})
	}
}

func TestExecuteCLIReveal(t *testing.T) {
	withOptions(t, "a", ansi.NoTTYStyle, 80, false, false)
	reveal = true

	buf := &bytes.Buffer{}
	if err := executeCLI(rootCmd, stringSource("a <s>b</s>", ""), buf); err != nil {
		t.Fatal(err)
	}
	if expected := "\n  a b\n"; buf.String() != expected {
		t.Errorf("Expected: %q Actual %q", expected, buf.String())
	}
}

func TestExecuteCLIJSON(t *testing.T) {
	withOptions(t, "g", ansi.NoTTYStyle, 80, true, false)

	buf := &bytes.Buffer{}
	if err := executeCLI(rootCmd, stringSource("x <s>y</s>", "/tmp/77.txt"), buf); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Segments []struct {
			Text  string `json:"text"`
			Style struct {
				Role string `json:"role"`
			} `json:"style"`
		} `json:"segments"`
		SpoilerCount int    `json:"spoiler_count"`
		Plain        string `json:"plain"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if doc.Plain != "x y" || doc.SpoilerCount != 1 {
		t.Errorf("unexpected document: %+v", doc)
	}
	if len(doc.Segments) != 2 || doc.Segments[1].Style.Role != segment.SpoilerHidden.String() {
		t.Errorf("unexpected segments: %+v", doc.Segments)
	}
}

func TestExecuteCLILinks(t *testing.T) {
	withOptions(t, "", ansi.NoTTYStyle, 80, false, true)

	buf := &bytes.Buffer{}
	in := "watch https://youtu.be/dQw4w9WgXcQ<br>and https://example.com/a"
	if err := executeCLI(rootCmd, stringSource(in, ""), buf); err != nil {
		t.Fatal(err)
	}
	expected := "video\tYouTube: dQw4w9WgXcQ\thttps://youtu.be/dQw4w9WgXcQ\n" +
		"generic\texample.com\thttps://example.com/a\n"
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}

	asJSON = true
	buf.Reset()
	if err := executeCLI(rootCmd, stringSource("no links", ""), buf); err != nil {
		t.Fatal(err)
	}
	var found []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &found); err != nil {
		t.Fatal(err)
	}
	if found == nil || len(found) != 0 {
		t.Errorf("expected an empty JSON array, got %q", buf.String())
	}
}

func TestExecuteArg(t *testing.T) {
	withOptions(t, "a", ansi.NoTTYStyle, 80, false, false)

	dir := t.TempDir()
	path := filepath.Join(dir, "123.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	if err := executeArg(rootCmd, path, buf); err != nil {
		t.Fatal(err)
	}
	if expected := "\n  hello\n"; buf.String() != expected {
		t.Errorf("Expected: %q Actual %q", expected, buf.String())
	}

	if err := executeArg(rootCmd, dir, buf); err == nil {
		t.Error("expected an error for a directory")
	}
	if err := executeArg(rootCmd, filepath.Join(dir, "missing"), buf); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestFlags(t *testing.T) {
	tt := []struct {
		args  []string
		check func() bool
	}{
		{
			args: []string{"-s", "light"},
			check: func() bool {
				return style == "light"
			},
		},
		{
			args: []string{"-w", "40"},
			check: func() bool {
				return width == 40
			},
		},
		{
			args: []string{"-b", "sci"},
			check: func() bool {
				return board == "sci"
			},
		},
		{
			args: []string{"-r"},
			check: func() bool {
				return reveal
			},
		},
		{
			args: []string{"--json"},
			check: func() bool {
				return asJSON
			},
		},
	}

	for _, v := range tt {
		withOptions(t, "", ansi.AutoStyle, 0, false, false)
		err := rootCmd.ParseFlags(v.args)
		if err != nil {
			t.Fatal(err)
		}
		if !v.check() {
			t.Errorf("Parsing flag failed: %s", v.args)
		}
	}
}

func TestSuggestStyle(t *testing.T) {
	tt := map[string]string{
		"drk":        ansi.DarkStyle,
		"lght":       ansi.LightStyle,
		"/x/ntty":    ansi.NoTTYStyle,
		"zzzzzzzzzz": "",
	}
	for in, expected := range tt {
		if got := suggestStyle(in); got != expected {
			t.Errorf("suggestStyle(%q): Expected: %q Actual %q", in, expected, got)
		}
	}
}

func TestServerConfig(t *testing.T) {
	t.Cleanup(func() {
		for _, k := range []string{"server.addr", "server.read_timeout", "server.max_body_bytes", "server.style"} {
			viper.Set(k, nil)
		}
	})

	cfg, err := serverConfig()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(server.DefaultConfig(), cfg); diff != "" {
		t.Errorf("default config mismatch (-want +got):\n%s", diff)
	}

	viper.Set("server.addr", "127.0.0.1:9000")
	viper.Set("server.read_timeout", "2s")
	viper.Set("server.max_body_bytes", 512)
	cfg, err = serverConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.ReadTimeout != 2*time.Second || cfg.MaxBodyBytes != 512 {
		t.Errorf("unexpected config: %+v", cfg)
	}

	viper.Set("server.style", "/does/not/exist.json")
	if _, err := serverConfig(); err == nil {
		t.Error("expected an error for a missing style")
	}
}

func TestCheckConfigFile(t *testing.T) {
	tt := []struct {
		name    string
		config  string
		wantErr bool
	}{
		{"default", defaultConfig, false},
		{"bad filter", "filter:\n  - \"/(unclosed/\"\n", true},
		{"bad style", "style: \"/does/not/exist.json\"\n", true},
		{"bad server style", "server:\n  style: nope\n", true},
		{"not yaml", "style: [\n", true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "postfmt.yml")
			if err := os.WriteFile(path, []byte(tc.config), 0o600); err != nil {
				t.Fatal(err)
			}
			err := checkConfigFile(path)
			if (err != nil) != tc.wantErr {
				t.Errorf("checkConfigFile() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
