// Package latex finds LaTeX-style math in post text and renders it as a
// readable Unicode approximation. It is not a typesetter: nested or malformed
// input degrades to plain text instead of failing.
package latex

import (
	"slices"
	"strings"

	"github.com/charmbracelet/postfmt/segment"
	"github.com/charmbracelet/postfmt/utils"
	"github.com/dlclark/regexp2"
)

// Kind tells inline math from display math.
type Kind int

// Math kinds.
const (
	Inline Kind = iota
	Display
)

func (k Kind) String() string {
	if k == Display {
		return "display"
	}
	return "inline"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Token is a math expression found in text. Range covers the delimiters and
// is a byte range over the text passed to Extract.
type Token struct {
	Content string        `json:"content"`
	Kind    Kind          `json:"kind"`
	Range   segment.Range `json:"range"`
}

var (
	displayPattern = regexp2.MustCompile(`\$\$([^$]+)\$\$|\\\[(.+?)\\\]`, regexp2.Singleline)
	inlinePattern  = regexp2.MustCompile(`(?<!\$)\$(?!\$)([^$]+)\$(?!\$)|\\\((.+?)\\\)`, regexp2.None)
)

// Contains reports whether text has at least one math delimiter pair.
func Contains(text string) bool {
	for _, re := range []*regexp2.Regexp{displayPattern, inlinePattern} {
		if ok, err := re.MatchString(text); err == nil && ok {
			return true
		}
	}
	return false
}

// Extract returns the math expressions of text sorted by position. Display
// math is found first; inline matches that overlap it are dropped.
func Extract(text string) []Token {
	offsets := utils.ByteOffsets(text)

	var toks []Token
	for _, m := range utils.FindAll(displayPattern, text) {
		if tok, ok := newToken(m, Display, offsets); ok {
			toks = append(toks, tok)
		}
	}
	display := len(toks)

	for _, m := range utils.FindAll(inlinePattern, text) {
		tok, ok := newToken(m, Inline, offsets)
		if !ok {
			continue
		}
		if slices.ContainsFunc(toks[:display], func(d Token) bool { return d.Range.Overlaps(tok.Range) }) {
			continue
		}
		toks = append(toks, tok)
	}

	slices.SortStableFunc(toks, func(a, b Token) int { return a.Range.Start - b.Range.Start })
	return toks
}

func newToken(m *regexp2.Match, kind Kind, offsets []int) (Token, bool) {
	content := utils.Group(m, 1)
	if content == "" {
		content = utils.Group(m, 2)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return Token{}, false
	}
	start, end := utils.Span(m, offsets)
	return Token{
		Content: content,
		Kind:    kind,
		Range:   segment.Range{Start: start, End: end},
	}, true
}
