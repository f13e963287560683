// Package format folds a markup token stream into styled segments. It owns
// the per-board feature gating and hands code blocks, math and links to their
// specialist packages.
package format

import (
	"strings"

	"github.com/charmbracelet/postfmt/latex"
	"github.com/charmbracelet/postfmt/links"
	"github.com/charmbracelet/postfmt/markup"
	"github.com/charmbracelet/postfmt/segment"
	"github.com/charmbracelet/postfmt/spoiler"
	"github.com/charmbracelet/postfmt/syntax"
)

// PostScheme prefixes the target of quotelink segments.
const PostScheme = "post://"

// Formatter turns tokens into segments. It is safe for concurrent use; the
// only shared state is the spoiler registry, which synchronises itself.
type Formatter struct {
	registry *spoiler.Registry
	filter   ContentFilter
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithRegistry makes the formatter consult r for revealed spoilers.
func WithRegistry(r *spoiler.Registry) Option {
	return func(f *Formatter) {
		f.registry = r
	}
}

// WithContentFilter installs a content filter. Posts it matches have every
// segment marked as filtered.
func WithContentFilter(cf ContentFilter) Option {
	return func(f *Formatter) {
		f.filter = cf
	}
}

// New returns a Formatter. Without options it uses a private registry and no
// content filter.
func New(opts ...Option) *Formatter {
	f := &Formatter{}
	for _, o := range opts {
		o(f)
	}
	if f.registry == nil {
		f.registry = spoiler.NewRegistry()
	}
	if f.filter == nil {
		f.filter = NoFilter{}
	}
	return f
}

// Registry returns the spoiler registry the formatter reads from.
func (f *Formatter) Registry() *spoiler.Registry {
	return f.registry
}

// FormatText tokenizes raw and formats the result.
func (f *Formatter) FormatText(raw, board, post string, revealAll bool) []segment.Segment {
	return f.Format(markup.Tokenize(raw), board, post, revealAll)
}

// Format folds tokens into segments for a post on board. Spoilers are shown
// when revealAll is set or when the registry has them revealed for post.
// Spans left open at the end of the stream are closed implicitly.
func (f *Formatter) Format(tokens []markup.Token, board, post string, revealAll bool) []segment.Segment {
	st := &state{
		f:         f,
		board:     board,
		post:      post,
		revealAll: revealAll,
		lineStart: true,
	}

	for _, tok := range tokens {
		st.consume(tok)
	}
	if st.inCode {
		st.flushCode()
	}

	segs := segment.Coalesce(st.segs)
	if f.filter.Enabled() && f.filter.Matches(segment.Text(segs)) {
		for i := range segs {
			segs[i].Style.Filtered = true
		}
	}
	return segs
}

type state struct {
	f         *Formatter
	board     string
	post      string
	revealAll bool

	segs []segment.Segment

	inSpoiler    bool
	spoilerIndex int
	inQuote      bool
	quoteLink    string
	inCode       bool
	code         strings.Builder

	// lineStart is set until the first text of a line; lineQuote marks a
	// line that opened with a bare ">" outside any quote span.
	lineStart bool
	lineQuote bool
}

func (st *state) consume(tok markup.Token) {
	switch tok.Kind {
	case markup.SpoilerOpen:
		st.inSpoiler = true
		st.spoilerIndex++
	case markup.SpoilerClose:
		st.inSpoiler = false
	case markup.QuoteOpen:
		st.inQuote = true
	case markup.QuoteClose:
		st.inQuote = false
	case markup.QuoteLinkOpen:
		st.quoteLink = tok.Target
	case markup.QuoteLinkClose:
		st.quoteLink = ""
	case markup.CodeOpen:
		st.inCode = true
	case markup.CodeClose:
		if st.inCode {
			st.flushCode()
		}
		st.inCode = false
	case markup.LineBreak:
		if st.inCode {
			st.code.WriteByte('\n')
			return
		}
		st.lineQuote = false
		st.emit("\n", st.contextStyle())
		st.lineStart = true
	case markup.Text:
		if st.inCode {
			st.code.WriteString(tok.Text)
			return
		}
		st.text(tok.Text)
		st.lineStart = false
	}
}

func (st *state) emit(text string, style segment.Style) {
	st.segs = append(st.segs, segment.Segment{Text: text, Style: style})
}

// contextStyle is the style of text that needs no further inspection in the
// current state, such as a line break.
func (st *state) contextStyle() segment.Style {
	switch {
	case st.inSpoiler:
		return st.spoilerStyle()
	case st.inQuote:
		return greentextStyle
	case st.quoteLink != "":
		return quoteLinkStyle(st.quoteLink)
	}
	return segment.Style{}
}

func (st *state) text(s string) {
	switch {
	case st.inSpoiler:
		st.emit(s, st.spoilerStyle())
	case st.inQuote:
		st.greentext(s)
	case st.quoteLink != "":
		st.emit(s, quoteLinkStyle(st.quoteLink))
	case st.lineQuote:
		st.emit(s, greentextStyle)
	case st.lineStart && opensGreentext(s):
		st.lineQuote = true
		st.greentext(s)
	default:
		st.plain(s)
	}
}

var (
	greentextStyle = segment.Style{Role: segment.Greentext, Greentext: true}
	arrowStyle     = segment.Style{Role: segment.GreentextArrow, Greentext: true, Bold: true}
)

func (st *state) greentext(s string) {
	if rest, ok := strings.CutPrefix(s, ">"); ok {
		st.emit(">", arrowStyle)
		s = rest
	}
	st.emit(s, greentextStyle)
}

// opensGreentext reports whether a line beginning with s is an unmarked
// greentext line. Post references such as ">>123" are not.
func opensGreentext(s string) bool {
	if !strings.HasPrefix(s, ">") {
		return false
	}
	rest := strings.TrimLeft(s, ">")
	return !(len(s)-len(rest) >= 2 && rest != "" && rest[0] >= '0' && rest[0] <= '9')
}

func (st *state) spoilerStyle() segment.Style {
	role := segment.SpoilerHidden
	if st.revealAll || st.f.registry.IsRevealed(st.post, st.spoilerIndex) {
		role = segment.SpoilerRevealed
	}
	return segment.Style{
		Role:         role,
		Background:   segment.SpoilerBackground,
		SpoilerIndex: st.spoilerIndex,
		Greentext:    st.inQuote || st.lineQuote,
	}
}

func quoteLinkStyle(target string) segment.Style {
	return segment.Style{
		Role:      segment.QuoteLink,
		Target:    PostScheme + target,
		Underline: true,
	}
}

func (st *state) plain(s string) {
	if IsMathBoard(st.board) && latex.Contains(s) {
		if toks := latex.Extract(s); len(toks) > 0 {
			st.math(s, toks)
			return
		}
	}
	if found := links.Extract(s); len(found) > 0 {
		st.segs = append(st.segs, links.Apply(s, found, segment.Style{})...)
		return
	}
	st.emit(s, segment.Style{})
}

func (st *state) math(s string, toks []latex.Token) {
	last := 0
	for _, tok := range toks {
		st.emit(s[last:tok.Range.Start], segment.Style{})
		st.segs = append(st.segs, latex.Render(tok.Content, tok.Kind == latex.Display)...)
		last = tok.Range.End
	}
	st.emit(s[last:], segment.Style{})
}

func (st *state) flushCode() {
	code := st.code.String()
	st.code.Reset()
	if code == "" {
		return
	}

	if !IsProgrammingBoard(st.board) {
		st.emit(code, codeStyle(syntax.Plain))
		return
	}
	for _, tok := range syntax.Highlight(code) {
		st.emit(tok.Text, codeStyle(tok.Kind))
	}
}

func codeStyle(kind syntax.Kind) segment.Style {
	return segment.Style{
		Role:       segment.Code,
		Code:       kind,
		Background: segment.CodeBackground,
		Monospace:  true,
		Bold:       kind.Bold(),
	}
}
