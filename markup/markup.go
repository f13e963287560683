// Package markup turns raw post bodies into a flat stream of tokens. Only a
// small fixed set of tags is recognised; every other tag is removed before
// scanning.
package markup

import (
	"html"
	"strings"

	"github.com/dlclark/regexp2"
)

// Kind identifies a token.
type Kind int

// Token kinds.
const (
	Text Kind = iota
	SpoilerOpen
	SpoilerClose
	QuoteOpen
	QuoteClose
	QuoteLinkOpen
	QuoteLinkClose
	CodeOpen
	CodeClose
	LineBreak
)

var kindNames = [...]string{
	Text:           "text",
	SpoilerOpen:    "spoiler-open",
	SpoilerClose:   "spoiler-close",
	QuoteOpen:      "quote-open",
	QuoteClose:     "quote-close",
	QuoteLinkOpen:  "quotelink-open",
	QuoteLinkClose: "quotelink-close",
	CodeOpen:       "code-open",
	CodeClose:      "code-close",
	LineBreak:      "line-break",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Token is a single element of the token stream.
type Token struct {
	Kind Kind
	// Text is the entity-decoded content of a Text token.
	Text string
	// Target is the referenced post id of a QuoteLinkOpen token.
	Target string
	// Raw is the exact slice of cleaned input the token was read from.
	Raw string
}

const (
	quoteLinkPrefix = `<a href="#p`
	quoteLinkSuffix = `" class="quotelink">`
)

type matcher func(s string) (Token, bool)

func literal(spelling string, kind Kind) matcher {
	return func(s string) (Token, bool) {
		if strings.HasPrefix(s, spelling) {
			return Token{Kind: kind, Raw: spelling}, true
		}
		return Token{}, false
	}
}

// Tested in order at every position.
var matchers = []matcher{
	literal("<s>", SpoilerOpen),
	literal("</s>", SpoilerClose),
	literal(`<span class="quote">`, QuoteOpen),
	literal("</span>", QuoteClose),
	matchQuoteLink,
	literal("</a>", QuoteLinkClose),
	literal(`<pre class="prettyprint">`, CodeOpen),
	literal("<code>", CodeOpen),
	literal("</pre>", CodeClose),
	literal("</code>", CodeClose),
	literal("\n", LineBreak),
}

var breaks = strings.NewReplacer(
	"<br>", "\n",
	"<br/>", "\n",
	"<br />", "\n",
	"<wbr>", "",
)

var unknownTag = regexp2.MustCompile(
	`<(?!/?s>|span class="quote">|/span>|a href="#p[0-9]+" class="quotelink">|/a>|pre class="prettyprint">|/pre>|code>|/code>)[^<>\n]+>`,
	regexp2.None,
)

// StripUnknownTags removes every tag that is not part of the recognised
// vocabulary. Removing an inner tag can join the text around it into a new
// tag, so passes repeat until nothing changes.
func StripUnknownTags(s string) string {
	for {
		out, err := unknownTag.Replace(s, "", -1, -1)
		if err != nil || out == s {
			return s
		}
		s = out
	}
}

// Clean applies the line break rewrites and tag stripping that Tokenize
// performs before scanning.
func Clean(raw string) string {
	return StripUnknownTags(breaks.Replace(raw))
}

// DecodeEntities resolves HTML entities and turns non-breaking spaces into
// plain spaces.
func DecodeEntities(s string) string {
	return strings.ReplaceAll(html.UnescapeString(s), "\u00a0", " ")
}

// Tokenize scans raw into tokens. It never fails: text that matches no marker
// ends up in Text tokens.
func Tokenize(raw string) []Token {
	s := Clean(raw)

	var (
		toks  []Token
		start = -1
	)
	flush := func(end int) {
		if start < 0 {
			return
		}
		run := s[start:end]
		toks = append(toks, Token{Kind: Text, Text: DecodeEntities(run), Raw: run})
		start = -1
	}

	for i := 0; i < len(s); {
		if tok, ok := matchMarker(s[i:]); ok {
			flush(i)
			toks = append(toks, tok)
			i += len(tok.Raw)
			continue
		}
		if start < 0 {
			start = i
		}
		// skip to the next byte that could begin a marker
		next := strings.IndexAny(s[i+1:], "<\n")
		if next < 0 {
			i = len(s)
			break
		}
		i += next + 1
	}
	flush(len(s))

	return toks
}

func matchMarker(s string) (Token, bool) {
	for _, m := range matchers {
		if tok, ok := m(s); ok {
			return tok, true
		}
	}
	return Token{}, false
}

func matchQuoteLink(s string) (Token, bool) {
	if !strings.HasPrefix(s, quoteLinkPrefix) {
		return Token{}, false
	}
	rest := s[len(quoteLinkPrefix):]
	n := 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	if n == 0 || !strings.HasPrefix(rest[n:], quoteLinkSuffix) {
		return Token{}, false
	}
	raw := s[:len(quoteLinkPrefix)+n+len(quoteLinkSuffix)]
	return Token{Kind: QuoteLinkOpen, Target: rest[:n], Raw: raw}, true
}

// Join concatenates the raw spelling of every token. For any input,
// Join(Tokenize(s)) equals Clean(s).
func Join(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Raw)
	}
	return b.String()
}
