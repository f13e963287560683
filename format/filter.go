package format

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/postfmt/markup"
	"github.com/dlclark/regexp2"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ContentFilter decides whether a post should be hidden from the reader.
type ContentFilter interface {
	Enabled() bool
	Matches(text string) bool
}

// NoFilter never matches.
type NoFilter struct{}

func (NoFilter) Enabled() bool       { return false }
func (NoFilter) Matches(string) bool { return false }

var strictPolicy = bluemonday.StrictPolicy()

// PlainText strips all markup from a raw post body and decodes its entities.
// Line breaks survive as newlines.
func PlainText(raw string) string {
	return markup.DecodeEntities(strictPolicy.Sanitize(markup.Clean(raw)))
}

// KeywordFilter matches posts containing any of its keywords. Keywords are
// compared without case or diacritics. An entry written as /expr/ is a
// case-insensitive regular expression instead.
type KeywordFilter struct {
	keywords []string
	patterns []*regexp2.Regexp
}

// NewKeywordFilter builds a filter from entries. Blank entries are ignored.
func NewKeywordFilter(entries []string) (*KeywordFilter, error) {
	k := &KeywordFilter{}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		switch {
		case e == "":
			continue
		case len(e) > 2 && strings.HasPrefix(e, "/") && strings.HasSuffix(e, "/"):
			re, err := regexp2.Compile(e[1:len(e)-1], regexp2.IgnoreCase)
			if err != nil {
				return nil, fmt.Errorf("invalid filter pattern %q: %w", e, err)
			}
			k.patterns = append(k.patterns, re)
		default:
			k.keywords = append(k.keywords, fold(e))
		}
	}
	return k, nil
}

func (k *KeywordFilter) Enabled() bool {
	return k != nil && len(k.keywords)+len(k.patterns) > 0
}

// Matches reports whether text contains a keyword or matches a pattern. Text
// may be plain or a raw post body.
func (k *KeywordFilter) Matches(text string) bool {
	if !k.Enabled() {
		return false
	}
	plain := PlainText(text)
	folded := fold(plain)
	for _, kw := range k.keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	for _, re := range k.patterns {
		if ok, err := re.MatchString(plain); err == nil && ok {
			return true
		}
	}
	return false
}

// fold lowercases s and removes diacritics.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
