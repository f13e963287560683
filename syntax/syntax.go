// Package syntax classifies the contents of code blocks, one source line at a
// time, into a small fixed set of token kinds. It does not try to recognise a
// particular language; the tables below are a union of keywords found in the
// languages people tend to paste into posts.
package syntax

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/postfmt/utils"
	"github.com/dlclark/regexp2"
)

// Kind is the classification of a highlighted token.
type Kind int

// Token kinds.
const (
	Plain Kind = iota
	Keyword
	String
	Number
	Comment
	Function
	Type
	Preprocessor
	Operator
	Punctuation
	Variable
	Constant
)

var kindNames = [...]string{
	Plain:        "plain",
	Keyword:      "keyword",
	String:       "string",
	Number:       "number",
	Comment:      "comment",
	Function:     "function",
	Type:         "type",
	Preprocessor: "preprocessor",
	Operator:     "operator",
	Punctuation:  "punctuation",
	Variable:     "variable",
	Constant:     "constant",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "plain"
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Bold reports whether tokens of this kind are drawn with the bold variant of
// the monospace face.
func (k Kind) Bold() bool {
	return k == Keyword || k == Type || k == Function
}

// Token is a classified piece of a source line.
type Token struct {
	Text string `json:"text"`
	Kind Kind   `json:"kind"`
}

// Highlight tokenizes code line by line. Newlines are emitted as their own
// plain tokens so the concatenated token text always equals the input.
func Highlight(code string) []Token {
	lines := strings.Split(code, "\n")

	var toks []Token
	for i, line := range lines {
		toks = append(toks, HighlightLine(line)...)
		if i < len(lines)-1 {
			toks = append(toks, Token{Text: "\n", Kind: Plain})
		}
	}
	return toks
}

// HighlightLine tokenizes a single line. Every byte of line belongs to exactly
// one token, invalid UTF-8 included.
func HighlightLine(line string) []Token {
	r := []rune(line)
	offsets := utils.ByteOffsets(line)
	if at := commentStart(r); at >= 0 {
		toks := tokenize(line, r[:at], offsets)
		return append(toks, Token{Text: line[offsets[at]:], Kind: Comment})
	}
	return tokenize(line, r, offsets)
}

type commentMarker struct {
	text string
	// spaced markers are only comments when they stand alone, so that
	// "#include" and "i--" keep their meaning.
	spaced bool
}

var commentMarkers = []commentMarker{
	{text: "//"},
	{text: "/*"},
	{text: "#", spaced: true},
	{text: "--", spaced: true},
}

// commentStart returns the rune offset of the earliest comment marker that is
// not inside a string literal, or -1.
func commentStart(r []rune) int {
	best := -1
	for _, m := range commentMarkers {
		mr := []rune(m.text)
		for i := 0; i+len(mr) <= len(r); i++ {
			if best >= 0 && i >= best {
				break
			}
			if !hasPrefix(r[i:], mr) {
				continue
			}
			if m.spaced && !standsAlone(r, i, len(mr)) {
				continue
			}
			if insideString(r[:i]) {
				continue
			}
			best = i
			break
		}
	}
	return best
}

func standsAlone(r []rune, at, n int) bool {
	if at > 0 && !unicode.IsSpace(r[at-1]) {
		return false
	}
	end := at + n
	return end == len(r) || unicode.IsSpace(r[end])
}

// insideString reports whether a quote opened in prefix is still open. It
// only tracks quote parity and ignores escapes, which is good enough to keep
// "//" inside ordinary string literals from starting a comment.
func insideString(prefix []rune) bool {
	var (
		in    bool
		delim rune
	)
	for _, c := range prefix {
		switch {
		case !in && (c == '"' || c == '\''):
			in = true
			delim = c
		case in && c == delim:
			in = false
		}
	}
	return in
}

// tokenize splits r, the runes of src. Token text is sliced from src through
// offsets so bytes that are not valid UTF-8 survive unchanged.
func tokenize(src string, r []rune, offsets []int) []Token {
	var (
		toks []Token
		pos  int
	)
	emit := func(kind Kind, n int) {
		toks = append(toks, Token{Text: src[offsets[pos]:offsets[pos+n]], Kind: kind})
		pos += n
		r = r[n:]
	}

	for len(r) > 0 {
		if n := matchString(r); n > 0 {
			emit(String, n)
			continue
		}
		if n := matchNumber(r); n > 0 {
			emit(Number, n)
			continue
		}
		if r[0] == '#' {
			emit(Preprocessor, untilSpace(r))
			continue
		}
		if n := matchIdentifier(r); n > 0 {
			emit(classify(string(r[:n]), r[n:]), n)
			continue
		}
		if n := matchOperator(r); n > 0 {
			emit(Operator, n)
			continue
		}
		if strings.ContainsRune("(){}[]<>,.;:", r[0]) {
			emit(Punctuation, 1)
			continue
		}
		emit(Plain, 1)
	}
	return toks
}

func matchString(r []rune) int {
	delim := r[0]
	if delim != '"' && delim != '\'' && delim != '`' {
		return 0
	}
	escaped := false
	for i := 1; i < len(r); i++ {
		switch {
		case escaped:
			escaped = false
		case r[i] == '\\':
			escaped = true
		case r[i] == delim:
			return i + 1
		}
	}
	// unterminated literals run to the end of the line
	return len(r)
}

var (
	hexPattern     = mustCompile(`^0[xX][0-9a-fA-F]+`)
	binaryPattern  = mustCompile(`^0[bB][01]+`)
	octalPattern   = mustCompile(`^0[oO][0-7]+`)
	decimalPattern = mustCompile(`^[0-9]*\.?[0-9]+([eE][+-]?[0-9]+)?[fFdDlL]?`)
)

func mustCompile(expr string) *regexp2.Regexp {
	return regexp2.MustCompile(expr, regexp2.None)
}

func matchNumber(r []rune) int {
	if r[0] == '0' && len(r) > 1 {
		var re *regexp2.Regexp
		switch r[1] {
		case 'x', 'X':
			re = hexPattern
		case 'b', 'B':
			re = binaryPattern
		case 'o', 'O':
			re = octalPattern
		}
		if re != nil {
			if n := matchLen(re, r); n > 0 {
				return n
			}
		}
	}
	if isDigit(r[0]) || (r[0] == '.' && len(r) > 1 && isDigit(r[1])) {
		return matchLen(decimalPattern, r)
	}
	return 0
}

func matchLen(re *regexp2.Regexp, r []rune) int {
	m, err := re.FindRunesMatch(r)
	if err != nil || m == nil {
		return 0
	}
	return m.Length
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func untilSpace(r []rune) int {
	for i, c := range r {
		if unicode.IsSpace(c) {
			return i
		}
	}
	return len(r)
}

func matchIdentifier(r []rune) int {
	if !unicode.IsLetter(r[0]) && r[0] != '_' && r[0] != '$' {
		return 0
	}
	n := 1
	for n < len(r) && isIdentRune(r[n]) {
		n++
	}
	return n
}

func isIdentRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsNumber(c) || c == '_' || c == '$'
}

// Longest first where one operator is a prefix of another.
var operators = []string{
	"===", "!==", "...",
	"==", "!=", "<=", ">=", "&&", "||", "<<", ">>",
	"++", "--", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"->", "=>", "::", "??", "?.", "..",
}

const singleOperators = "+-*/%&|^!~<>=?:"

func matchOperator(r []rune) int {
	for _, op := range operators {
		if hasPrefix(r, []rune(op)) {
			return len(op)
		}
	}
	if strings.ContainsRune(singleOperators, r[0]) {
		return 1
	}
	return 0
}

func hasPrefix(r, prefix []rune) bool {
	if len(prefix) > len(r) {
		return false
	}
	for i := range prefix {
		if r[i] != prefix[i] {
			return false
		}
	}
	return true
}

func classify(ident string, rest []rune) Kind {
	switch {
	case keywords[ident]:
		return Keyword
	case types[ident]:
		return Type
	case constants[ident]:
		return Constant
	case strings.HasPrefix(ident, "$"):
		return Variable
	}
	if first := []rune(ident)[0]; unicode.IsUpper(first) {
		return Type
	}
	if len(rest) > 0 && rest[0] == '(' {
		return Function
	}
	return Plain
}
