package ansi

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/postfmt/syntax"
)

// tokenTypes maps highlighter kinds onto the chroma token types whose style
// entries colour them.
var tokenTypes = map[syntax.Kind]chroma.TokenType{
	syntax.Plain:        chroma.Text,
	syntax.Keyword:      chroma.Keyword,
	syntax.String:       chroma.LiteralString,
	syntax.Number:       chroma.LiteralNumber,
	syntax.Comment:      chroma.Comment,
	syntax.Function:     chroma.NameFunction,
	syntax.Type:         chroma.KeywordType,
	syntax.Preprocessor: chroma.CommentPreproc,
	syntax.Operator:     chroma.Operator,
	syntax.Punctuation:  chroma.Punctuation,
	syntax.Variable:     chroma.NameVariable,
	syntax.Constant:     chroma.NameConstant,
}

func chromaColor(style StylePrimitive) string {
	var s []string

	if style.Color != nil {
		s = append(s, *style.Color)
	}
	if style.BackgroundColor != nil {
		s = append(s, "bg:"+*style.BackgroundColor)
	}
	for _, attr := range []struct {
		v    *bool
		name string
	}{
		{style.Bold, "bold"},
		{style.Italic, "italic"},
		{style.Underline, "underline"},
	} {
		switch {
		case attr.v == nil:
		case *attr.v:
			s = append(s, attr.name)
		default:
			s = append(s, "no"+attr.name)
		}
	}

	return strings.Join(s, " ")
}

// chromaStyle returns the chroma style selected by rules, or nil when code
// should not be coloured by kind.
func chromaStyle(rules StyleCode) (*chroma.Style, error) {
	if rules.Theme != "" {
		s, ok := styles.Registry[strings.ToLower(rules.Theme)]
		if !ok {
			return nil, fmt.Errorf("unknown code theme %q", rules.Theme)
		}
		return s, nil
	}
	if rules.Chroma == nil {
		return nil, nil
	}

	c := rules.Chroma
	return chroma.NewStyle("postfmt", chroma.StyleEntries{
		chroma.Text:           chromaColor(c.Text),
		chroma.Keyword:        chromaColor(c.Keyword),
		chroma.LiteralString:  chromaColor(c.String),
		chroma.LiteralNumber:  chromaColor(c.Number),
		chroma.Comment:        chromaColor(c.Comment),
		chroma.NameFunction:   chromaColor(c.Function),
		chroma.KeywordType:    chromaColor(c.Type),
		chroma.CommentPreproc: chromaColor(c.Preprocessor),
		chroma.Operator:       chromaColor(c.Operator),
		chroma.Punctuation:    chromaColor(c.Punctuation),
		chroma.NameVariable:   chromaColor(c.Variable),
		chroma.NameConstant:   chromaColor(c.Constant),
	})
}

// codeStyles resolves one style per token kind, each laid over the code
// block style. Theme backgrounds are ignored so a block keeps one background.
func codeStyles(rules StyleCode) (map[syntax.Kind]StylePrimitive, error) {
	style, err := chromaStyle(rules)
	if err != nil {
		return nil, err
	}

	out := make(map[syntax.Kind]StylePrimitive, len(tokenTypes))
	for kind, tt := range tokenTypes {
		p := rules.StylePrimitive
		if style != nil {
			p = cascade(p, fromChroma(style.Get(tt)))
		}
		out[kind] = p
	}
	return out, nil
}

func fromChroma(e chroma.StyleEntry) StylePrimitive {
	var p StylePrimitive
	if e.Colour.IsSet() {
		p.Color = stringPtr(e.Colour.String())
	}
	p.Bold = trilean(e.Bold)
	p.Italic = trilean(e.Italic)
	p.Underline = trilean(e.Underline)
	return p
}

func trilean(t chroma.Trilean) *bool {
	switch t {
	case chroma.Yes:
		return boolPtr(true)
	case chroma.No:
		return boolPtr(false)
	}
	return nil
}
