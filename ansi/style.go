package ansi

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// StylePrimitive holds the presentation of a single run of text. Unset
// fields inherit from the style beneath.
type StylePrimitive struct {
	Color           *string `json:"color,omitempty"`
	BackgroundColor *string `json:"background_color,omitempty"`
	Underline       *bool   `json:"underline,omitempty"`
	Bold            *bool   `json:"bold,omitempty"`
	Italic          *bool   `json:"italic,omitempty"`
	CrossedOut      *bool   `json:"crossed_out,omitempty"`
	Faint           *bool   `json:"faint,omitempty"`
	Inverse         *bool   `json:"inverse,omitempty"`
	Blink           *bool   `json:"blink,omitempty"`
}

type StyleBlock struct {
	StylePrimitive
	BlockPrefix string `json:"block_prefix,omitempty"`
	BlockSuffix string `json:"block_suffix,omitempty"`
	Margin      *uint  `json:"margin,omitempty"`
}

type StyleSpoiler struct {
	Hidden   StylePrimitive `json:"hidden"`
	Revealed StylePrimitive `json:"revealed"`

	// Mask, when set, replaces every cell of hidden spoiler text.
	Mask string `json:"mask,omitempty"`
}

type StyleMath struct {
	StylePrimitive
	Number   StylePrimitive `json:"number"`
	Operator StylePrimitive `json:"operator"`
	Display  StylePrimitive `json:"display"`
}

type StyleLink struct {
	StylePrimitive
	Video  StylePrimitive `json:"video"`
	Social StylePrimitive `json:"social"`
}

type StyleCode struct {
	StylePrimitive

	// Theme names a registered chroma style. When empty, Chroma is used;
	// with neither, code is drawn in the block style alone.
	Theme  string       `json:"theme,omitempty"`
	Chroma *StyleChroma `json:"chroma,omitempty"`
}

// StyleChroma colours code by token kind.
type StyleChroma struct {
	Text         StylePrimitive `json:"text"`
	Keyword      StylePrimitive `json:"keyword"`
	String       StylePrimitive `json:"string"`
	Number       StylePrimitive `json:"number"`
	Comment      StylePrimitive `json:"comment"`
	Function     StylePrimitive `json:"function"`
	Type         StylePrimitive `json:"type"`
	Preprocessor StylePrimitive `json:"preprocessor"`
	Operator     StylePrimitive `json:"operator"`
	Punctuation  StylePrimitive `json:"punctuation"`
	Variable     StylePrimitive `json:"variable"`
	Constant     StylePrimitive `json:"constant"`
}

// StyleConfig is a complete theme for rendering posts.
type StyleConfig struct {
	Document       StyleBlock     `json:"document"`
	Text           StylePrimitive `json:"text"`
	Greentext      StylePrimitive `json:"greentext"`
	GreentextArrow StylePrimitive `json:"greentext_arrow"`
	Spoiler        StyleSpoiler   `json:"spoiler"`
	QuoteLink      StylePrimitive `json:"quote_link"`
	Link           StyleLink      `json:"link"`
	Code           StyleCode      `json:"code"`
	Math           StyleMath      `json:"math"`
	Filtered       StylePrimitive `json:"filtered"`
}

// cascade returns child laid over parent.
func cascade(parent, child StylePrimitive) StylePrimitive {
	s := parent

	if child.Color != nil {
		s.Color = child.Color
	}
	if child.BackgroundColor != nil {
		s.BackgroundColor = child.BackgroundColor
	}
	if child.Underline != nil {
		s.Underline = child.Underline
	}
	if child.Bold != nil {
		s.Bold = child.Bold
	}
	if child.Italic != nil {
		s.Italic = child.Italic
	}
	if child.CrossedOut != nil {
		s.CrossedOut = child.CrossedOut
	}
	if child.Faint != nil {
		s.Faint = child.Faint
	}
	if child.Inverse != nil {
		s.Inverse = child.Inverse
	}
	if child.Blink != nil {
		s.Blink = child.Blink
	}

	return s
}

// Validate reports the first colour in the config that is neither a hex
// colour nor an ANSI palette index.
func (c StyleConfig) Validate() error {
	named := map[string]StylePrimitive{
		"document":         c.Document.StylePrimitive,
		"text":             c.Text,
		"greentext":        c.Greentext,
		"greentext_arrow":  c.GreentextArrow,
		"spoiler.hidden":   c.Spoiler.Hidden,
		"spoiler.revealed": c.Spoiler.Revealed,
		"quote_link":       c.QuoteLink,
		"link":             c.Link.StylePrimitive,
		"link.video":       c.Link.Video,
		"link.social":      c.Link.Social,
		"code":             c.Code.StylePrimitive,
		"math":             c.Math.StylePrimitive,
		"math.number":      c.Math.Number,
		"math.operator":    c.Math.Operator,
		"math.display":     c.Math.Display,
		"filtered":         c.Filtered,
	}
	if ch := c.Code.Chroma; ch != nil {
		for k, p := range map[string]StylePrimitive{
			"text": ch.Text, "keyword": ch.Keyword, "string": ch.String,
			"number": ch.Number, "comment": ch.Comment, "function": ch.Function,
			"type": ch.Type, "preprocessor": ch.Preprocessor, "operator": ch.Operator,
			"punctuation": ch.Punctuation, "variable": ch.Variable, "constant": ch.Constant,
		} {
			named["code.chroma."+k] = p
		}
	}

	for name, p := range named {
		for _, col := range []*string{p.Color, p.BackgroundColor} {
			if col == nil {
				continue
			}
			if err := validColor(*col); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

func validColor(s string) error {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return fmt.Errorf("colour index %d out of range", n)
		}
		return nil
	}
	if _, err := colorful.Hex(s); err != nil {
		return fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return nil
}
