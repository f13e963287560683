// Package ansi draws formatted post segments for a terminal.
package ansi

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/postfmt/segment"
	"github.com/charmbracelet/postfmt/syntax"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/muesli/termenv"
)

// defaultMask hides spoilers on terminals without colour.
const defaultMask = "█"

// Options is the configuration of a Renderer.
type Options struct {
	// WordWrap is the total output width, margin included. Zero disables
	// wrapping.
	WordWrap     int
	Styles       StyleConfig
	ColorProfile termenv.Profile
}

// Renderer turns segments into styled terminal text.
type Renderer struct {
	options Options
	lg      *lipgloss.Renderer
	code    map[syntax.Kind]StylePrimitive
}

// NewRenderer returns a Renderer with style and options set.
func NewRenderer(options Options) (*Renderer, error) {
	if err := options.Styles.Validate(); err != nil {
		return nil, err
	}
	code, err := codeStyles(options.Styles.Code)
	if err != nil {
		return nil, fmt.Errorf("unable to load code style: %w", err)
	}

	lg := lipgloss.NewRenderer(io.Discard)
	lg.SetColorProfile(options.ColorProfile)

	return &Renderer{
		options: options,
		lg:      lg,
		code:    code,
	}, nil
}

// Render draws segs as a document: wrapped, indented by the document margin
// and surrounded by its block prefix and suffix.
func (r *Renderer) Render(segs []segment.Segment) string {
	doc := r.options.Styles.Document

	var b strings.Builder
	for _, s := range segs {
		r.renderSegment(&b, s)
	}
	out := b.String()

	var margin uint
	if doc.Margin != nil {
		margin = *doc.Margin
	}
	if width := r.options.WordWrap - int(margin); r.options.WordWrap > 0 && width > 0 {
		out = wrap.String(wordwrap.String(out, width), width)
	}
	if margin > 0 {
		out = indent.String(out, margin)
	}

	return doc.BlockPrefix + out + doc.BlockSuffix
}

func (r *Renderer) renderSegment(b *strings.Builder, s segment.Segment) {
	text := s.Text
	if s.Style.Role == segment.SpoilerHidden {
		if mask := r.mask(); mask != "" {
			text = maskText(text, mask)
		}
	}

	st := r.lipglossStyle(r.primitive(s.Style))
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line != "" {
			b.WriteString(st.Render(line))
		}
	}
}

func (r *Renderer) mask() string {
	if m := r.options.Styles.Spoiler.Mask; m != "" {
		return m
	}
	if r.options.ColorProfile == termenv.Ascii {
		return defaultMask
	}
	return ""
}

// maskText replaces every terminal cell of s with mask, keeping line breaks.
func maskText(s, mask string) string {
	var b strings.Builder
	for _, c := range s {
		if c == '\n' {
			b.WriteRune(c)
			continue
		}
		b.WriteString(strings.Repeat(mask, runewidth.RuneWidth(c)))
	}
	return b.String()
}

// primitive resolves the style of a segment: document, then text, then the
// role, then the segment's own flags.
func (r *Renderer) primitive(st segment.Style) StylePrimitive {
	cfg := r.options.Styles
	p := cascade(cfg.Document.StylePrimitive, cfg.Text)
	if st.Greentext {
		p = cascade(p, cfg.Greentext)
	}

	switch st.Role {
	case segment.GreentextArrow:
		p = cascade(p, cfg.GreentextArrow)
	case segment.SpoilerHidden:
		p = cascade(p, cfg.Spoiler.Hidden)
		if p.BackgroundColor != nil {
			p.Color = p.BackgroundColor
		}
	case segment.SpoilerRevealed:
		p = cascade(p, cfg.Spoiler.Revealed)
	case segment.QuoteLink:
		p = cascade(p, cfg.QuoteLink)
	case segment.Code:
		p = cascade(p, r.code[st.Code])
	case segment.Math:
		p = cascade(p, cfg.Math.StylePrimitive)
		switch st.Math {
		case segment.MathNumber:
			p = cascade(p, cfg.Math.Number)
		case segment.MathOperator:
			p = cascade(p, cfg.Math.Operator)
		}
		if st.Display {
			p = cascade(p, cfg.Math.Display)
		}
	case segment.Link:
		p = cascade(p, cfg.Link.StylePrimitive)
		switch st.Link {
		case segment.VideoLink:
			p = cascade(p, cfg.Link.Video)
		case segment.SocialLink:
			p = cascade(p, cfg.Link.Social)
		}
	}

	if st.Bold {
		p.Bold = boolPtr(true)
	}
	if st.Italic {
		p.Italic = boolPtr(true)
	}
	if st.Underline {
		p.Underline = boolPtr(true)
	}
	if st.Filtered {
		p = cascade(p, cfg.Filtered)
	}
	return p
}

func (r *Renderer) lipglossStyle(p StylePrimitive) lipgloss.Style {
	s := r.lg.NewStyle().Inline(true)

	if p.Color != nil {
		s = s.Foreground(lipgloss.Color(*p.Color))
	}
	if p.BackgroundColor != nil {
		s = s.Background(lipgloss.Color(*p.BackgroundColor))
	}
	if p.Bold != nil {
		s = s.Bold(*p.Bold)
	}
	if p.Italic != nil {
		s = s.Italic(*p.Italic)
	}
	if p.Underline != nil {
		s = s.Underline(*p.Underline)
	}
	if p.CrossedOut != nil {
		s = s.Strikethrough(*p.CrossedOut)
	}
	if p.Faint != nil {
		s = s.Faint(*p.Faint)
	}
	if p.Inverse != nil {
		s = s.Reverse(*p.Inverse)
	}
	if p.Blink != nil {
		s = s.Blink(*p.Blink)
	}
	return s
}
