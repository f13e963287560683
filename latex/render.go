package latex

import (
	"strings"

	"github.com/charmbracelet/postfmt/segment"
	"github.com/charmbracelet/postfmt/utils"
)

var number = mustCompile(`[0-9]+\.?[0-9]*`)

// Render converts content and splits the result into segments so numbers and
// operator glyphs can be coloured apart from the rest. Display math is marked
// as such; inline math is italic.
func Render(content string, display bool) []segment.Segment {
	text := []rune(Convert(content))
	if len(text) == 0 {
		return nil
	}

	kinds := make([]segment.MathKind, len(text))
	for _, m := range utils.FindAll(number, string(text)) {
		for i := m.Index; i < m.Index+m.Length; i++ {
			kinds[i] = segment.MathNumber
		}
	}
	for i, c := range text {
		if strings.ContainsRune(operatorGlyphs, c) {
			kinds[i] = segment.MathOperator
		}
	}

	base := segment.Style{
		Role:    segment.Math,
		Italic:  !display,
		Display: display,
	}

	var segs []segment.Segment
	start := 0
	for i := 1; i <= len(text); i++ {
		if i < len(text) && kinds[i] == kinds[start] {
			continue
		}
		style := base
		style.Math = kinds[start]
		segs = append(segs, segment.Segment{Text: string(text[start:i]), Style: style})
		start = i
	}
	return segs
}
