package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const (
	wrapAt       = 78
	indentAmount = 2
)

var keyword = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#5F8700", Dark: "#A3C95B"}).
	Render

// paragraph formats help text for the terminal.
func paragraph(s string) string {
	return indent.String(wordwrap.String(s, wrapAt-indentAmount), indentAmount)
}
