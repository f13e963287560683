package ui

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	cream       = lipgloss.AdaptiveColor{Light: "#FFFDF5", Dark: "#FFFDF5"}
	fuchsia     = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	red         = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	mintGreen   = lipgloss.AdaptiveColor{Light: "#89F0CB", Dark: "#89F0CB"}
	darkGreen   = lipgloss.AdaptiveColor{Light: "#1C8760", Dark: "#1C8760"}
	greentext   = lipgloss.AdaptiveColor{Light: "#5F8700", Dark: "#A3C95B"}
	statusBarFg = lipgloss.AdaptiveColor{Light: "#656565", Dark: "#7D7D7D"}
	statusBarBg = lipgloss.AdaptiveColor{Light: "#E6E6E6", Dark: "#242424"}
)

var (
	logoStyle = lipgloss.NewStyle().
			Foreground(cream).
			Background(fuchsia).
			Bold(true)

	statusBarNoteStyle      = lipgloss.NewStyle().Foreground(statusBarFg).Background(statusBarBg).Render
	statusBarBoardStyle     = lipgloss.NewStyle().Foreground(greentext).Background(statusBarBg).Render
	statusBarScrollPosStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#949494", Dark: "#5A5A5A"}).
				Background(statusBarBg).
				Render
	statusBarHelpStyle = lipgloss.NewStyle().
				Foreground(statusBarFg).
				Background(lipgloss.AdaptiveColor{Light: "#DCDCDC", Dark: "#323232"}).
				Render
	statusBarMessageStyle = lipgloss.NewStyle().Foreground(mintGreen).Background(darkGreen).Render
	statusBarErrorStyle   = lipgloss.NewStyle().Foreground(cream).Background(red).Render
	helpViewStyle         = lipgloss.NewStyle().
				Foreground(statusBarFg).
				Background(lipgloss.AdaptiveColor{Light: "#f2f2f2", Dark: "#1B1B1B"}).
				Render
)
