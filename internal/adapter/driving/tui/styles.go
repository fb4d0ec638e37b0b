package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	colorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	colorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	colorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	colorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	colorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	colorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorBlue).
			Padding(0, 1)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorRed).
			Padding(0, 1)

	unreadStyle = lipgloss.NewStyle().Bold(true)

	readStyle = lipgloss.NewStyle().Foreground(colorGray)

	cursorStyle = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
)

// toastStyle colors a toast by severity.
func toastStyle(s model.Severity) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch s {
	case model.SeveritySuccess:
		return base.Foreground(colorGreen)
	case model.SeverityError:
		return base.Foreground(colorRed)
	case model.SeverityWarning:
		return base.Foreground(colorYellow)
	default:
		return base.Foreground(colorBlue)
	}
}
