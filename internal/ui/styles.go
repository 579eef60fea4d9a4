package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/sugarlog/internal/aggregate"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4472C4"))
	dayStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	cursorStyle = lipgloss.NewStyle().Bold(true)
	markedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#51CF66"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

func statusStyle(status aggregate.Status) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#" + status.Color()))
}
