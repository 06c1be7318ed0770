package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#7D56F4")
	muted  = lipgloss.Color("#6C6C6C")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	countStyle = lipgloss.NewStyle().Foreground(muted)
	helpStyle  = lipgloss.NewStyle().Foreground(muted)
	emptyStyle = lipgloss.NewStyle().Italic(true).Foreground(muted).Padding(1, 2)

	pillStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(muted)
	activePillStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).Background(accent)

	searchPromptStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
)
