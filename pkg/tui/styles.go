package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	muted  = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	danger = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5F87"}

	appStyle    = lipgloss.NewStyle().Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	sortStyle   = lipgloss.NewStyle().Foreground(muted)

	itemTitleStyle     = lipgloss.NewStyle().Bold(true)
	selectedTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	itemMetaStyle      = lipgloss.NewStyle().Foreground(muted)
	emptyStyle         = lipgloss.NewStyle().Foreground(muted).Italic(true)

	statusStyle = lipgloss.NewStyle().Foreground(accent)
	errorStyle  = lipgloss.NewStyle().Foreground(danger)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)
	labelStyle = lipgloss.NewStyle().Foreground(muted)
)
