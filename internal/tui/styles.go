package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "28", Dark: "114"}
	muted  = lipgloss.AdaptiveColor{Light: "245", Dark: "241"}

	activeTabStyle = lipgloss.NewStyle().
			Foreground(accent).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(accent).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(muted).
				Border(lipgloss.HiddenBorder(), false, false, true, false).
				Padding(0, 1)

	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	successStyle = lipgloss.NewStyle().Foreground(accent)

	// sourceStyle tags the plan tab with where the plan came from
	sourceStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true).
			Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)
