package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor    = lipgloss.Color("#8b5cf6")
	accentAltColor = lipgloss.Color("#6366f1")
	mutedColor     = lipgloss.Color("244")
	successColor   = lipgloss.Color("#22c55e")
	dangerColor    = lipgloss.Color("#ef4444")

	heroTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	taglineStyle       = lipgloss.NewStyle().Foreground(accentAltColor).Italic(true)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	helperStyle        = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(mutedColor)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(accentColor)

	inputBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(0, 1)
	errorBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(dangerColor).Foreground(dangerColor).Padding(0, 2)
	cardStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)
	supportBoxStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accentAltColor).Padding(0, 2)

	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(accentColor).Padding(0, 1)
	buttonDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("236")).Padding(0, 1)
	copiedStyle         = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	statusBarStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
)
