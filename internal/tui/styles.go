package tui

import "github.com/charmbracelet/lipgloss"

var (
	Accent      = lipgloss.Color("#8BC34A")
	Muted       = lipgloss.Color("#6B7280")
	Destructive = lipgloss.Color("#E53935")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(Accent).MarginBottom(1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	labelStyle    = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(Destructive)
	helpStyle     = lipgloss.NewStyle().Foreground(Muted).MarginTop(1)
	confirmStyle  = lipgloss.NewStyle().Bold(true).Foreground(Destructive)
)
