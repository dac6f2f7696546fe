package cmd

import "github.com/charmbracelet/lipgloss"

var (
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	NoticeStyle = lipgloss.NewStyle().Faint(true)
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "75"})
)
