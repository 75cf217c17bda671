package cmd

import "github.com/charmbracelet/lipgloss"

// Shared lipgloss styles.
var (
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	proposedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#50FA7B"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)
