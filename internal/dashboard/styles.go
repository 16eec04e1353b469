// Package dashboard renders a test run's progress and final summary to the
// terminal, grounded on the teacher's pkg/tui color palette and animation
// idiom (harmonica spring easing, lipgloss styling, glamour-rendered
// markdown), rebuilt as a SampleListener driving a bubbletea program
// instead of a chat UI.
package dashboard

import "github.com/charmbracelet/lipgloss"

var (
	accentColor  = lipgloss.Color("#7aa2f7")
	successColor = lipgloss.Color("#73daca")
	errorColor   = lipgloss.Color("#f7768e")
	dimColor     = lipgloss.Color("#6c6c6c")
	textColor    = lipgloss.Color("#e0e0e0")

	titleStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(successColor)
	failStyle  = lipgloss.NewStyle().Foreground(errorColor)
	dimStyle   = lipgloss.NewStyle().Foreground(dimColor)
	textStyle  = lipgloss.NewStyle().Foreground(textColor)
)
