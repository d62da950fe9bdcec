package browse

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Purple    = lipgloss.Color("#7C3AED")
	Cyan      = lipgloss.Color("#06B6D4")
	Muted     = lipgloss.Color("#6B7280")
	Primary   = lipgloss.Color("#E5E7EB")
	Inverse   = lipgloss.Color("#111827")
	Highlight = lipgloss.Color("#A78BFA")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(Purple).
			Bold(true).
			Padding(0, 1)

	contextStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	termStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	selectedStyle = lipgloss.NewStyle().
			Background(Highlight).
			Foreground(Inverse)

	detailStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Purple).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)
)
