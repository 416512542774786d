package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	SectionTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	SectionSelected = lipgloss.NewStyle().
			Bold(true).
			Background(Primary).
			Foreground(White)

	Body = lipgloss.NewStyle()

	// Navigation rail
	Rail = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Muted).
		PaddingRight(1)

	Linker = lipgloss.NewStyle().
		Foreground(Muted)

	LinkerSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	// Media transition states
	MediaPending = lipgloss.NewStyle().
			Foreground(Muted).
			Faint(true)

	MediaLoading = lipgloss.NewStyle().
			Foreground(Warning)

	MediaLoaded = lipgloss.NewStyle().
			Foreground(Secondary)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusFragment = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Help line
	HelpKey = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)
)
