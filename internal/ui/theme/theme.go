package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: calm neutrals with a single green accent
var (
	Primary   = lipgloss.Color("#73C371") // Leaf Green
	Secondary = lipgloss.Color("#4F9A4D") // Deep Green
	Accent    = lipgloss.Color("#3B82F6") // Blue (chosen answer)
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F5F5F7") // Off White
	TextDim   = lipgloss.Color("#9A9A9A") // Grey
	BgDark    = lipgloss.Color("#191919") // Ink
	BgCard    = lipgloss.Color("#262626") // Charcoal
	Border    = lipgloss.Color("#5A5A5A") // Slate Grey
	Track     = lipgloss.Color("#3A3A3A") // Progress track
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Chosen = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Prefer = lipgloss.NewStyle().
		Foreground(TextDim).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Track)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)
