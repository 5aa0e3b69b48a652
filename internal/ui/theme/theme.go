package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette for the dark BilimPath look
var (
	Primary   = lipgloss.Color("#7C6CF6") // Gradient Purple
	Secondary = lipgloss.Color("#38BDF8") // Sky Blue
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#F97316") // Orange
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0B1120") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	ChipActive = lipgloss.NewStyle().
			Background(Secondary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 1)

	ChipInactive = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(TextDim).
			Padding(0, 1)
)
