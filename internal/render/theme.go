package render

import "charm.land/lipgloss/v2"

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	dayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			MarginTop(1)

	timeStyle = lipgloss.NewStyle().
			Foreground(Text).
			Width(13)

	subjectStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Width(16)

	topicStyle = lipgloss.NewStyle().
			Foreground(Text).
			Width(32)

	labelStyle = lipgloss.NewStyle().
			Foreground(TextDim)

	hintStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
