package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorMatch     = lipgloss.Color("220") // Amber
)

// namedColors maps the color names used in config and status display to
// the 16 ANSI colors, so they follow the terminal's palette.
var namedColors = map[string]lipgloss.Color{
	"black":         "0",
	"red":           "1",
	"green":         "2",
	"yellow":        "3",
	"blue":          "4",
	"magenta":       "5",
	"cyan":          "6",
	"white":         "7",
	"gray":          "8",
	"grey":          "8",
	"blackbright":   "8",
	"redbright":     "9",
	"greenbright":   "10",
	"yellowbright":  "11",
	"bluebright":    "12",
	"magentabright": "13",
	"cyanbright":    "14",
	"whitebright":   "15",
}

// colorFor resolves a color name. Anything unknown (hex, ANSI numbers) is
// passed to lipgloss as is.
func colorFor(name string) lipgloss.Color {
	if c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return lipgloss.Color(name)
}

// TitleStyle for the app title.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// SubtitleStyle for the tracking summary under the title.
var SubtitleStyle = lipgloss.NewStyle().
	Foreground(colorSecondary)

// SectionHeader style for block headings like "Channel activity".
var SectionHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorPrimary).
	MarginTop(1)

// HeadingStyle for the current level's prompt.
var HeadingStyle = lipgloss.NewStyle().
	Bold(true).
	MarginTop(1)

// ColumnHeader style for table headers.
var ColumnHeader = lipgloss.NewStyle().
	Foreground(colorMuted).
	Underline(true)

// Pointer style for the highlighted row marker.
var Pointer = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// SelectedRow style for the highlighted row's text.
var SelectedRow = lipgloss.NewStyle().
	Bold(true)

// MatchStyle for filter matches inside a cell.
var MatchStyle = lipgloss.NewStyle().
	Foreground(colorMatch).
	Underline(true)

// MutedText for secondary values like exact timestamps.
var MutedText = lipgloss.NewStyle().
	Foreground(colorMuted)

// FilterBarPrompt style for the "Filter:" prompt.
var FilterBarPrompt = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// FilterBarText style for the filter input text.
var FilterBarText = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255"))

// StatusMessage style for successful action feedback.
var StatusMessage = lipgloss.NewStyle().
	Foreground(colorFor("green"))

// WarningStyle for skipped posts.
var WarningStyle = lipgloss.NewStyle().
	Foreground(colorFor("yellow"))

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true)

// HelpStyle for the key hint footer.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	MarginTop(1)
