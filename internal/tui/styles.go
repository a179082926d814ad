package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// Palette holds the color scheme for the TUI
type Palette struct {
	FG       string // primary text
	Muted    string // secondary info, borders
	Accent   string // play counts, spinner
	AccentBg string // selection background
	Error    string
}

// DefaultPalette returns the amber-on-dark theme
func DefaultPalette() Palette {
	return Palette{
		FG:       "#d4a017",
		Muted:    "#6b6b4f",
		Accent:   "#8bc34a",
		AccentBg: "#1a1a14",
		Error:    "#ff6b6b",
	}
}

// Styles holds the lipgloss styles derived from a palette
type Styles struct {
	Title         lipgloss.Style
	Prompt        lipgloss.Style
	TableHeader   lipgloss.Style
	TableRow      lipgloss.Style
	TableSelected lipgloss.Style
	Plays         lipgloss.Style
	Muted         lipgloss.Style
	Error         lipgloss.Style
	Panel         lipgloss.Style
	PanelTitle    lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
}

// NewStyles creates styles from a palette
func NewStyles(p Palette) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.FG)).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),

		TableHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color(p.Muted)),

		TableRow: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.FG)),

		TableSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.FG)).
			Background(lipgloss.Color(p.AccentBg)).
			Bold(true),

		Plays: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Error)),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Muted)).
			Padding(0, 1),

		PanelTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.FG)).
			Bold(true),

		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)),

		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),
	}
}

// TruncateString cuts a string to max display cells with ellipsis
func TruncateString(s string, max int) string {
	if max <= 3 {
		return runewidth.Truncate(s, max, "")
	}
	return runewidth.Truncate(s, max, "...")
}

// PadRight pads a string to a specific width
func PadRight(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// PadLeft pads a string on the left to a specific width
func PadLeft(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

// formatPlays renders a play count with thousands separators, "?" when unknown
func formatPlays(n *int) string {
	if n == nil {
		return "?"
	}
	return humanize.Comma(int64(*n))
}
