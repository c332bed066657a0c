package ui

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): primary text
// - Accent (soft blue #89B4FA): paths, titles, highlights
// - Muted (gray): secondary info, line numbers
// Status is conveyed with unicode symbols, not colors.

const defaultAccent = "#89B4FA"

var (
	// Accent style for file paths, titles, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints, line numbers
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	accentColor = defaultAccent
)

var accentRe = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|\d{1,3})$`)

// ConfigureTheme applies the configured accent color. Unparseable values
// keep the default.
func ConfigureTheme(accent string) {
	if accent == "" || !accentRe.MatchString(accent) {
		return
	}
	accentColor = accent
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(accent))
}

// AccentColor returns the active accent color.
func AccentColor() string { return accentColor }
