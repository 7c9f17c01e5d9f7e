package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// CurrentTheme returns the theme used by the confirmation prompts.
func CurrentTheme() *huh.Theme {
	return boardTheme()
}

// boardTheme is the phpbb-ext look: a restrained variant of the huh base
// theme with bold titles, a rounded border and padded buttons.
func boardTheme() *huh.Theme {
	t := huh.ThemeBase()

	accent := lipgloss.Color("6")

	t.Focused.Title = t.Focused.Title.Bold(true).Foreground(accent)
	t.Focused.Base = t.Focused.Base.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(accent)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Bold(true).Padding(0, 1).
		Foreground(lipgloss.Color("0")).Background(accent)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Padding(0, 1)

	t.Blurred.Title = t.Blurred.Title.Bold(true)

	return t
}
