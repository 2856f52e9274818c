package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette for the recipekit theme. Light values target light terminals.
var (
	kitAmberPrimary = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f59e0b"}
	kitAmberBright  = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"}
	kitAmberAccent  = lipgloss.AdaptiveColor{Light: "#92400e", Dark: "#fcd34d"}

	kitTextStrong = lipgloss.AdaptiveColor{Light: "#1c1917", Dark: "#fafaf9"}
	kitTextNormal = lipgloss.AdaptiveColor{Light: "#44403c", Dark: "#d6d3d1"}
	kitTextMuted  = lipgloss.AdaptiveColor{Light: "#78716c", Dark: "#a8a29e"}
	kitTextFaint  = lipgloss.AdaptiveColor{Light: "#a8a29e", Dark: "#57534e"}

	kitBorderFocused = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#f59e0b"}
	kitBorderNormal  = lipgloss.AdaptiveColor{Light: "#d6d3d1", Dark: "#44403c"}

	kitButtonBg          = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f59e0b"}
	kitButtonBgBlurred   = lipgloss.AdaptiveColor{Light: "#e7e5e4", Dark: "#292524"}
	kitButtonText        = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#1c1917"}
	kitButtonTextBlurred = lipgloss.AdaptiveColor{Light: "#57534e", Dark: "#a8a29e"}
)

// recipekitTheme builds the default huh theme on top of huh.ThemeBase.
func recipekitTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(kitBorderFocused)
	t.Focused.Title = t.Focused.Title.Foreground(kitAmberPrimary).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(kitAmberPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(kitTextMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(lipgloss.Color("#dc2626"))
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(lipgloss.Color("#dc2626"))
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(kitAmberBright)
	t.Focused.Option = t.Focused.Option.Foreground(kitTextNormal)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(kitAmberAccent)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(kitAmberBright)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(kitTextNormal)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(kitAmberBright)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(kitAmberPrimary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(kitTextFaint)
	t.Focused.TextInput.Text = t.Focused.TextInput.Text.Foreground(kitTextStrong)

	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(kitButtonText).
		Background(kitButtonBg).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(kitButtonTextBlurred).
		Background(kitButtonBgBlurred).
		Padding(0, 1)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderForeground(kitBorderNormal)
	t.Blurred.Title = t.Blurred.Title.Foreground(kitTextMuted)

	t.Help.ShortKey = t.Help.ShortKey.Foreground(kitTextMuted)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(kitTextFaint)
	t.Help.ShortSeparator = t.Help.ShortSeparator.Foreground(kitTextFaint)
	t.Help.FullKey = t.Help.FullKey.Foreground(kitTextMuted)
	t.Help.FullDesc = t.Help.FullDesc.Foreground(kitTextFaint)
	t.Help.FullSeparator = t.Help.FullSeparator.Foreground(kitTextFaint)

	return t
}
