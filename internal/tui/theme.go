package tui

import (
	"github.com/charmbracelet/huh"
)

// currentTheme holds the configured theme. nil means the recipekit theme.
var currentTheme *huh.Theme

// SetTheme sets the current theme by name. Empty or unknown names fall
// back to the recipekit theme.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return recipekitTheme()
	}
	return currentTheme
}

// resetTheme restores the default theme. Used by tests.
func resetTheme() {
	currentTheme = nil
}
