package tui

import (
	"slices"
	"testing"
)

func TestValidThemes(t *testing.T) {
	expected := []string{"recipekit", "base", "base16", "catppuccin", "charm", "dracula"}
	if !slices.Equal(ValidThemes, expected) {
		t.Errorf("ValidThemes = %v, want %v", ValidThemes, expected)
	}
}

func TestIsValidTheme(t *testing.T) {
	tests := []struct {
		theme    string
		expected bool
	}{
		{"recipekit", true},
		{"base", true},
		{"base16", true},
		{"catppuccin", true},
		{"charm", true},
		{"dracula", true},
		{"", false},
		{"unknown", false},
		{"RECIPEKIT", false},
		{"Dracula", false},
	}

	for _, tt := range tests {
		t.Run(tt.theme, func(t *testing.T) {
			if got := IsValidTheme(tt.theme); got != tt.expected {
				t.Errorf("IsValidTheme(%q) = %v, want %v", tt.theme, got, tt.expected)
			}
		})
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ValidThemes {
		t.Run(name, func(t *testing.T) {
			if GetTheme(name) == nil {
				t.Errorf("GetTheme(%q) returned nil", name)
			}
		})
	}

	for _, name := range []string{"", "unknown"} {
		if GetTheme(name) != nil {
			t.Errorf("GetTheme(%q) should return nil", name)
		}
	}
}

func TestSetTheme(t *testing.T) {
	defer resetTheme()

	t.Run("valid theme is kept", func(t *testing.T) {
		SetTheme("dracula")
		if currentTheme == nil {
			t.Error("currentTheme should be set after SetTheme(\"dracula\")")
		}
	})

	t.Run("empty string resets to default", func(t *testing.T) {
		SetTheme("dracula")
		SetTheme("")
		if currentTheme != nil {
			t.Error("currentTheme should be nil after SetTheme(\"\")")
		}
		if currentThemeOrDefault() == nil {
			t.Error("currentThemeOrDefault() returned nil")
		}
	})

	t.Run("invalid theme falls back to default", func(t *testing.T) {
		SetTheme("invalid-theme")
		if currentTheme != nil {
			t.Error("invalid theme should not be stored")
		}
	})
}
