package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted by user")

// keyMap is huh's default key map with esc added to quit.
func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	)
	return km
}

func runForm(ctx context.Context, fields ...huh.Field) error {
	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(currentThemeOrDefault()).
		WithKeyMap(keyMap())
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// Confirm shows a yes/no prompt.
func Confirm(ctx context.Context, title, description string, def bool) (bool, error) {
	value := def
	err := runForm(ctx, huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&value))
	return value, err
}

// Input shows a single line text prompt prefilled with def. validate may
// be nil.
func Input(ctx context.Context, title, description, def string, validate func(string) error) (string, error) {
	value := def
	field := huh.NewInput().
		Title(title).
		Description(description).
		Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}
	err := runForm(ctx, field)
	return value, err
}

// Select shows a single choice prompt.
func Select(ctx context.Context, title, description string, options []huh.Option[string]) (string, error) {
	var value string
	err := runForm(ctx, huh.NewSelect[string]().
		Title(title).
		Description(description).
		Options(options...).
		Value(&value))
	return value, err
}
