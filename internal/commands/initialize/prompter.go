package initialize

import (
	"context"

	"github.com/charmbracelet/huh"
	"github.com/indaco/recipekit/internal/tui"
)

// Prompter abstracts interactive prompts for testability.
type Prompter interface {
	Input(ctx context.Context, title, description, def string, validate func(string) error) (string, error)
	Confirm(ctx context.Context, title, description string, def bool) (bool, error)
	Select(ctx context.Context, title, description string, options []huh.Option[string]) (string, error)
}

// TUIPrompter implements Prompter using the tui package.
type TUIPrompter struct{}

// NewPrompter creates a new TUIPrompter.
func NewPrompter() Prompter {
	return &TUIPrompter{}
}

func (p *TUIPrompter) Input(ctx context.Context, title, description, def string, validate func(string) error) (string, error) {
	return tui.Input(ctx, title, description, def, validate)
}

func (p *TUIPrompter) Confirm(ctx context.Context, title, description string, def bool) (bool, error) {
	return tui.Confirm(ctx, title, description, def)
}

func (p *TUIPrompter) Select(ctx context.Context, title, description string, options []huh.Option[string]) (string, error) {
	return tui.Select(ctx, title, description, options)
}
