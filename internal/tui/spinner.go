package tui

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
)

// Spin runs fn while showing a spinner titled title. Outside an
// interactive terminal fn runs directly. Its signature matches
// workflow.Runner.
func Spin(ctx context.Context, title string, fn func(context.Context) error) error {
	if !IsInteractive() {
		return fn(ctx)
	}

	var fnErr error
	err := spinner.New().
		Type(spinner.MiniDot).
		Title(" " + title).
		Context(ctx).
		Action(func() { fnErr = fn(ctx) }).
		Run()
	if err != nil {
		return err
	}
	return fnErr
}
