package cli

import (
	"context"
	"fmt"

	"github.com/indaco/recipekit/internal/commands/bump"
	"github.com/indaco/recipekit/internal/commands/doctor"
	"github.com/indaco/recipekit/internal/commands/initialize"
	"github.com/indaco/recipekit/internal/commands/packaging"
	"github.com/indaco/recipekit/internal/commands/resolve"
	"github.com/indaco/recipekit/internal/commands/show"
	"github.com/indaco/recipekit/internal/commands/synccmd"
	"github.com/indaco/recipekit/internal/config"
	"github.com/indaco/recipekit/internal/printer"
	"github.com/indaco/recipekit/internal/resolver"
	"github.com/indaco/recipekit/internal/tui"
	"github.com/indaco/recipekit/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// New builds and returns the root CLI command. Global flags are applied
// to cfg before any subcommand runs.
func New(cfg *config.Config) *urfavecli.Command {
	var noColor bool

	return &urfavecli.Command{
		Name:                  "recipekit",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Package a CMake header-only library from its declared project version",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "root",
				Aliases:     []string{"r"},
				Usage:       "Recipe root directory holding CMakeLists.txt",
				Value:       cfg.Root,
				DefaultText: config.DefaultRoot,
			},
			&urfavecli.StringFlag{
				Name:  "recipe",
				Usage: "Recipe file (default: recipe.yaml, recipe.yml or recipe.toml in the root)",
				Value: cfg.Recipe,
			},
			&urfavecli.BoolFlag{
				Name:  "loose",
				Usage: "Accept version tokens that merely contain MAJOR.MINOR.PATCH",
			},
			&urfavecli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
				Value: cfg.LogLevel,
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColor,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColor)
			applyGlobalFlags(cmd, cfg)
			tui.SetTheme(cfg.GetTheme())
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			resolve.Run(cfg),
			show.Run(cfg),
			packaging.Run(cfg),
			synccmd.Run(cfg),
			bump.Run(cfg),
			initialize.Run(cfg),
			doctor.Run(cfg),
		},
	}
}

func applyGlobalFlags(cmd *urfavecli.Command, cfg *config.Config) {
	if cmd.IsSet("root") {
		cfg.Root = cmd.String("root")
	}
	if cmd.IsSet("recipe") {
		cfg.Recipe = cmd.String("recipe")
	}
	if cmd.Bool("loose") {
		cfg.Match = string(resolver.ModeLoose)
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
}
