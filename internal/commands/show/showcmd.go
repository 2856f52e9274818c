package show

import (
	"context"
	"fmt"

	"github.com/indaco/recipekit/internal/clix"
	"github.com/indaco/recipekit/internal/config"
	"github.com/indaco/recipekit/internal/workflow"
	"github.com/urfave/cli/v3"
)

// Run returns the "show" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Aliases:   []string{"plan"},
		Usage:     "Show the packaging plan for the resolved version",
		UsageText: "recipekit show [--format text|json|table] [-o name=value]...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, table",
				Value:   "text",
			},
			&cli.StringSliceFlag{
				Name:    "option",
				Aliases: []string{"o"},
				Usage:   "Override a recipe option (name=value)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShowCmd(ctx, cmd, cfg)
		},
	}
}

func runShowCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	env, err := clix.NewEnv(cfg)
	if err != nil {
		return err
	}

	rec, err := env.Recipe(ctx)
	if err != nil {
		return err
	}
	rec, err = clix.WithOptionOverrides(rec, cmd.StringSlice("option"))
	if err != nil {
		return err
	}

	v, err := env.Resolve(ctx, rec)
	if err != nil {
		return err
	}

	plan := workflow.NewPlan(rec, v, env.Layout())
	out, err := NewFormatter(ParseOutputFormat(cmd.String("format"))).FormatPlan(rec, plan)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
