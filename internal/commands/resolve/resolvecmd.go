package resolve

import (
	"context"
	"fmt"

	"github.com/indaco/recipekit/internal/clix"
	"github.com/indaco/recipekit/internal/config"
	"github.com/indaco/recipekit/internal/printer"
	"github.com/indaco/recipekit/internal/workflow"
	"github.com/urfave/cli/v3"
)

// Run returns the "resolve" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Aliases:   []string{"version"},
		Usage:     "Print the project version declared in CMakeLists.txt",
		UsageText: "recipekit resolve [--quiet]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Print only the version",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runResolveCmd(ctx, cmd, cfg)
		},
	}
}

// runResolveCmd resolves and prints the project version.
func runResolveCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	env, err := clix.NewEnv(cfg)
	if err != nil {
		return err
	}

	rec, err := env.Recipe(ctx)
	if err != nil {
		return err
	}

	v, err := env.Resolve(ctx, rec)
	if err != nil {
		return err
	}

	if cmd.Bool("quiet") {
		fmt.Println(v)
		return nil
	}

	printer.PrintSuccess(fmt.Sprintf("%s %s", rec.Name(), v))
	printer.PrintFaint(fmt.Sprintf("from %s (%s match)", rec.ConfigurationFile(), env.Resolver.Mode()))
	if err := workflow.CheckPinned(rec, v); err != nil {
		printer.PrintWarning(err.Error())
	}
	return nil
}
