package bump

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/indaco/recipekit/internal/clix"
	"github.com/indaco/recipekit/internal/config"
	"github.com/indaco/recipekit/internal/core"
	"github.com/indaco/recipekit/internal/manifest"
	"github.com/indaco/recipekit/internal/printer"
	"github.com/indaco/recipekit/internal/resolver"
	"github.com/urfave/cli/v3"
)

// Labels are the accepted bump arguments.
var Labels = []string{"major", "minor", "patch", "tweak"}

// Run returns the "bump" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "bump",
		Usage:     "Bump the VERSION of the project() declaration",
		UsageText: "recipekit bump <major|minor|patch|tweak> [--dry-run] [--sync]",
		ArgsUsage: "<major|minor|patch|tweak>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the new version without writing",
			},
			&cli.BoolFlag{
				Name:  "sync",
				Usage: "Also stamp the new version into the configured manifests",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runBumpCmd(ctx, cmd, cfg)
		},
	}
}

func runBumpCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	label := cmd.Args().First()
	if label == "" {
		return fmt.Errorf("missing bump label (%s)", strings.Join(Labels, ", "))
	}

	env, err := clix.NewEnv(cfg)
	if err != nil {
		return err
	}
	rec, err := env.Recipe(ctx)
	if err != nil {
		return err
	}

	path := filepath.Join(env.Config.Root, rec.ConfigurationFile())
	source := filepath.Base(path)
	data, err := env.FS.ReadFile(ctx, path)
	if err != nil {
		return &resolver.LoadError{Path: path, Err: err}
	}

	current, err := env.Resolver.Resolve(source, string(data))
	if err != nil {
		return err
	}
	sv, err := current.Semver()
	if err != nil {
		return err
	}
	next, err := sv.Bump(label)
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		fmt.Printf("%s -> %s\n", current, next)
		return nil
	}

	updated, err := resolver.RewriteVersion(source, string(data), next.String())
	if err != nil {
		return err
	}
	if err := env.FS.WriteFile(ctx, path, []byte(updated), core.PermPublicRead); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	env.Logger.Debug("bumped version", "from", current, "to", next, "file", path)
	printer.PrintSuccess(fmt.Sprintf("Bumped %s from %s to %s", source, current, next))

	if !cmd.Bool("sync") {
		return nil
	}

	results := manifest.NewSyncer(env.FS).Sync(ctx, env.Config.Targets(), next.String())
	for _, r := range results {
		if r.Status == manifest.StatusFailed {
			printer.PrintError(fmt.Sprintf("%s: %v", r.Target.Label(), r.Err))
		}
	}
	if manifest.HasFailures(results) {
		return fmt.Errorf("version bumped but %d manifest(s) failed to sync", manifest.CountStatus(results, manifest.StatusFailed))
	}
	printer.PrintFaint(fmt.Sprintf("Synced %d manifest(s)", manifest.CountStatus(results, manifest.StatusUpdated)))
	return nil
}
