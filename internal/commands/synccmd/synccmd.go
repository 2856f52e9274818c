package synccmd

import (
	"context"
	"fmt"

	"github.com/indaco/recipekit/internal/clix"
	"github.com/indaco/recipekit/internal/config"
	"github.com/indaco/recipekit/internal/manifest"
	"github.com/indaco/recipekit/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "sync" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Stamp the resolved version into the manifests listed in .recipekit.yaml",
		UsageText: `recipekit sync [--check]

Reads the project version from CMakeLists.txt and writes it into every
file of the "sync" section. With --check nothing is written and the
command fails when a manifest is out of date.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Report drift without writing",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSyncCmd(ctx, cmd, cfg)
		},
	}
}

func runSyncCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	env, err := clix.NewEnv(cfg)
	if err != nil {
		return err
	}

	targets := env.Config.Targets()
	if len(targets) == 0 {
		printer.PrintFaint("No sync targets configured in " + config.FileName)
		return nil
	}

	rec, err := env.Recipe(ctx)
	if err != nil {
		return err
	}
	v, err := env.Resolve(ctx, rec)
	if err != nil {
		return err
	}

	syncer := manifest.NewSyncer(env.FS)
	check := cmd.Bool("check")

	var results []manifest.Result
	if check {
		results = syncer.Check(ctx, targets, v.String())
	} else {
		results = syncer.Sync(ctx, targets, v.String())
	}
	printResults(results)

	failed := manifest.CountStatus(results, manifest.StatusFailed)
	drift := manifest.CountStatus(results, manifest.StatusDrift)
	switch {
	case failed > 0:
		return fmt.Errorf("%d of %d manifest(s) could not be synced", failed, len(results))
	case check && drift > 0:
		return fmt.Errorf("%d manifest(s) out of sync with %s", drift, v)
	}

	if check {
		printer.PrintSuccess(fmt.Sprintf("All manifests at %s", v))
	} else {
		printer.PrintSuccess(fmt.Sprintf("Synced %d manifest(s) to %s", manifest.CountStatus(results, manifest.StatusUpdated), v))
	}
	return nil
}

func printResults(results []manifest.Result) {
	for _, r := range results {
		label := r.Target.Label()
		switch r.Status {
		case manifest.StatusUpdated:
			prev := r.Previous
			if prev == "" {
				prev = "none"
			}
			fmt.Printf("%s %s %s\n", printer.Success("✓"), label, printer.Faint(fmt.Sprintf("%s -> %s", prev, r.Version)))
		case manifest.StatusUnchanged:
			fmt.Printf("%s %s %s\n", printer.Success("✓"), label, printer.Faint(r.Version))
		case manifest.StatusDrift:
			fmt.Printf("%s %s %s\n", printer.Warning("⚠"), label, fmt.Sprintf("found %s, expected %s", r.Previous, r.Version))
		case manifest.StatusFailed:
			fmt.Printf("%s %s %s\n", printer.Error("✗"), label, printer.Error(r.Err.Error()))
		}
	}
}
