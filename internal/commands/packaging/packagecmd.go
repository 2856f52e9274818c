package packaging

import (
	"context"
	"fmt"
	"time"

	"github.com/indaco/recipekit/internal/clix"
	"github.com/indaco/recipekit/internal/cmake"
	"github.com/indaco/recipekit/internal/config"
	"github.com/indaco/recipekit/internal/printer"
	"github.com/indaco/recipekit/internal/tui"
	"github.com/indaco/recipekit/internal/workflow"
	"github.com/urfave/cli/v3"
)

// newBuildTool is swapped in tests.
var newBuildTool = func(binary string) workflow.BuildTool {
	return cmake.New(binary)
}

// Run returns the "package" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "package",
		Aliases:   []string{"pkg"},
		Usage:     "Resolve the version, build and install the package",
		UsageText: "recipekit package [--build-dir dir] [--package-dir dir] [--dry-run] [-o name=value]...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "build-dir",
				Usage: "Build directory (relative to the root)",
			},
			&cli.StringFlag{
				Name:  "package-dir",
				Usage: "Install prefix of the package (relative to the root)",
			},
			&cli.StringFlag{
				Name:  "generator",
				Usage: "CMake generator",
			},
			&cli.StringFlag{
				Name:  "build-type",
				Usage: "CMake build type",
			},
			&cli.StringFlag{
				Name:  "cmake",
				Usage: "cmake executable",
				Value: cmake.Binary,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show the steps without running the build tool",
			},
			&cli.StringSliceFlag{
				Name:    "option",
				Aliases: []string{"o"},
				Usage:   "Override a recipe option (name=value)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runPackageCmd(ctx, cmd, cfg)
		},
	}
}

func runPackageCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
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

	layout := env.Layout()
	if v := cmd.String("build-dir"); v != "" {
		layout.BuildDir = v
	}
	if v := cmd.String("package-dir"); v != "" {
		layout.PackageDir = v
	}
	if v := cmd.String("generator"); v != "" {
		layout.Generator = v
	}
	if v := cmd.String("build-type"); v != "" {
		layout.BuildType = v
	}

	dryRun := cmd.Bool("dry-run")
	var tool workflow.BuildTool
	if !dryRun {
		tool = newBuildTool(cmd.String("cmake"))
	}

	wf := workflow.New(env.FS, rec, env.Resolver, tool, layout,
		workflow.WithDryRun(dryRun),
		workflow.WithLogger(env.Logger),
		workflow.WithRunner(tui.Spin),
	)

	report, err := wf.Run(ctx)
	printReport(report, dryRun)
	return err
}

func printReport(report *workflow.Report, dryRun bool) {
	for _, s := range report.Steps {
		label := fmt.Sprintf("%-13s", s.Step)
		switch s.Status {
		case workflow.StatusDone:
			line := fmt.Sprintf("%s %s %s", printer.Success("✓"), label, s.Detail)
			if s.Duration >= time.Second {
				line += printer.Faint(fmt.Sprintf(" (%s)", s.Duration.Round(time.Second)))
			}
			fmt.Println(line)
		case workflow.StatusSkipped:
			fmt.Printf("%s %s %s\n", printer.Faint("-"), label, printer.Faint(s.Detail))
		case workflow.StatusFailed:
			fmt.Printf("%s %s %s\n", printer.Error("✗"), label, printer.Error(s.Err.Error()))
		}
	}

	if report.Plan == nil || report.Failed() {
		return
	}
	if dryRun {
		printer.PrintFaint(fmt.Sprintf("Dry run: %s would be installed into %s", report.Plan.Reference, report.Plan.PackageDir))
		return
	}
	printer.PrintSuccess(fmt.Sprintf("Packaged %s into %s", report.Plan.Reference, report.Plan.PackageDir))
}
