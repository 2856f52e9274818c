package doctor

import (
	"context"
	"fmt"

	"github.com/indaco/recipekit/internal/clix"
	"github.com/indaco/recipekit/internal/cmake"
	"github.com/indaco/recipekit/internal/config"
	"github.com/indaco/recipekit/internal/manifest"
	"github.com/indaco/recipekit/internal/printer"
	"github.com/indaco/recipekit/internal/workflow"
	"github.com/urfave/cli/v3"
)

// buildToolVersion is swapped in tests.
var buildToolVersion = func(ctx context.Context) (string, error) {
	return cmake.New("").Version(ctx)
}

// Run returns the "doctor" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Aliases:   []string{"check"},
		Usage:     "Check configuration, recipe, project version and manifests",
		UsageText: "recipekit doctor",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctorCmd(ctx, cfg)
		},
	}
}

func runDoctorCmd(ctx context.Context, cfg *config.Config) error {
	env, err := clix.NewEnv(cfg)
	if err != nil {
		return err
	}

	results, err := config.NewValidator(env.FS, env.Config, config.FileName).Validate(ctx)
	if err != nil {
		return err
	}
	results = append(results, checkProject(ctx, env)...)

	printResults(results)

	if config.HasErrors(results) {
		return fmt.Errorf("doctor found %d error(s)", config.ErrorCount(results))
	}
	return nil
}

func pass(category, msg string) config.ValidationResult {
	return config.ValidationResult{Category: category, Passed: true, Message: msg}
}

func fail(category, msg string) config.ValidationResult {
	return config.ValidationResult{Category: category, Message: msg}
}

func warn(category, msg string) config.ValidationResult {
	return config.ValidationResult{Category: category, Passed: true, Warning: true, Message: msg}
}

// checkProject validates the build tool, the recipe, the declared version
// and the manifests that should carry it. Pin and manifest checks need a
// resolved version; the build tool is checked regardless.
func checkProject(ctx context.Context, env *clix.Env) []config.ValidationResult {
	var out []config.ValidationResult

	if tv, err := buildToolVersion(ctx); err != nil {
		out = append(out, warn("Build Tool", "cmake is not available: "+err.Error()))
	} else {
		out = append(out, pass("Build Tool", tv))
	}

	rec, err := env.Recipe(ctx)
	if err != nil {
		return append(out, fail("Recipe", err.Error()))
	}
	out = append(out, pass("Recipe", fmt.Sprintf("Recipe %q loaded", rec.Name())))

	v, err := env.Resolve(ctx, rec)
	if err != nil {
		return append(out, fail("Version", err.Error()))
	}
	out = append(out, pass("Version", fmt.Sprintf("%s declares version %s", rec.ConfigurationFile(), v)))

	if err := workflow.CheckPinned(rec, v); err != nil {
		out = append(out, warn("Version", err.Error()))
	}

	for _, r := range manifest.NewSyncer(env.FS).Check(ctx, env.Config.Targets(), v.String()) {
		switch r.Status {
		case manifest.StatusUnchanged:
			out = append(out, pass("Manifests", r.Target.Label()+" is at "+r.Version))
		case manifest.StatusDrift:
			out = append(out, fail("Manifests", fmt.Sprintf("%s has %s, expected %s (run 'recipekit sync')", r.Target.Label(), r.Previous, r.Version)))
		case manifest.StatusFailed:
			out = append(out, warn("Manifests", fmt.Sprintf("%s: %v", r.Target.Label(), r.Err)))
		}
	}
	return out
}

func printResults(results []config.ValidationResult) {
	for _, r := range results {
		category := printer.Faint(fmt.Sprintf("[%s]", r.Category))
		switch {
		case r.Warning:
			fmt.Printf("%s %s %s\n", printer.Warning("⚠"), category, r.Message)
		case r.Passed:
			fmt.Printf("%s %s %s\n", printer.Success("✓"), category, r.Message)
		default:
			fmt.Printf("%s %s %s\n", printer.Error("✗"), category, r.Message)
		}
	}

	fmt.Println()
	errs, warns := config.ErrorCount(results), config.WarningCount(results)
	switch {
	case errs > 0:
		printer.PrintError(fmt.Sprintf("%d error(s), %d warning(s)", errs, warns))
	case warns > 0:
		printer.PrintWarning(fmt.Sprintf("No errors, %d warning(s)", warns))
	default:
		printer.PrintSuccess("Everything looks good")
	}
}
