package initialize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/charmbracelet/huh"
	"github.com/indaco/recipekit/internal/clix"
	"github.com/indaco/recipekit/internal/config"
	"github.com/indaco/recipekit/internal/core"
	"github.com/indaco/recipekit/internal/printer"
	"github.com/indaco/recipekit/internal/recipe"
	"github.com/indaco/recipekit/internal/resolver"
	"github.com/indaco/recipekit/internal/tui"
	"github.com/urfave/cli/v3"
)

// Swapped in tests.
var (
	newPrompter   = NewPrompter
	isInteractive = tui.IsInteractive
)

// knownManifests are offered as sync targets when present in the root.
var knownManifests = []string{"vcpkg.json", "conandata.yml", "conandata.yaml", "pyproject.toml"}

// Run returns the "init" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a recipe file for the project",
		UsageText: "recipekit init [--template name] [--output recipe.yaml] [--yes] [--force] [--config]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "Option preset: " + strings.Join(TemplateNames(), ", "),
				Value:   DefaultTemplate,
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Recipe file to write (.yaml, .yml or .toml)",
				Value: recipe.FileNames[0],
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Package name (defaults to the CMake project name)",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept defaults without prompting",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite existing files",
			},
			&cli.BoolFlag{
				Name:  "config",
				Usage: "Also write " + config.FileName,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInitCmd(ctx, cmd, cfg)
		},
	}
}

// answers collects the values that end up in the recipe.
type answers struct {
	Name        string
	Description string
	License     string
	Options     recipe.Options
}

func runInitCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	env, err := clix.NewEnv(cfg)
	if err != nil {
		return err
	}

	tmpl, err := GetTemplate(cmd.String("template"))
	if err != nil {
		return err
	}

	out := cmd.String("output")
	if !filepath.IsAbs(out) {
		out = filepath.Join(env.Config.Root, out)
	}
	force := cmd.Bool("force")
	if !force && exists(ctx, env.FS, out) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", out)
	}

	def := recipe.Default()
	ans := answers{
		Name:        cmd.String("name"),
		Description: def.Description(),
		License:     def.License(),
		Options:     tmpl.Options,
	}
	if ans.Name == "" {
		ans.Name = suggestName(ctx, env, def)
	}

	if !cmd.Bool("yes") && isInteractive() {
		ans, err = promptAnswers(ctx, newPrompter(), ans)
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				printer.PrintFaint("Init cancelled.")
				return nil
			}
			return err
		}
	}

	rec, err := recipe.NewBuilder().
		Name(ans.Name).
		Description(ans.Description).
		License(ans.License).
		Options(ans.Options).
		Build()
	if err != nil {
		return err
	}

	data, err := recipe.Marshal(rec, out)
	if err != nil {
		return fmt.Errorf("failed to encode recipe: %w", err)
	}
	if err := env.FS.WriteFile(ctx, out, data, core.PermPublicRead); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	printer.PrintSuccess("Created " + out)

	if cmd.Bool("config") {
		return writeConfig(ctx, env, force)
	}
	return nil
}

func exists(ctx context.Context, fs core.FileSystem, path string) bool {
	_, err := fs.Stat(ctx, path)
	return err == nil
}

// suggestName derives a package name from the CMake project name, falling
// back to the default recipe name.
func suggestName(ctx context.Context, env *clix.Env, def *recipe.Recipe) string {
	data, err := env.FS.ReadFile(ctx, filepath.Join(env.Config.Root, def.ConfigurationFile()))
	if err != nil {
		return def.Name()
	}
	decl, err := resolver.ParseDeclaration(string(data))
	if err != nil || decl.Name == "" {
		return def.Name()
	}
	return kebab(decl.Name)
}

// kebab converts a CMake project name such as "ScopeGuard" or
// "unique_resource" to "scope-guard" / "unique-resource".
func kebab(s string) string {
	var sb strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == ' ':
			sb.WriteRune('-')
		case unicode.IsUpper(r):
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				sb.WriteRune('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func promptAnswers(ctx context.Context, p Prompter, ans answers) (answers, error) {
	var err error
	notEmpty := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("name is required")
		}
		return nil
	}

	if ans.Name, err = p.Input(ctx, "Package name", "Used in the name/version reference", ans.Name, notEmpty); err != nil {
		return ans, err
	}
	if ans.Description, err = p.Input(ctx, "Description", "", ans.Description, nil); err != nil {
		return ans, err
	}
	licenses := []huh.Option[string]{
		huh.NewOption("MIT", "MIT"),
		huh.NewOption("Apache-2.0", "Apache-2.0"),
		huh.NewOption("BSL-1.0", "BSL-1.0"),
		huh.NewOption("BSD-3-Clause", "BSD-3-Clause"),
	}
	if ans.License, err = p.Select(ctx, "License", "", licenses); err != nil {
		return ans, err
	}
	if ans.Options.Unittest, err = p.Confirm(ctx, "Build unit tests?", "Adds catch2 and trompeloeil as test requirements", ans.Options.Unittest); err != nil {
		return ans, err
	}
	if ans.Options.EnableCompatHeader, err = p.Confirm(ctx, "Enable the compatibility header?", "Installs <scope> next to the library headers", ans.Options.EnableCompatHeader); err != nil {
		return ans, err
	}
	return ans, nil
}

// writeConfig writes a default .recipekit.yaml, listing the manifests
// found in the root as sync targets.
func writeConfig(ctx context.Context, env *clix.Env, force bool) error {
	if !force {
		if _, err := os.Stat(config.FileName); err == nil {
			printer.PrintWarning(config.FileName + " already exists, left untouched")
			return nil
		}
	}

	cfg := config.Default()
	cfg.Root = env.Config.Root
	cfg.Theme = config.DefaultTheme
	for _, name := range knownManifests {
		if exists(ctx, env.FS, filepath.Join(env.Config.Root, name)) {
			cfg.Sync = append(cfg.Sync, config.SyncTarget{Path: name})
		}
	}

	if err := config.SaveConfigFn(cfg); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.FileName, err)
	}
	printer.PrintSuccess("Created " + config.FileName)
	return nil
}
