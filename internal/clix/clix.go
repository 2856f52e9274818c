// Package clix builds the shared execution environment of recipekit
// commands from the loaded configuration.
package clix

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/indaco/recipekit/internal/config"
	"github.com/indaco/recipekit/internal/core"
	"github.com/indaco/recipekit/internal/logging"
	"github.com/indaco/recipekit/internal/recipe"
	"github.com/indaco/recipekit/internal/resolver"
	"github.com/indaco/recipekit/internal/workflow"
)

// LogOutput receives diagnostic logs. Tests may replace it.
var LogOutput io.Writer = os.Stderr

// Env bundles the collaborators a command needs.
type Env struct {
	FS       core.FileSystem
	Config   *config.Config
	Logger   *log.Logger
	Resolver *resolver.Resolver
}

// NewEnv builds an Env on the OS filesystem. A nil cfg means
// config.Default.
func NewEnv(cfg *config.Config) (*Env, error) {
	return NewEnvWithFS(cfg, core.NewOSFileSystem())
}

// NewEnvWithFS is NewEnv with an explicit filesystem.
func NewEnvWithFS(cfg *config.Config, fs core.FileSystem) (*Env, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	logger, err := logging.New(LogOutput, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	res := resolver.New(
		resolver.WithMode(resolver.ParseMode(cfg.Match)),
		resolver.WithLogger(logger),
	)

	return &Env{FS: fs, Config: cfg, Logger: logger, Resolver: res}, nil
}

// Recipe loads the configured recipe, the one found in the root, or the
// default record.
func (e *Env) Recipe(ctx context.Context) (*recipe.Recipe, error) {
	return recipe.LoadOrDefault(ctx, e.FS, e.Config.Root, e.Config.Recipe)
}

// Resolve reads the recipe's configuration file under the root and
// returns its project version.
func (e *Env) Resolve(ctx context.Context, rec *recipe.Recipe) (resolver.VersionString, error) {
	return e.Resolver.ResolveFile(ctx, e.FS, e.Config.Root, rec.ConfigurationFile())
}

// Layout returns the workflow directories from the build section.
func (e *Env) Layout() workflow.Layout {
	l := workflow.Layout{Root: e.Config.Root}
	if b := e.Config.Build; b != nil {
		l.BuildDir = b.Dir
		l.PackageDir = b.PackageDir
		l.Generator = b.Generator
		l.BuildType = b.BuildType
	}
	return l
}

// WithOptionOverrides applies "name=value" overrides from the command
// line to rec's options.
func WithOptionOverrides(rec *recipe.Recipe, overrides []string) (*recipe.Recipe, error) {
	if len(overrides) == 0 {
		return rec, nil
	}
	opts, err := rec.Options().With(overrides)
	if err != nil {
		return nil, err
	}
	return rec.WithOptions(opts), nil
}
