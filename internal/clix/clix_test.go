package clix

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/indaco/recipekit/internal/config"
	"github.com/indaco/recipekit/internal/core"
	"github.com/indaco/recipekit/internal/resolver"
	"github.com/indaco/recipekit/internal/testutils"
)

func init() {
	LogOutput = io.Discard
}

func TestNewEnv_Defaults(t *testing.T) {
	env, err := NewEnv(nil)
	if err != nil {
		t.Fatal(err)
	}
	if env.Config.Root != config.DefaultRoot {
		t.Errorf("Root = %q", env.Config.Root)
	}
	if env.Resolver.Mode() != resolver.ModeStrict {
		t.Errorf("Mode = %q, want strict", env.Resolver.Mode())
	}
}

func TestNewEnv_LooseAndInvalidLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Match = "loose"
	env, err := NewEnv(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if env.Resolver.Mode() != resolver.ModeLoose {
		t.Errorf("Mode = %q, want loose", env.Resolver.Mode())
	}

	cfg.LogLevel = "chatty"
	if _, err := NewEnv(cfg); err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestEnv_RecipeAndResolve(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/proj/CMakeLists.txt", []byte(testutils.ScopeGuardCMakeLists))
	fs.SetFile("/proj/recipe.yaml", []byte("name: guard\n"))

	cfg := config.Default()
	cfg.Root = "/proj"
	env, err := NewEnvWithFS(cfg, fs)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	rec, err := env.Recipe(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Name() != "guard" {
		t.Errorf("Name = %q, want guard", rec.Name())
	}

	v, err := env.Resolve(ctx, rec)
	if err != nil {
		t.Fatal(err)
	}
	if v != "0.3.4" {
		t.Errorf("version = %q", v)
	}
}

func TestEnv_ResolveMissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Root = "/empty"
	env, err := NewEnvWithFS(cfg, core.NewMockFileSystem())
	if err != nil {
		t.Fatal(err)
	}
	rec, _ := env.Recipe(context.Background())

	_, err = env.Resolve(context.Background(), rec)
	var le *resolver.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if le.Path != filepath.Join("/empty", "CMakeLists.txt") {
		t.Errorf("Path = %q", le.Path)
	}
}

func TestEnv_Layout(t *testing.T) {
	cfg := config.Default()
	cfg.Root = "/proj"
	cfg.Build.Generator = "Ninja"
	env, _ := NewEnvWithFS(cfg, core.NewMockFileSystem())

	l := env.Layout()
	if l.Root != "/proj" || l.BuildDir != "build" || l.PackageDir != "package" || l.Generator != "Ninja" || l.BuildType != "Release" {
		t.Errorf("Layout = %+v", l)
	}
}

func TestWithOptionOverrides(t *testing.T) {
	env, _ := NewEnvWithFS(config.Default(), core.NewMockFileSystem())
	rec, _ := env.Recipe(context.Background())

	same, err := WithOptionOverrides(rec, nil)
	if err != nil || same != rec {
		t.Fatalf("no overrides should return the same recipe, got %v", err)
	}

	got, err := WithOptionOverrides(rec, []string{"unittest=OFF", "enable_compat_header=yes"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Options().Unittest || !got.Options().EnableCompatHeader {
		t.Errorf("Options = %+v", got.Options())
	}
	if !rec.Options().Unittest {
		t.Error("original recipe was mutated")
	}

	if _, err := WithOptionOverrides(rec, []string{"shared=ON"}); err == nil {
		t.Error("expected error for unknown option")
	}
}
