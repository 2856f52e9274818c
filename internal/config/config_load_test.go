package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/indaco/recipekit/internal/manifest"
	"github.com/indaco/recipekit/internal/testutils"
)

/* ------------------------------------------------------------------------- */
/* LOAD CONFIG                                                               */
/* ------------------------------------------------------------------------- */

func TestLoadConfig(t *testing.T) {
	t.Run("env overrides root without file", func(t *testing.T) {
		t.Setenv(EnvRoot, "/tmp/project")
		tmpDir := t.TempDir()
		runInTempDir(t, filepath.Join(tmpDir, "dummy"), func() {
			cfg, err := LoadConfigFn()
			checkError(t, err, false)
			checkConfigNil(t, cfg, false)
			checkConfigRoot(t, cfg, "/tmp/project")
			if cfg.Match != DefaultMatch {
				t.Errorf("expected default match, got %q", cfg.Match)
			}
		})
	})

	t.Run("env with path traversal rejected", func(t *testing.T) {
		t.Setenv(EnvRoot, "../../../etc")
		tmpDir := t.TempDir()
		runInTempDir(t, filepath.Join(tmpDir, "dummy"), func() {
			cfg, err := LoadConfigFn()
			checkError(t, err, true)
			checkConfigNil(t, cfg, true)
			if err != nil && err.Error() != "invalid RECIPEKIT_ROOT: path traversal not allowed, use absolute path instead" {
				t.Errorf("unexpected error message: %v", err)
			}
		})
	})

	t.Run("env overrides file root", func(t *testing.T) {
		t.Setenv(EnvRoot, "/abs/root")
		tmpPath := testutils.WriteTempConfig(t, "root: ./from-file\nmatch: loose\n")
		runInTempDir(t, tmpPath, func() {
			cfg, err := LoadConfigFn()
			checkError(t, err, false)
			checkConfigRoot(t, cfg, "/abs/root")
			if cfg.Match != "loose" {
				t.Errorf("file settings lost, match = %q", cfg.Match)
			}
		})
	})

	t.Run("valid yaml file", func(t *testing.T) {
		content := `root: ./cpp
recipe: ./cpp/recipe.yaml
log-level: debug
build:
  dir: out
  generator: Ninja
sync:
  - path: vcpkg.json
  - path: include/version.h
    format: regex
    pattern: 'SG_VERSION "([^"]+)"'
`
		tmpPath := testutils.WriteTempConfig(t, content)
		runInTempDir(t, tmpPath, func() {
			cfg, err := LoadConfigFn()
			checkError(t, err, false)
			checkConfigNil(t, cfg, false)
			checkConfigRoot(t, cfg, "./cpp")
			if cfg.LogLevel != "debug" {
				t.Errorf("LogLevel = %q", cfg.LogLevel)
			}
			if cfg.Build.Dir != "out" || cfg.Build.Generator != "Ninja" {
				t.Errorf("Build = %+v", cfg.Build)
			}
			if cfg.Build.PackageDir != DefaultPackageDir || cfg.Build.BuildType != DefaultBuildType {
				t.Errorf("build defaults not applied: %+v", cfg.Build)
			}

			targets := cfg.Targets()
			if len(targets) != 2 {
				t.Fatalf("expected 2 targets, got %d", len(targets))
			}
			want0 := manifest.Target{Path: filepath.Join("cpp", "vcpkg.json"), Format: manifest.FormatJSON, Field: "version-string"}
			if targets[0] != want0 {
				t.Errorf("targets[0] = %+v, want %+v", targets[0], want0)
			}
			if targets[1].Format != manifest.FormatRegex || targets[1].Pattern == "" {
				t.Errorf("targets[1] = %+v", targets[1])
			}
		})
	})

	t.Run("missing file fallback", func(t *testing.T) {
		tmpDir := t.TempDir()
		runInTempDir(t, filepath.Join(tmpDir, "dummy"), func() {
			cfg, err := LoadConfigFn()
			checkError(t, err, false)
			checkConfigNil(t, cfg, true)
		})
	})

	t.Run("empty config falls back to defaults", func(t *testing.T) {
		tmpPath := testutils.WriteTempConfig(t, "{}\n")
		runInTempDir(t, tmpPath, func() {
			cfg, err := LoadConfigFn()
			checkError(t, err, false)
			checkConfigNil(t, cfg, false)
			checkConfigRoot(t, cfg, DefaultRoot)
			if cfg.LogLevel != DefaultLogLevel {
				t.Errorf("LogLevel = %q", cfg.LogLevel)
			}
		})
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		tmpPath := testutils.WriteTempConfig(t, "root: .\npath: .version\n")
		runInTempDir(t, tmpPath, func() {
			cfg, err := LoadConfigFn()
			checkError(t, err, true)
			checkConfigNil(t, cfg, true)
		})
	})

	t.Run("invalid yaml (bad format)", func(t *testing.T) {
		tmpPath := testutils.WriteTempConfig(t, "not_yaml::: true")
		runInTempDir(t, tmpPath, func() {
			cfg, err := LoadConfigFn()
			checkError(t, err, true)
			checkConfigNil(t, cfg, true)
		})
	})

	t.Run("read file error (directory instead of file)", func(t *testing.T) {
		tmpDir := t.TempDir()
		runInTempDir(t, filepath.Join(tmpDir, "dummy"), func() {
			if err := os.Mkdir(FileName, 0755); err != nil {
				t.Fatal(err)
			}
			cfg, err := LoadConfigFn()
			checkError(t, err, true)
			checkConfigNil(t, cfg, true)
		})
	})
}

func TestGetTheme(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		expected string
	}{
		{"empty theme returns default", "", "recipekit"},
		{"custom theme is preserved", "dracula", "dracula"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Theme: tt.theme}
			if got := cfg.GetTheme(); got != tt.expected {
				t.Errorf("GetTheme() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTargets_AbsolutePathKept(t *testing.T) {
	cfg := Default()
	cfg.Root = "/proj"
	cfg.Sync = []SyncTarget{
		{Path: "/elsewhere/VERSION"},
		{Path: "conandata.yml", Field: "sources.version"},
	}

	targets := cfg.Targets()
	if targets[0].Path != "/elsewhere/VERSION" || targets[0].Format != manifest.FormatRaw {
		t.Errorf("targets[0] = %+v", targets[0])
	}
	if targets[1].Path != filepath.Join("/proj", "conandata.yml") || targets[1].Field != "sources.version" {
		t.Errorf("targets[1] = %+v", targets[1])
	}
}
