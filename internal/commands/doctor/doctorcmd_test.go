package doctor

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/indaco/recipekit/internal/clix"
	"github.com/indaco/recipekit/internal/config"
	"github.com/indaco/recipekit/internal/testutils"
	"github.com/urfave/cli/v3"
)

func init() {
	clix.LogOutput = io.Discard
}

func stubBuildTool(t *testing.T, version string, err error) {
	t.Helper()
	orig := buildToolVersion
	buildToolVersion = func(context.Context) (string, error) { return version, err }
	t.Cleanup(func() { buildToolVersion = orig })
}

func runDoctor(t *testing.T, cfg *config.Config, dir string) (string, error) {
	t.Helper()
	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(cfg)})
	var runErr error
	output, err := testutils.CaptureStdout(func() {
		runErr = testutils.RunCLITestAllowError(t, appCli, []string{"recipekit", "doctor"}, dir)
	})
	if err != nil {
		t.Fatalf("Failed to capture stdout: %v", err)
	}
	return output, runErr
}

func TestCLI_Doctor_Healthy(t *testing.T) {
	stubBuildTool(t, "cmake version 3.28.3", nil)
	tmpDir := t.TempDir()
	testutils.WriteTempFile(t, tmpDir, "CMakeLists.txt", testutils.ScopeGuardCMakeLists)
	testutils.WriteTempFile(t, tmpDir, "vcpkg.json", `{"version-string": "0.3.4"}`)

	cfg := config.Default()
	cfg.Sync = []config.SyncTarget{{Path: "vcpkg.json"}}

	output, err := runDoctor(t, cfg, tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, output)
	}
	for _, want := range []string{
		"CMakeLists.txt declares version 0.3.4",
		"cmake version 3.28.3",
		"vcpkg.json (json: version-string) is at 0.3.4",
		"using defaults",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestCLI_Doctor_Errors(t *testing.T) {
	tests := []struct {
		name     string
		cmake    string
		manifest string
		expected string
	}{
		{
			name:     "invalid version",
			cmake:    "project(x VERSION 1.2)",
			expected: `invalid version "1.2"`,
		},
		{
			name:     "manifest drift",
			cmake:    testutils.ScopeGuardCMakeLists,
			manifest: `{"version-string": "0.3.3"}`,
			expected: "has 0.3.3, expected 0.3.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubBuildTool(t, "", errors.New("executable file not found"))
			tmpDir := t.TempDir()
			testutils.WriteTempFile(t, tmpDir, "CMakeLists.txt", tt.cmake)
			cfg := config.Default()
			if tt.manifest != "" {
				testutils.WriteTempFile(t, tmpDir, "vcpkg.json", tt.manifest)
				cfg.Sync = []config.SyncTarget{{Path: "vcpkg.json"}}
			}

			output, err := runDoctor(t, cfg, tmpDir)
			if err == nil || !strings.Contains(err.Error(), "doctor found") {
				t.Fatalf("expected doctor error, got %v", err)
			}
			if !strings.Contains(output, tt.expected) {
				t.Errorf("output missing %q:\n%s", tt.expected, output)
			}
			if !strings.Contains(output, "cmake is not available") {
				t.Error("missing build tool should be reported as a warning")
			}
		})
	}
}

func TestCLI_Doctor_BadRecipe(t *testing.T) {
	stubBuildTool(t, "cmake version 3.28.3", nil)
	tmpDir := t.TempDir()
	testutils.WriteTempFile(t, tmpDir, "CMakeLists.txt", testutils.ScopeGuardCMakeLists)
	testutils.WriteTempFile(t, tmpDir, "recipe.yaml", "name: x\nunknown-key: 1\n")

	output, err := runDoctor(t, config.Default(), tmpDir)
	if err == nil {
		t.Fatal("expected error for invalid recipe")
	}
	if !strings.Contains(output, "[Recipe]") {
		t.Errorf("output missing recipe failure:\n%s", output)
	}
	if !strings.Contains(output, "cmake version 3.28.3") {
		t.Errorf("build tool should be checked even when the recipe fails:\n%s", output)
	}
}
