package bump

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/recipekit/internal/clix"
	"github.com/indaco/recipekit/internal/config"
	"github.com/indaco/recipekit/internal/resolver"
	"github.com/indaco/recipekit/internal/testutils"
	"github.com/urfave/cli/v3"
)

func init() {
	clix.LogOutput = io.Discard
}

func TestCLI_Bump(t *testing.T) {
	tests := []struct {
		label    string
		initial  string
		expected string
	}{
		{"major", "0.3.4", "1.0.0"},
		{"minor", "0.3.4", "0.4.0"},
		{"patch", "0.3.4", "0.3.5"},
		{"tweak", "0.3.4", "0.3.4.1"},
		{"patch", "1.2.3.9", "1.2.4.0"},
	}

	for _, tt := range tests {
		t.Run(tt.label+"/"+tt.initial, func(t *testing.T) {
			tmpDir := t.TempDir()
			content := "# top-level build\nproject(ScopeGuard VERSION " + tt.initial + " LANGUAGES CXX) # keep\n"
			path := testutils.WriteTempFile(t, tmpDir, "CMakeLists.txt", content)

			appCli := testutils.BuildCLIForTests([]*cli.Command{Run(config.Default())})
			_, _ = testutils.CaptureStdout(func() {
				testutils.RunCLITest(t, appCli, []string{"recipekit", "bump", tt.label}, tmpDir)
			})

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			want := strings.Replace(content, tt.initial, tt.expected, 1)
			if string(data) != want {
				t.Errorf("CMakeLists.txt =\n%s\nwant\n%s", data, want)
			}
		})
	}
}

func TestCLI_Bump_DryRun(t *testing.T) {
	tmpDir := t.TempDir()
	path := testutils.WriteTempFile(t, tmpDir, "CMakeLists.txt", testutils.ScopeGuardCMakeLists)

	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(config.Default())})
	output, _ := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, appCli, []string{"recipekit", "bump", "--dry-run", "minor"}, tmpDir)
	})

	if output != "0.3.4 -> 0.4.0\n" {
		t.Errorf("output = %q", output)
	}
	data, _ := os.ReadFile(path)
	if string(data) != testutils.ScopeGuardCMakeLists {
		t.Error("dry run modified the file")
	}
}

func TestCLI_Bump_Sync(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.WriteTempFile(t, tmpDir, "CMakeLists.txt", testutils.ScopeGuardCMakeLists)
	vcpkg := testutils.WriteTempFile(t, tmpDir, "vcpkg.json", `{"version-string": "0.3.4"}`)

	cfg := config.Default()
	cfg.Sync = []config.SyncTarget{{Path: "vcpkg.json"}}
	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(cfg)})
	_, _ = testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, appCli, []string{"recipekit", "bump", "--sync", "patch"}, tmpDir)
	})

	data, _ := os.ReadFile(vcpkg)
	if !strings.Contains(string(data), "0.3.5") {
		t.Errorf("vcpkg.json = %s", data)
	}
}

func TestCLI_Bump_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cmake   string
		args    []string
		wantErr string
		target  error
	}{
		{"missing label", testutils.ScopeGuardCMakeLists, []string{"recipekit", "bump"}, "missing bump label", nil},
		{"unknown label", testutils.ScopeGuardCMakeLists, []string{"recipekit", "bump", "huge"}, "invalid bump label", nil},
		{"invalid version", "project(x VERSION one)", []string{"recipekit", "bump", "patch"}, "", resolver.ErrInvalidVersionFormat},
		{"no declaration", "add_library(x INTERFACE)", []string{"recipekit", "bump", "patch"}, "", resolver.ErrMissingDeclaration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			testutils.WriteTempFile(t, tmpDir, "CMakeLists.txt", tt.cmake)

			appCli := testutils.BuildCLIForTests([]*cli.Command{Run(config.Default())})
			err := testutils.RunCLITestAllowError(t, appCli, tt.args, tmpDir)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestCLI_Bump_MissingFile(t *testing.T) {
	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(config.Default())})
	err := testutils.RunCLITestAllowError(t, appCli, []string{"recipekit", "bump", "patch"}, t.TempDir())
	var le *resolver.LoadError
	if !errors.As(err, &le) || filepath.Base(le.Path) != "CMakeLists.txt" {
		t.Errorf("expected LoadError for CMakeLists.txt, got %v", err)
	}
}
