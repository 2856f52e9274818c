package show

import (
	"encoding/json"
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

func TestCLI_Show_JSONWithOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.WriteTempFile(t, tmpDir, "CMakeLists.txt", testutils.ScopeGuardCMakeLists)

	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(config.Default())})
	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, appCli, []string{
			"recipekit", "show", "--format", "json", "-o", "unittest=OFF", "-o", "enable_compat_header=ON",
		}, tmpDir)
	})
	if err != nil {
		t.Fatalf("Failed to capture stdout: %v", err)
	}

	var doc planJSON
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, output)
	}
	if doc.Version != "0.3.4" {
		t.Errorf("Version = %q", doc.Version)
	}
	if len(doc.Requirements) != 0 {
		t.Errorf("test requirements should be dropped, got %v", doc.Requirements)
	}
	if doc.Definitions[1].Name != "ENABLE_COMPAT_HEADER" || doc.Definitions[1].Value != "ON" {
		t.Errorf("Definitions = %v", doc.Definitions)
	}
}

func TestCLI_Show_UnknownOption(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.WriteTempFile(t, tmpDir, "CMakeLists.txt", testutils.ScopeGuardCMakeLists)

	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(config.Default())})
	err := testutils.RunCLITestAllowError(t, appCli, []string{"recipekit", "show", "-o", "shared=ON"}, tmpDir)
	if err == nil || !strings.Contains(err.Error(), "unknown option") {
		t.Errorf("expected unknown option error, got %v", err)
	}
}
