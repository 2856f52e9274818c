// Package cmake drives the cmake binary for the packaging workflow.
package cmake

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/indaco/recipekit/internal/core"
	"github.com/indaco/recipekit/internal/workflow"
)

// Binary is the default cmake executable name.
const Binary = "cmake"

// Tool runs cmake through os/exec.
type Tool struct {
	binary      string
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// New creates a Tool for the given binary. An empty binary means Binary.
func New(binary string) *Tool {
	if binary == "" {
		binary = Binary
	}
	return &Tool{
		binary:      binary,
		execCommand: exec.CommandContext,
	}
}

// Verify Tool implements workflow.BuildTool.
var _ workflow.BuildTool = (*Tool)(nil)

// ConfigureArgs returns the arguments for the configure invocation.
func ConfigureArgs(req workflow.ConfigureRequest) []string {
	args := []string{"-S", req.SourceDir, "-B", req.BuildDir}
	if req.Generator != "" {
		args = append(args, "-G", req.Generator)
	}
	if req.BuildType != "" {
		args = append(args, "-DCMAKE_BUILD_TYPE="+req.BuildType)
	}
	for _, d := range req.Definitions {
		args = append(args, fmt.Sprintf("-D%s=%s", d.Name, d.Value))
	}
	return args
}

// Configure generates the build tree for req.
func (t *Tool) Configure(ctx context.Context, req workflow.ConfigureRequest) error {
	return t.runStep(ctx, "configure", ConfigureArgs(req)...)
}

// Build compiles buildDir for the given configuration.
func (t *Tool) Build(ctx context.Context, buildDir, buildType string) error {
	args := []string{"--build", buildDir}
	if buildType != "" {
		args = append(args, "--config", buildType)
	}
	return t.runStep(ctx, "build", args...)
}

// Install installs buildDir into prefix.
func (t *Tool) Install(ctx context.Context, buildDir, prefix, buildType string) error {
	args := []string{"--install", buildDir, "--prefix", prefix}
	if buildType != "" {
		args = append(args, "--config", buildType)
	}
	return t.runStep(ctx, "install", args...)
}

// runStep runs a workflow step bounded by core.TimeoutBuild.
func (t *Tool) runStep(ctx context.Context, step string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, core.TimeoutBuild)
	defer cancel()

	_, err := t.run(ctx, step, args...)
	return err
}

// Version returns the first line of `cmake --version`.
func (t *Tool) Version(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, core.TimeoutShort)
	defer cancel()

	out, err := t.run(ctx, "version", "--version")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(line), nil
}

func (t *Tool) run(ctx context.Context, step string, args ...string) (string, error) {
	cmd := t.execCommand(ctx, t.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("cmake %s: %w", step, ctxErr)
		}
		stderrMsg := strings.TrimSpace(stderr.String())
		if stderrMsg != "" {
			return "", fmt.Errorf("cmake %s: %s: %w", step, stderrMsg, err)
		}
		return "", fmt.Errorf("cmake %s failed: %w", step, err)
	}
	return stdout.String(), nil
}
