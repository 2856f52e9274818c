// Package testutils holds helpers shared by package tests.
package testutils

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"
)

// WriteTempConfig writes content to .recipekit.yaml in a fresh temp
// directory and returns the file path.
func WriteTempConfig(t *testing.T, content string) string {
	t.Helper()
	return WriteTempFile(t, t.TempDir(), ".recipekit.yaml", content)
}

// WriteTempFile writes content to dir/name, creating parent directories.
func WriteTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// Chdir changes the working directory for the duration of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		orig = os.TempDir()
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

// ScopeGuardCMakeLists is a realistic top-level CMakeLists.txt.
const ScopeGuardCMakeLists = `cmake_minimum_required(VERSION 3.14)

project(ScopeGuard VERSION 0.3.4 LANGUAGES CXX)

option(UNITTEST "Build Unit Tests" ON)
option(ENABLE_COMPAT_HEADER "Enable compatible header 'scope'" OFF)

add_library(ScopeGuard INTERFACE)
target_include_directories(ScopeGuard INTERFACE $<BUILD_INTERFACE:${CMAKE_CURRENT_SOURCE_DIR}/include>)
`

// CaptureStdout runs fn and returns everything it wrote to os.Stdout.
func CaptureStdout(fn func()) (string, error) {
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = orig
	out := <-done
	_ = r.Close()
	return out, nil
}

// BuildCLIForTests wraps commands in a bare root command.
func BuildCLIForTests(commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:     "recipekit",
		Commands: commands,
	}
}

// RunCLITest runs app with args inside workdir and fails the test on error.
func RunCLITest(t *testing.T, app *cli.Command, args []string, workdir string) {
	t.Helper()
	if err := RunCLITestAllowError(t, app, args, workdir); err != nil {
		t.Fatalf("CLI run failed: %v", err)
	}
}

// RunCLITestAllowError runs app with args inside workdir and returns its
// error.
func RunCLITestAllowError(t *testing.T, app *cli.Command, args []string, workdir string) error {
	t.Helper()
	Chdir(t, workdir)
	return app.Run(context.Background(), args)
}
