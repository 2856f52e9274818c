package core

import (
	"context"
	"os"
	"time"
)

// FileSystem abstracts the file operations recipekit performs so that the
// resolver, recipe loader and manifest stamper can be tested in memory.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	MkdirAll(ctx context.Context, path string, perm os.FileMode) error
	Remove(ctx context.Context, path string) error
	RemoveAll(ctx context.Context, path string) error
	ReadDir(ctx context.Context, path string) ([]os.DirEntry, error)
}

// Marshaler abstracts serialization for config persistence.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}

// File and directory permissions.
const (
	// PermOwnerRW is used for files recipekit writes (config, manifests).
	PermOwnerRW os.FileMode = 0o600

	// PermPublicRead is used for files copied into a package directory.
	PermPublicRead os.FileMode = 0o644

	// PermDir is used for directories recipekit creates.
	PermDir os.FileMode = 0o755
)

// Timeouts for external tool invocations.
const (
	// TimeoutShort bounds quick probes such as `cmake --version`.
	TimeoutShort = 10 * time.Second

	// TimeoutBuild bounds a single configure/build/install invocation.
	TimeoutBuild = 30 * time.Minute
)
