// Package version reports the recipekit build version.
package version

import (
	"runtime/debug"
	"strings"
)

// Version is injected at build time:
//
//	go build -ldflags "-X github.com/indaco/recipekit/internal/version.Version=1.2.3"
var Version = ""

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the ldflags version, else the module version from
// the embedded build info, else "dev". A leading "v" is trimmed.
func GetVersion() string {
	if Version != "" {
		return strings.TrimPrefix(Version, "v")
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return strings.TrimPrefix(v, "v")
		}
	}
	return "dev"
}
