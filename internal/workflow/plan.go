package workflow

import (
	"fmt"
	"path/filepath"

	"github.com/indaco/recipekit/internal/recipe"
	"github.com/indaco/recipekit/internal/resolver"
	"github.com/indaco/recipekit/internal/semver"
)

// CMake cache variables fed from recipe options.
const (
	DefUnittest           = "UNITTEST"
	DefEnableCompatHeader = "ENABLE_COMPAT_HEADER"
)

// Definition is a -D build variable.
type Definition struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Layout locates the directories the workflow uses. Relative BuildDir and
// PackageDir are resolved against Root.
type Layout struct {
	Root       string
	BuildDir   string
	PackageDir string
	Generator  string
	BuildType  string
}

func (l Layout) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.Root, p)
}

// Plan is everything the packaging steps need, derived once from the
// recipe and the resolved version.
type Plan struct {
	Reference    recipe.Reference
	Version      resolver.VersionString
	Options      recipe.Options
	Requirements []recipe.Reference
	Definitions  []Definition

	SourceDir  string
	BuildDir   string
	PackageDir string
	Generator  string
	BuildType  string

	LicenseSource string
	LicenseDest   string
}

// NewPlan builds the plan for rec at version v.
func NewPlan(rec *recipe.Recipe, v resolver.VersionString, layout Layout) *Plan {
	opts := rec.Options()
	pkgDir := layout.resolve(layout.PackageDir)
	return &Plan{
		Reference:    recipe.Reference{Name: rec.Name(), Version: v.String()},
		Version:      v,
		Options:      opts,
		Requirements: rec.Requirements(),
		Definitions: []Definition{
			{Name: DefUnittest, Value: recipe.Switch(opts.Unittest)},
			{Name: DefEnableCompatHeader, Value: recipe.Switch(opts.EnableCompatHeader)},
		},
		SourceDir:     layout.Root,
		BuildDir:      layout.resolve(layout.BuildDir),
		PackageDir:    pkgDir,
		Generator:     layout.Generator,
		BuildType:     layout.BuildType,
		LicenseSource: filepath.Join(layout.Root, rec.LicenseFile()),
		LicenseDest:   filepath.Join(pkgDir, "licenses", filepath.Base(rec.LicenseFile())),
	}
}

// CheckPinned compares a version pinned in the recipe with the resolved
// one. An empty pin always passes.
func CheckPinned(rec *recipe.Recipe, v resolver.VersionString) error {
	pinned := rec.PinnedVersion()
	if pinned == "" {
		return nil
	}

	want, err := semver.ExtractVersion(pinned)
	if err != nil {
		return fmt.Errorf("recipe pins an invalid version %q: %w", pinned, err)
	}
	got, err := v.Semver()
	if err != nil {
		return err
	}
	if want.Compare(got) != 0 {
		return fmt.Errorf("recipe pins version %s but %s declares %s", pinned, rec.ConfigurationFile(), v)
	}
	return nil
}
