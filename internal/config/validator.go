package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/indaco/recipekit/internal/core"
	"github.com/indaco/recipekit/internal/manifest"
	"github.com/indaco/recipekit/internal/tui"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "YAML Syntax", "Sync").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator validates configuration files and settings.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	configPath  string
	validations []ValidationResult
}

// NewValidator creates a new configuration validator. configPath is the
// .recipekit.yaml location; it may not exist.
func NewValidator(fs core.FileSystem, cfg *Config, configPath string) *Validator {
	return &Validator{
		fs:          fs,
		cfg:         cfg,
		configPath:  configPath,
		validations: make([]ValidationResult, 0),
	}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate(ctx context.Context) ([]ValidationResult, error) {
	v.validations = make([]ValidationResult, 0)

	v.validateYAMLSyntax(ctx)
	if v.cfg == nil {
		return v.validations, nil
	}

	v.validateRoot(ctx)
	v.validateSettings()
	v.validateSyncTargets(ctx)

	return v.validations, nil
}

func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

func (v *Validator) validateYAMLSyntax(ctx context.Context) {
	data, err := v.fs.ReadFile(ctx, v.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			v.addValidation("YAML Syntax", true, fmt.Sprintf("No %s found, using defaults", FileName), true)
			return
		}
		v.addValidation("YAML Syntax", false, fmt.Sprintf("Cannot read %s: %v", v.configPath, err), false)
		return
	}

	if _, err := Parse(data); err != nil {
		v.addValidation("YAML Syntax", false, fmt.Sprintf("Invalid configuration: %v", err), false)
		return
	}
	v.addValidation("YAML Syntax", true, "Configuration file is valid YAML", false)
}

func (v *Validator) validateRoot(ctx context.Context) {
	info, err := v.fs.Stat(ctx, v.cfg.Root)
	switch {
	case err != nil:
		v.addValidation("Recipe Root", false, fmt.Sprintf("Root %q is not accessible: %v", v.cfg.Root, err), false)
	case !info.IsDir():
		v.addValidation("Recipe Root", false, fmt.Sprintf("Root %q is not a directory", v.cfg.Root), false)
	default:
		v.addValidation("Recipe Root", true, fmt.Sprintf("Root %q exists", v.cfg.Root), false)
	}

	if v.cfg.Recipe != "" {
		if _, err := v.fs.Stat(ctx, v.cfg.Recipe); err != nil {
			v.addValidation("Recipe Root", false, fmt.Sprintf("Recipe file %q is not accessible: %v", v.cfg.Recipe, err), false)
		}
	}
}

func (v *Validator) validateSettings() {
	before := ErrorCount(v.validations)

	if !slices.Contains([]string{"strict", "loose"}, v.cfg.Match) {
		v.addValidation("Settings", false, fmt.Sprintf("match must be 'strict' or 'loose', got %q", v.cfg.Match), false)
	} else if v.cfg.Match == "loose" {
		v.addValidation("Settings", true, "match is 'loose': versions with prefixes or suffixes are accepted", true)
	}

	if _, err := log.ParseLevel(v.cfg.LogLevel); err != nil {
		v.addValidation("Settings", false, fmt.Sprintf("invalid log-level %q", v.cfg.LogLevel), false)
	}

	if v.cfg.Theme != "" && !tui.IsValidTheme(v.cfg.Theme) {
		v.addValidation("Settings", false, fmt.Sprintf("unknown theme %q (available: %s)", v.cfg.Theme, strings.Join(tui.ValidThemes, ", ")), false)
	}

	if v.cfg.Build != nil && v.cfg.Build.Dir != "" && v.cfg.Build.Dir == v.cfg.Build.PackageDir {
		v.addValidation("Settings", false, "build.dir and build.package-dir must differ", false)
	}

	if ErrorCount(v.validations) == before {
		v.addValidation("Settings", true, "Settings are valid", false)
	}
}

func (v *Validator) validateSyncTargets(ctx context.Context) {
	if len(v.cfg.Sync) == 0 {
		return
	}

	seen := make(map[string]bool)
	for i, s := range v.cfg.Sync {
		label := fmt.Sprintf("Sync target %d (%s)", i+1, s.Path)
		if s.Path == "" {
			v.addValidation("Sync", false, fmt.Sprintf("Sync target %d: path is required", i+1), false)
			continue
		}
		if seen[s.Path] {
			v.addValidation("Sync", false, label+": duplicate path", false)
		}
		seen[s.Path] = true

		if s.Format != "" && !manifest.Format(s.Format).IsValid() {
			v.addValidation("Sync", false, fmt.Sprintf("%s: unknown format %q", label, s.Format), false)
			continue
		}
		if s.Format == string(manifest.FormatRegex) {
			if s.Pattern == "" {
				v.addValidation("Sync", false, label+": pattern is required for regex format", false)
				continue
			}
			re, err := regexp.Compile(s.Pattern)
			if err != nil {
				v.addValidation("Sync", false, fmt.Sprintf("%s: invalid pattern: %v", label, err), false)
				continue
			}
			if re.NumSubexp() < 1 {
				v.addValidation("Sync", false, label+": pattern must have a capturing group", false)
				continue
			}
		}

		path := s.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(v.cfg.Root, path)
		}
		if _, err := v.fs.Stat(ctx, path); err != nil {
			v.addValidation("Sync", true, label+": file does not exist yet", true)
			continue
		}
		v.addValidation("Sync", true, label+": ok", false)
	}
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	for _, r := range results {
		if !r.Passed && !r.Warning {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}
