package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/recipekit/internal/core"
	"github.com/indaco/recipekit/internal/manifest"
)

// FileName is the recipekit configuration file looked up in the working directory.
const FileName = ".recipekit.yaml"

// EnvRoot overrides the recipe root directory.
const EnvRoot = "RECIPEKIT_ROOT"

// SyncTarget is a manifest file kept in step with the resolved version.
type SyncTarget struct {
	Path    string `yaml:"path"`
	Format  string `yaml:"format,omitempty"`
	Field   string `yaml:"field,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
}

// BuildConfig holds the build-tool settings of the package command.
type BuildConfig struct {
	Dir        string `yaml:"dir,omitempty"`
	PackageDir string `yaml:"package-dir,omitempty"`
	Generator  string `yaml:"generator,omitempty"`
	BuildType  string `yaml:"build-type,omitempty"`
}

// Config is the main configuration structure for recipekit.
type Config struct {
	// Root is the recipe root directory holding CMakeLists.txt.
	Root string `yaml:"root"`
	// Recipe is an explicit recipe file; empty means look in Root.
	Recipe   string       `yaml:"recipe,omitempty"`
	Match    string       `yaml:"match,omitempty"`
	LogLevel string       `yaml:"log-level,omitempty"`
	Theme    string       `yaml:"theme,omitempty"`
	Build    *BuildConfig `yaml:"build,omitempty"`
	Sync     []SyncTarget `yaml:"sync,omitempty"`
}

// Defaults applied to empty fields.
const (
	DefaultRoot       = "."
	DefaultMatch      = "strict"
	DefaultLogLevel   = "info"
	DefaultBuildDir   = "build"
	DefaultPackageDir = "package"
	DefaultBuildType  = "Release"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Root == "" {
		c.Root = DefaultRoot
	}
	if c.Match == "" {
		c.Match = DefaultMatch
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Build == nil {
		c.Build = &BuildConfig{}
	}
	if c.Build.Dir == "" {
		c.Build.Dir = DefaultBuildDir
	}
	if c.Build.PackageDir == "" {
		c.Build.PackageDir = DefaultPackageDir
	}
	if c.Build.BuildType == "" {
		c.Build.BuildType = DefaultBuildType
	}
}

// Targets converts the sync section into manifest targets resolved
// against Root. Missing formats and fields are guessed from file names.
func (c *Config) Targets() []manifest.Target {
	targets := make([]manifest.Target, 0, len(c.Sync))
	for _, s := range c.Sync {
		format := manifest.FormatForFile(s.Path)
		if s.Format != "" {
			format = manifest.ParseFormat(s.Format)
		}
		field := s.Field
		if field == "" && format.NeedsField() {
			field = manifest.FieldForFile(s.Path)
		}
		path := s.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.Root, path)
		}
		targets = append(targets, manifest.Target{
			Path:    path,
			Format:  format,
			Field:   field,
			Pattern: s.Pattern,
		})
	}
	return targets
}

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// ConfigSaver handles configuration saving with injected dependencies.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// NewConfigSaver creates a ConfigSaver with the given dependencies.
// If any dependency is nil, the production default is used.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{
		marshaler:  marshaler,
		fileOpener: opener,
		fileWriter: writer,
	}
}

// Save saves the configuration to FileName in the working directory.
func (s *ConfigSaver) Save(cfg *Config) error {
	return s.SaveTo(cfg, FileName)
}

// SaveTo saves the configuration to the specified file path.
func (s *ConfigSaver) SaveTo(cfg *Config, configFile string) error {
	file, err := s.fileOpener.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer file.Close()

	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}

var defaultConfigSaver = NewConfigSaver(nil, nil, nil)

// LoadConfigFn and SaveConfigFn are swappable in tests.
var (
	LoadConfigFn = loadConfig
	SaveConfigFn = func(cfg *Config) error {
		return defaultConfigSaver.Save(cfg)
	}
)

// loadConfig reads FileName from the working directory. A missing file
// yields nil, nil so callers can fall back to Default. RECIPEKIT_ROOT
// overrides the root in either case.
func loadConfig() (*Config, error) {
	cfg, err := readConfigFile(FileName)
	if err != nil {
		return nil, err
	}

	if envRoot := os.Getenv(EnvRoot); envRoot != "" {
		cleanPath := filepath.Clean(envRoot)
		if strings.Contains(cleanPath, "..") {
			return nil, fmt.Errorf("invalid %s: path traversal not allowed, use absolute path instead", EnvRoot)
		}
		if cfg == nil {
			cfg = Default()
		}
		cfg.Root = cleanPath
	}

	return cfg, nil
}

func readConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return Parse(data)
}

// Parse strictly decodes configuration YAML and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// ConfigFilePerm defines secure file permissions for config files (owner read/write only).
const ConfigFilePerm = core.PermOwnerRW

// DefaultTheme is the TUI theme used when none is configured.
const DefaultTheme = "recipekit"

// GetTheme returns the configured theme or DefaultTheme.
func (c *Config) GetTheme() string {
	if c.Theme == "" {
		return DefaultTheme
	}
	return c.Theme
}
