package recipe

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/recipekit/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// Source describes where the library sources come from.
type Source struct {
	Type      string `yaml:"type,omitempty" toml:"type,omitempty"`
	URL       string `yaml:"url,omitempty" toml:"url,omitempty"`
	Revision  string `yaml:"revision,omitempty" toml:"revision,omitempty"`
	Subfolder string `yaml:"subfolder,omitempty" toml:"subfolder,omitempty"`
}

// file is the on-disk shape of a recipe.
type file struct {
	Name              string       `yaml:"name" toml:"name"`
	Version           string       `yaml:"version,omitempty" toml:"version,omitempty"`
	License           string       `yaml:"license" toml:"license"`
	Author            string       `yaml:"author,omitempty" toml:"author,omitempty"`
	URL               string       `yaml:"url,omitempty" toml:"url,omitempty"`
	Homepage          string       `yaml:"homepage,omitempty" toml:"homepage,omitempty"`
	Description       string       `yaml:"description,omitempty" toml:"description,omitempty"`
	Topics            []string     `yaml:"topics,omitempty" toml:"topics,omitempty"`
	Source            *Source      `yaml:"source,omitempty" toml:"source,omitempty"`
	Requires          []string     `yaml:"requires,omitempty" toml:"requires,omitempty"`
	TestRequires      []string     `yaml:"test-requires,omitempty" toml:"test-requires,omitempty"`
	Options           *optionsFile `yaml:"options,omitempty" toml:"options,omitempty"`
	ConfigurationFile string       `yaml:"configuration-file,omitempty" toml:"configuration-file,omitempty"`
	LicenseFile       string       `yaml:"license-file,omitempty" toml:"license-file,omitempty"`
}

// optionsFile keeps unset options distinguishable from false.
type optionsFile struct {
	Unittest           *bool `yaml:"unittest,omitempty" toml:"unittest,omitempty"`
	EnableCompatHeader *bool `yaml:"enable_compat_header,omitempty" toml:"enable_compat_header,omitempty"`
}

func (o *optionsFile) apply(base Options) Options {
	if o == nil {
		return base
	}
	if o.Unittest != nil {
		base.Unittest = *o.Unittest
	}
	if o.EnableCompatHeader != nil {
		base.EnableCompatHeader = *o.EnableCompatHeader
	}
	return base
}

func toOptionsFile(o Options) *optionsFile {
	return &optionsFile{Unittest: &o.Unittest, EnableCompatHeader: &o.EnableCompatHeader}
}

// Recipe is the immutable recipe record. Use the accessors; slices are
// returned as copies.
type Recipe struct {
	name              string
	pinnedVersion     string
	license           string
	author            string
	url               string
	homepage          string
	description       string
	topics            []string
	source            Source
	requires          []Reference
	testRequires      []Reference
	options           Options
	configurationFile string
	licenseFile       string
}

// Default file names.
const (
	DefaultConfigurationFile = "CMakeLists.txt"
	DefaultLicenseFile       = "LICENSE"
)

// FileNames are the recipe file names looked up in a recipe root, in order.
var FileNames = []string{"recipe.yaml", "recipe.yml", "recipe.toml"}

func defaultFile() file {
	return file{
		Name:        "scope-guard",
		License:     "MIT",
		Author:      "offa <offa@github>",
		URL:         "https://github.com/offa/scope-guard",
		Homepage:    "https://github.com/offa/scope-guard",
		Description: "Implementation of Scoped Guards and Unique Resource as proposed in P0052.",
		Topics: []string{
			"cpp", "cpp17", "p0052", "scope-guard", "scope-exit", "scope-fail",
			"scope-success", "unique-resource", "cmake",
		},
		Source: &Source{
			Type: "git",
			URL:  "https://github.com/offa/scope-guard.git",
		},
		TestRequires:      []string{"catch2/2.13.4", "trompeloeil/39"},
		ConfigurationFile: DefaultConfigurationFile,
		LicenseFile:       DefaultLicenseFile,
	}
}

// Default returns the scope-guard recipe.
func Default() *Recipe {
	r, err := fromFile(defaultFile())
	if err != nil {
		panic(fmt.Sprintf("recipe: invalid default recipe: %v", err))
	}
	return r
}

// Load reads a recipe file and overlays it on Default. The format is
// chosen by extension: .yaml/.yml or .toml.
func Load(ctx context.Context, fs core.FileSystem, path string) (*Recipe, error) {
	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe %q: %w", path, err)
	}

	f := defaultFile()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse recipe %q: %w", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse recipe %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported recipe format %q: use .yaml, .yml or .toml", filepath.Ext(path))
	}

	r, err := fromFile(f)
	if err != nil {
		return nil, fmt.Errorf("invalid recipe %q: %w", path, err)
	}
	return r, nil
}

// Find returns the first recipe file present in root, or "" if none.
func Find(ctx context.Context, fs core.FileSystem, root string) string {
	for _, name := range FileNames {
		p := filepath.Join(root, name)
		if info, err := fs.Stat(ctx, p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// LoadOrDefault loads path when non-empty, else the recipe found in root,
// else Default.
func LoadOrDefault(ctx context.Context, fs core.FileSystem, root, path string) (*Recipe, error) {
	if path == "" {
		path = Find(ctx, fs, root)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(ctx, fs, path)
}

func fromFile(f file) (*Recipe, error) {
	if strings.TrimSpace(f.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	requires, err := parseReferences(f.Requires)
	if err != nil {
		return nil, fmt.Errorf("requires: %w", err)
	}
	testRequires, err := parseReferences(f.TestRequires)
	if err != nil {
		return nil, fmt.Errorf("test-requires: %w", err)
	}

	r := &Recipe{
		name:              f.Name,
		pinnedVersion:     f.Version,
		license:           f.License,
		author:            f.Author,
		url:               f.URL,
		homepage:          f.Homepage,
		description:       f.Description,
		topics:            slices.Clone(f.Topics),
		requires:          requires,
		testRequires:      testRequires,
		options:           f.Options.apply(DefaultOptions()),
		configurationFile: f.ConfigurationFile,
		licenseFile:       f.LicenseFile,
	}
	if f.Source != nil {
		r.source = *f.Source
	}
	if r.configurationFile == "" {
		r.configurationFile = DefaultConfigurationFile
	}
	if r.licenseFile == "" {
		r.licenseFile = DefaultLicenseFile
	}
	return r, nil
}

func parseReferences(in []string) ([]Reference, error) {
	out := make([]Reference, 0, len(in))
	for _, s := range in {
		ref, err := ParseReference(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}

// Name returns the package name.
func (r *Recipe) Name() string {
	return r.name
}

// PinnedVersion returns the version pinned in the recipe file, or "".
func (r *Recipe) PinnedVersion() string {
	return r.pinnedVersion
}

// License returns the SPDX license identifier.
func (r *Recipe) License() string {
	return r.license
}

// Author returns the recipe author.
func (r *Recipe) Author() string {
	return r.author
}

// URL returns the recipe repository URL.
func (r *Recipe) URL() string {
	return r.url
}

// Homepage returns the library homepage.
func (r *Recipe) Homepage() string {
	return r.homepage
}

// Description returns the one-line package description.
func (r *Recipe) Description() string {
	return r.description
}

// Source returns the scm source of the library.
func (r *Recipe) Source() Source {
	return r.source
}

// Options returns the package options.
func (r *Recipe) Options() Options {
	return r.options
}

// ConfigurationFile returns the CMake file the version is resolved from.
func (r *Recipe) ConfigurationFile() string {
	return r.configurationFile
}

// LicenseFile returns the license file copied into the package.
func (r *Recipe) LicenseFile() string {
	return r.licenseFile
}

// Topics returns a copy of the package topics.
func (r *Recipe) Topics() []string {
	return slices.Clone(r.topics)
}

// Requires returns a copy of the unconditional requirements.
func (r *Recipe) Requires() []Reference {
	return slices.Clone(r.requires)
}

// TestRequires returns a copy of the requirements added when unittest is on.
func (r *Recipe) TestRequires() []Reference {
	return slices.Clone(r.testRequires)
}

// WithOptions returns a copy of the recipe using opts.
func (r *Recipe) WithOptions(opts Options) *Recipe {
	cp := *r
	cp.topics = slices.Clone(r.topics)
	cp.requires = slices.Clone(r.requires)
	cp.testRequires = slices.Clone(r.testRequires)
	cp.options = opts
	return &cp
}

// Requirements returns the requirements to declare for the recipe's
// options: requires, plus test requires when unittest is on.
func (r *Recipe) Requirements() []Reference {
	out := slices.Clone(r.requires)
	if r.options.Unittest {
		out = append(out, r.testRequires...)
	}
	return out
}

// Document returns the recipe in its on-disk shape for serialization.
func (r *Recipe) Document() any {
	src := r.source
	f := file{
		Name:              r.name,
		Version:           r.pinnedVersion,
		License:           r.license,
		Author:            r.author,
		URL:               r.url,
		Homepage:          r.homepage,
		Description:       r.description,
		Topics:            slices.Clone(r.topics),
		Options:           toOptionsFile(r.options),
		ConfigurationFile: r.configurationFile,
		LicenseFile:       r.licenseFile,
	}
	if src != (Source{}) {
		f.Source = &src
	}
	for _, ref := range r.requires {
		f.Requires = append(f.Requires, ref.String())
	}
	for _, ref := range r.testRequires {
		f.TestRequires = append(f.TestRequires, ref.String())
	}
	return f
}

// Builder assembles a Recipe field by field, e.g. from interactive input.
type Builder struct {
	f file
}

// NewBuilder starts from the default recipe.
func NewBuilder() *Builder {
	return &Builder{f: defaultFile()}
}

// Name sets the package name.
func (b *Builder) Name(s string) *Builder {
	b.f.Name = s
	return b
}

// License sets the license identifier.
func (b *Builder) License(s string) *Builder {
	b.f.License = s
	return b
}

// Description sets the package description.
func (b *Builder) Description(s string) *Builder {
	b.f.Description = s
	return b
}

// Homepage sets the library homepage.
func (b *Builder) Homepage(s string) *Builder {
	b.f.Homepage = s
	return b
}

// Options sets the package options.
func (b *Builder) Options(o Options) *Builder {
	b.f.Options = toOptionsFile(o)
	return b
}

// Build validates and returns the recipe.
func (b *Builder) Build() (*Recipe, error) {
	return fromFile(b.f)
}

// Marshal serializes a recipe as YAML or TOML depending on path's extension.
func Marshal(r *Recipe, path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Marshal(r.Document())
	default:
		return yaml.Marshal(r.Document())
	}
}
