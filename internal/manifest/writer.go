package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
	"github.com/indaco/recipekit/internal/core"
	"github.com/indaco/recipekit/internal/resolver"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/sjson"
)

// Writer stamps versions into manifest targets.
type Writer struct {
	fs core.FileSystem
}

// NewWriter creates a Writer on fs.
func NewWriter(fs core.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Write stores version in the target. Structured formats must already
// contain the field, except TOML which creates missing tables.
func (w *Writer) Write(ctx context.Context, t Target, version string) error {
	if err := validate(t); err != nil {
		return err
	}

	var (
		updated []byte
		err     error
	)
	if t.Format == FormatRaw {
		updated = []byte(strings.TrimRight(version, "\n") + "\n")
	} else {
		data, readErr := w.fs.ReadFile(ctx, t.Path)
		if readErr != nil {
			return fmt.Errorf("failed to read file %q: %w", t.Path, readErr)
		}
		updated, err = stamp(data, t, version)
		if err != nil {
			return err
		}
	}

	if err := w.fs.WriteFile(ctx, t.Path, updated, core.PermOwnerRW); err != nil {
		return fmt.Errorf("failed to write file %q: %w", t.Path, err)
	}
	return nil
}

func stamp(data []byte, t Target, version string) ([]byte, error) {
	switch t.Format {
	case FormatJSON:
		return stampJSON(data, t.Path, t.Field, version)
	case FormatYAML:
		return stampYAML(data, t.Path, t.Field, version)
	case FormatTOML:
		return stampTOML(data, t.Path, t.Field, version)
	case FormatRegex:
		return stampRegex(data, t.Path, t.Pattern, version)
	case FormatCMake:
		out, err := resolver.RewriteVersion(t.Path, string(data), version)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", t.Format)
	}
}

// stampJSON uses sjson so key order and formatting survive.
func stampJSON(data []byte, path, field, version string) ([]byte, error) {
	if _, err := readJSON(data, path, field); err != nil {
		return nil, err
	}

	updated, err := sjson.SetBytes(data, field, version)
	if err != nil {
		return nil, fmt.Errorf("failed to set version in %q: %w", path, err)
	}
	if len(updated) > 0 && updated[len(updated)-1] != '\n' {
		updated = append(updated, '\n')
	}
	return updated, nil
}

// stampYAML replaces the node in the parsed AST so comments are kept.
func stampYAML(data []byte, path, field, version string) ([]byte, error) {
	if _, err := readYAML(data, path, field); err != nil {
		return nil, err
	}

	p, err := yamlPath(field)
	if err != nil {
		return nil, err
	}

	file, err := parser.ParseBytes(data, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML in %q: %w", path, err)
	}

	if err := p.ReplaceWithReader(file, strings.NewReader(quoteYAML(version))); err != nil {
		return nil, fmt.Errorf("failed to set version in %q: %w", path, err)
	}

	out := file.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return []byte(out), nil
}

// quoteYAML keeps the value a string scalar.
func quoteYAML(version string) string {
	b, err := yaml.Marshal(version)
	if err != nil {
		return `"` + version + `"`
	}
	return strings.TrimSpace(string(b))
}

func stampTOML(data []byte, path, field, version string) ([]byte, error) {
	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse TOML in %q: %w", path, err)
	}
	if obj == nil {
		obj = make(map[string]any)
	}

	if err := setNestedValue(obj, field, version); err != nil {
		return nil, fmt.Errorf("in file %q: %w", path, err)
	}

	updated, err := toml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TOML for %q: %w", path, err)
	}
	return updated, nil
}

// stampRegex replaces the first capturing group of every match.
func stampRegex(data []byte, path, pattern, version string) ([]byte, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	all := re.FindAllSubmatchIndex(data, -1)
	if len(all) == 0 {
		return nil, fmt.Errorf("pattern %q does not match contents of %q", pattern, path)
	}

	var out []byte
	last := 0
	for _, m := range all {
		if m[2] < 0 {
			continue
		}
		out = append(out, data[last:m[2]]...)
		out = append(out, version...)
		last = m[3]
	}
	out = append(out, data[last:]...)
	return out, nil
}

// Exists reports whether the target file exists.
func (w *Writer) Exists(ctx context.Context, path string) bool {
	_, err := w.fs.Stat(ctx, path)
	return err == nil
}
