package manifest

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/recipekit/internal/core"
	"github.com/indaco/recipekit/internal/resolver"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

// Reader reads versions from manifest targets.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a Reader on fs.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Read returns the version stored in the target.
func (r *Reader) Read(ctx context.Context, t Target) (string, error) {
	if err := validate(t); err != nil {
		return "", err
	}

	data, err := r.fs.ReadFile(ctx, t.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", t.Path, err)
	}

	switch t.Format {
	case FormatJSON:
		return readJSON(data, t.Path, t.Field)
	case FormatYAML:
		return readYAML(data, t.Path, t.Field)
	case FormatTOML:
		return readTOML(data, t.Path, t.Field)
	case FormatRaw:
		return strings.TrimSpace(string(data)), nil
	case FormatRegex:
		return readRegex(data, t.Path, t.Pattern)
	case FormatCMake:
		decl, err := resolver.ParseDeclaration(string(data))
		if err != nil {
			return "", fmt.Errorf("in file %q: %w", t.Path, err)
		}
		v, ok := decl.VersionToken()
		if !ok {
			return "", fmt.Errorf("no VERSION in project() of %q", t.Path)
		}
		return v, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", t.Format)
	}
}

func validate(t Target) error {
	if t.Path == "" {
		return fmt.Errorf("file path is required")
	}
	if !t.Format.IsValid() {
		return fmt.Errorf("invalid format: %s", t.Format)
	}
	if t.Format.NeedsField() && t.Field == "" {
		return fmt.Errorf("field is required for %s format", strings.ToUpper(string(t.Format)))
	}
	if t.Format == FormatRegex && t.Pattern == "" {
		return fmt.Errorf("pattern is required for regex format")
	}
	return nil
}

func readJSON(data []byte, path, field string) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("failed to parse JSON in %q", path)
	}
	res := gjson.GetBytes(data, field)
	if !res.Exists() {
		return "", fmt.Errorf("in file %q: field %q not found", path, field)
	}
	if res.Type != gjson.String {
		return "", fmt.Errorf("field %q in %q is not a string", field, path)
	}
	return res.String(), nil
}

// yamlPath builds a YAML path from a dot-separated field.
func yamlPath(field string) (*yaml.Path, error) {
	b := (&yaml.PathBuilder{}).Root()
	for _, part := range strings.Split(field, ".") {
		if part == "" {
			return nil, fmt.Errorf("invalid field path %q", field)
		}
		b = b.Child(part)
	}
	return b.Build(), nil
}

func readYAML(data []byte, path, field string) (string, error) {
	var obj map[string]any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("failed to parse YAML in %q: %w", path, err)
	}

	value, err := getNestedValue(obj, field)
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", path, err)
	}

	version, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q in %q is not a string", field, path)
	}
	return version, nil
}

func readTOML(data []byte, path, field string) (string, error) {
	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("failed to parse TOML in %q: %w", path, err)
	}

	value, err := getNestedValue(obj, field)
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", path, err)
	}

	version, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q in %q is not a string", field, path)
	}
	return version, nil
}

func readRegex(data []byte, path, pattern string) (string, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return "", err
	}

	matches := re.FindSubmatch(data)
	if len(matches) < 2 {
		return "", fmt.Errorf("no version match found in %q for pattern %q", path, pattern)
	}
	return string(matches[1]), nil
}

// compilePattern compiles a regex and requires a capturing group.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("regex pattern %q must have a capturing group", pattern)
	}
	return re, nil
}

// getNestedValue retrieves a value from a nested map using dot notation.
func getNestedValue(obj map[string]any, field string) (any, error) {
	parts := strings.Split(field, ".")
	current := any(obj)

	for i, part := range parts {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i], "."), part)
		}
		value, exists := currentMap[part]
		if !exists {
			return nil, fmt.Errorf("field %q not found", field)
		}
		current = value
	}
	return current, nil
}

// setNestedValue sets a value in a nested map using dot notation,
// creating intermediate tables.
func setNestedValue(obj map[string]any, field string, value any) error {
	parts := strings.Split(field, ".")
	current := obj

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		next, exists := current[part]
		if !exists {
			m := make(map[string]any)
			current[part] = m
			current = m
			continue
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i+1], "."), part)
		}
		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}
