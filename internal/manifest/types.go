package manifest

import "strings"

// Format is the file format of a manifest target.
type Format string

const (
	// FormatJSON addresses a field with a gjson/sjson path ("version", "a.b").
	FormatJSON Format = "json"

	// FormatYAML addresses a field with a dot path.
	FormatYAML Format = "yaml"

	// FormatTOML addresses a field with a dot path.
	FormatTOML Format = "toml"

	// FormatRaw treats the whole file as the version.
	FormatRaw Format = "raw"

	// FormatRegex uses the first capturing group of Pattern.
	FormatRegex Format = "regex"

	// FormatCMake reads and rewrites project(... VERSION x ...).
	FormatCMake Format = "cmake"
)

func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is known.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatRaw, FormatRegex, FormatCMake:
		return true
	default:
		return false
	}
}

// NeedsField reports whether the format addresses a field.
func (f Format) NeedsField() bool {
	return f == FormatJSON || f == FormatYAML || f == FormatTOML
}

// ParseFormat converts a string to a Format, returning FormatRaw as fallback.
func ParseFormat(s string) Format {
	f := Format(strings.ToLower(s))
	if f.IsValid() {
		return f
	}
	return FormatRaw
}

// Target describes where a version lives in a file.
type Target struct {
	Path    string
	Format  Format
	Field   string
	Pattern string
}

// Label returns a short human description, e.g. "vcpkg.json (json: version-string)".
func (t Target) Label() string {
	switch {
	case t.Field != "":
		return t.Path + " (" + string(t.Format) + ": " + t.Field + ")"
	default:
		return t.Path + " (" + string(t.Format) + ")"
	}
}

// FormatForFile guesses the format from a file name.
func FormatForFile(filename string) Format {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, "cmakelists.txt"), strings.HasSuffix(lower, ".cmake"):
		return FormatCMake
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".toml"):
		return FormatTOML
	default:
		return FormatRaw
	}
}

// FieldForFile returns the conventional version field for well-known files.
func FieldForFile(filename string) string {
	fields := map[string]string{
		"vcpkg.json":     "version-string",
		"package.json":   "version",
		"conandata.yml":  "version",
		"conandata.yaml": "version",
		"pyproject.toml": "project.version",
		"Cargo.toml":     "package.version",
	}

	parts := strings.Split(strings.ReplaceAll(filename, "\\", "/"), "/")
	if field, ok := fields[parts[len(parts)-1]]; ok {
		return field
	}
	return "version"
}
