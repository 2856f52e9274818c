package recipe

import (
	"fmt"
	"strings"
)

// Reference identifies a package as name/version.
type Reference struct {
	Name    string
	Version string
}

// ParseReference parses "name/version".
func ParseReference(s string) (Reference, error) {
	name, version, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || name == "" || version == "" || strings.Contains(version, "/") {
		return Reference{}, fmt.Errorf("invalid package reference %q: expected name/version", s)
	}
	return Reference{Name: name, Version: version}, nil
}

func (r Reference) String() string {
	return r.Name + "/" + r.Version
}
