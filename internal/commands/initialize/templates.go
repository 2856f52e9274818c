package initialize

import (
	"fmt"
	"slices"
	"strings"

	"github.com/indaco/recipekit/internal/recipe"
)

// Template is a preset of recipe options for common setups.
type Template struct {
	Name        string
	Description string
	Options     recipe.Options
}

// DefaultTemplate is used when --template is not given.
const DefaultTemplate = "standard"

// AllTemplates returns all available templates.
func AllTemplates() []Template {
	return []Template{
		{
			Name:        "standard",
			Description: "Unit tests on, compat header off",
			Options:     recipe.Options{Unittest: true, EnableCompatHeader: false},
		},
		{
			Name:        "minimal",
			Description: "Headers only, no test requirements",
			Options:     recipe.Options{Unittest: false, EnableCompatHeader: false},
		},
		{
			Name:        "compat",
			Description: "Unit tests and the <scope> compatibility header",
			Options:     recipe.Options{Unittest: true, EnableCompatHeader: true},
		},
	}
}

// TemplateNames returns the names of all available templates.
func TemplateNames() []string {
	templates := AllTemplates()
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return names
}

// GetTemplate returns the template with the given name, or an error if not found.
func GetTemplate(name string) (*Template, error) {
	for _, t := range AllTemplates() {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(TemplateNames(), ", "))
}

// IsValidTemplate checks if the given name is a valid template.
func IsValidTemplate(name string) bool {
	return slices.Contains(TemplateNames(), name)
}
