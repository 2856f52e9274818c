package show

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/indaco/recipekit/internal/printer"
	"github.com/indaco/recipekit/internal/recipe"
	"github.com/indaco/recipekit/internal/workflow"
)

// OutputFormat controls how the plan is displayed.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
)

// ParseOutputFormat converts a string to OutputFormat.
func ParseOutputFormat(s string) OutputFormat {
	switch s {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// planJSON is the machine-readable shape of a plan.
type planJSON struct {
	Reference    string                `json:"reference"`
	Name         string                `json:"name"`
	Version      string                `json:"version"`
	License      string                `json:"license"`
	Options      map[string]bool       `json:"options"`
	Requirements []string              `json:"requirements"`
	Definitions  []workflow.Definition `json:"definitions"`
	SourceDir    string                `json:"source_dir"`
	BuildDir     string                `json:"build_dir"`
	PackageDir   string                `json:"package_dir"`
	Generator    string                `json:"generator,omitempty"`
	BuildType    string                `json:"build_type"`
	LicenseFile  string                `json:"license_file"`
}

// Formatter renders a plan.
type Formatter struct {
	format OutputFormat
}

// NewFormatter creates a new Formatter with the specified output format.
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// FormatPlan formats the plan for display.
func (f *Formatter) FormatPlan(rec *recipe.Recipe, plan *workflow.Plan) (string, error) {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(rec, plan)
	case FormatTable:
		return f.formatTable(rec, plan), nil
	default:
		return f.formatText(rec, plan), nil
	}
}

func requirementNames(plan *workflow.Plan) []string {
	out := make([]string, len(plan.Requirements))
	for i, r := range plan.Requirements {
		out[i] = r.String()
	}
	return out
}

func optionPairs(o recipe.Options) []string {
	m := o.Map()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = fmt.Sprintf("%s=%t", name, m[name])
	}
	return pairs
}

func (f *Formatter) formatJSON(rec *recipe.Recipe, plan *workflow.Plan) (string, error) {
	doc := planJSON{
		Reference:    plan.Reference.String(),
		Name:         plan.Reference.Name,
		Version:      plan.Version.String(),
		License:      rec.License(),
		Options:      plan.Options.Map(),
		Requirements: requirementNames(plan),
		Definitions:  plan.Definitions,
		SourceDir:    plan.SourceDir,
		BuildDir:     plan.BuildDir,
		PackageDir:   plan.PackageDir,
		Generator:    plan.Generator,
		BuildType:    plan.BuildType,
		LicenseFile:  plan.LicenseDest,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode plan: %w", err)
	}
	return string(data) + "\n", nil
}

func (f *Formatter) formatText(rec *recipe.Recipe, plan *workflow.Plan) string {
	var sb strings.Builder

	sb.WriteString(printer.Info(plan.Reference.String()))
	sb.WriteString("\n")
	if d := rec.Description(); d != "" {
		sb.WriteString(printer.Faint(d))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	reqs := requirementNames(plan)
	if len(reqs) == 0 {
		reqs = []string{"none"}
	}
	defs := make([]string, len(plan.Definitions))
	for i, d := range plan.Definitions {
		defs[i] = fmt.Sprintf("-D%s=%s", d.Name, d.Value)
	}

	lines := [][2]string{
		{"license", rec.License()},
		{"options", strings.Join(optionPairs(plan.Options), " ")},
		{"requires", strings.Join(reqs, ", ")},
		{"definitions", strings.Join(defs, " ")},
		{"source", plan.SourceDir},
		{"build", fmt.Sprintf("%s (%s)", plan.BuildDir, plan.BuildType)},
		{"package", plan.PackageDir},
		{"license file", plan.LicenseDest},
	}
	if plan.Generator != "" {
		lines = append(lines, [2]string{"generator", plan.Generator})
	}
	for _, l := range lines {
		sb.WriteString(printer.KeyValue(l[0], l[1]))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (f *Formatter) formatTable(rec *recipe.Recipe, plan *workflow.Plan) string {
	rows := [][]string{
		{"reference", plan.Reference.String()},
		{"license", rec.License()},
	}
	for _, p := range optionPairs(plan.Options) {
		rows = append(rows, []string{"option", p})
	}
	for _, r := range requirementNames(plan) {
		rows = append(rows, []string{"requires", r})
	}
	for _, d := range plan.Definitions {
		rows = append(rows, []string{"definition", d.Name + "=" + d.Value})
	}
	rows = append(rows,
		[]string{"build dir", plan.BuildDir},
		[]string{"package dir", plan.PackageDir},
		[]string{"build type", plan.BuildType},
	)
	return printer.Table([]string{"FIELD", "VALUE"}, rows) + "\n"
}
