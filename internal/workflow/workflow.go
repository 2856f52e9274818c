package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/indaco/recipekit/internal/core"
	"github.com/indaco/recipekit/internal/logging"
	"github.com/indaco/recipekit/internal/recipe"
	"github.com/indaco/recipekit/internal/resolver"
)

// ConfigureRequest is passed to BuildTool.Configure.
type ConfigureRequest struct {
	SourceDir   string
	BuildDir    string
	Generator   string
	BuildType   string
	Definitions []Definition
}

// BuildTool is the external build system. recipekit drives it; it does
// not reimplement it.
type BuildTool interface {
	Configure(ctx context.Context, req ConfigureRequest) error
	Build(ctx context.Context, buildDir, buildType string) error
	Install(ctx context.Context, buildDir, prefix, buildType string) error
}

// Step names a workflow stage.
type Step string

const (
	StepResolve      Step = "resolve"
	StepRequirements Step = "requirements"
	StepConfigure    Step = "configure"
	StepBuild        Step = "build"
	StepInstall      Step = "install"
	StepLicense      Step = "license"
)

// Steps lists the stages in execution order.
var Steps = []Step{StepResolve, StepRequirements, StepConfigure, StepBuild, StepInstall, StepLicense}

// StepStatus is the outcome of a step.
type StepStatus string

const (
	StatusDone    StepStatus = "done"
	StatusSkipped StepStatus = "skipped"
	StatusFailed  StepStatus = "failed"
)

// StepResult reports one executed (or skipped) step.
type StepResult struct {
	Step     Step
	Status   StepStatus
	Detail   string
	Err      error
	Duration time.Duration
}

// Report is the outcome of Run.
type Report struct {
	Plan  *Plan
	Steps []StepResult
}

// Failed reports whether any step failed.
func (r *Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Runner wraps the execution of a long step, e.g. to show a spinner.
type Runner func(ctx context.Context, title string, fn func(context.Context) error) error

func directRunner(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}

// Workflow executes the packaging steps for one recipe.
type Workflow struct {
	fs       core.FileSystem
	recipe   *recipe.Recipe
	resolver *resolver.Resolver
	tool     BuildTool
	layout   Layout
	logger   *log.Logger
	runner   Runner
	dryRun   bool
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithDryRun reports the plan without running the build tool or writing
// into the package directory.
func WithDryRun(dry bool) Option {
	return func(w *Workflow) { w.dryRun = dry }
}

// WithLogger sets the workflow logger.
func WithLogger(l *log.Logger) Option {
	return func(w *Workflow) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithRunner wraps configure, build and install.
func WithRunner(r Runner) Option {
	return func(w *Workflow) {
		if r != nil {
			w.runner = r
		}
	}
}

// New creates a Workflow. tool may be nil only for dry runs.
func New(fs core.FileSystem, rec *recipe.Recipe, res *resolver.Resolver, tool BuildTool, layout Layout, opts ...Option) *Workflow {
	w := &Workflow{
		fs:       fs,
		recipe:   rec,
		resolver: res,
		tool:     tool,
		layout:   layout,
		logger:   logging.Discard(),
		runner:   directRunner,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Prepare resolves the version and returns the plan. It performs no
// side effects beyond reading the configuration file.
func (w *Workflow) Prepare(ctx context.Context) (*Plan, error) {
	v, err := w.resolver.ResolveFile(ctx, w.fs, w.layout.Root, w.recipe.ConfigurationFile())
	if err != nil {
		return nil, err
	}
	if err := CheckPinned(w.recipe, v); err != nil {
		w.logger.Warn("pinned version mismatch", "err", err)
	}
	return NewPlan(w.recipe, v, w.layout), nil
}

// Run executes every step in order and stops at the first failure. The
// returned error is the failing step's error; the report is always
// non-nil.
func (w *Workflow) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	start := time.Now()
	plan, err := w.Prepare(ctx)
	if err != nil {
		report.Steps = append(report.Steps, StepResult{Step: StepResolve, Status: StatusFailed, Err: err, Duration: time.Since(start)})
		return report, fmt.Errorf("cannot package without a valid version: %w", err)
	}
	report.Plan = plan
	report.Steps = append(report.Steps, StepResult{
		Step:     StepResolve,
		Status:   StatusDone,
		Detail:   plan.Reference.String(),
		Duration: time.Since(start),
	})

	if !w.dryRun && w.tool == nil {
		return report, errors.New("no build tool configured")
	}

	stages := []struct {
		step Step
		run  func(context.Context, *Plan) (string, error)
	}{
		{StepRequirements, w.declareRequirements},
		{StepConfigure, w.configure},
		{StepBuild, w.build},
		{StepInstall, w.install},
		{StepLicense, w.copyLicense},
	}

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			report.Steps = append(report.Steps, StepResult{Step: st.step, Status: StatusFailed, Err: err})
			return report, err
		}

		if w.dryRun && st.step != StepRequirements {
			report.Steps = append(report.Steps, StepResult{Step: st.step, Status: StatusSkipped, Detail: "dry run"})
			continue
		}

		start := time.Now()
		detail, err := st.run(ctx, plan)
		res := StepResult{Step: st.step, Status: StatusDone, Detail: detail, Duration: time.Since(start)}
		if err != nil {
			res.Status, res.Err = StatusFailed, err
			report.Steps = append(report.Steps, res)
			w.logger.Error("step failed", "step", st.step, "err", err)
			return report, fmt.Errorf("%s: %w", st.step, err)
		}
		w.logger.Debug("step done", "step", st.step, "duration", res.Duration)
		report.Steps = append(report.Steps, res)
	}

	return report, nil
}

// declareRequirements reports the requirements; resolving them is the
// package manager's job.
func (w *Workflow) declareRequirements(_ context.Context, plan *Plan) (string, error) {
	if len(plan.Requirements) == 0 {
		return "none", nil
	}
	names := make([]string, len(plan.Requirements))
	for i, r := range plan.Requirements {
		names[i] = r.String()
		w.logger.Info("requirement", "ref", names[i])
	}
	return strings.Join(names, ", "), nil
}

func (w *Workflow) configure(ctx context.Context, plan *Plan) (string, error) {
	req := ConfigureRequest{
		SourceDir:   plan.SourceDir,
		BuildDir:    plan.BuildDir,
		Generator:   plan.Generator,
		BuildType:   plan.BuildType,
		Definitions: plan.Definitions,
	}
	err := w.runner(ctx, "Configuring "+plan.Reference.String(), func(ctx context.Context) error {
		return w.tool.Configure(ctx, req)
	})
	return plan.BuildDir, err
}

func (w *Workflow) build(ctx context.Context, plan *Plan) (string, error) {
	err := w.runner(ctx, "Building "+plan.Reference.String(), func(ctx context.Context) error {
		return w.tool.Build(ctx, plan.BuildDir, plan.BuildType)
	})
	return plan.BuildType, err
}

func (w *Workflow) install(ctx context.Context, plan *Plan) (string, error) {
	err := w.runner(ctx, "Installing into "+plan.PackageDir, func(ctx context.Context) error {
		return w.tool.Install(ctx, plan.BuildDir, plan.PackageDir, plan.BuildType)
	})
	return plan.PackageDir, err
}

func (w *Workflow) copyLicense(ctx context.Context, plan *Plan) (string, error) {
	data, err := w.fs.ReadFile(ctx, plan.LicenseSource)
	if err != nil {
		return "", fmt.Errorf("failed to read license %q: %w", plan.LicenseSource, err)
	}
	if err := w.fs.MkdirAll(ctx, filepath.Dir(plan.LicenseDest), core.PermDir); err != nil {
		return "", fmt.Errorf("failed to create %q: %w", filepath.Dir(plan.LicenseDest), err)
	}
	if err := w.fs.WriteFile(ctx, plan.LicenseDest, data, core.PermPublicRead); err != nil {
		return "", fmt.Errorf("failed to write license %q: %w", plan.LicenseDest, err)
	}
	return plan.LicenseDest, nil
}
