package manifest

import (
	"context"

	"github.com/indaco/recipekit/internal/core"
)

// Status is the outcome of syncing one target.
type Status string

const (
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
	StatusDrift     Status = "drift"
	StatusFailed    Status = "failed"
)

// Result reports what happened to a single target.
type Result struct {
	Target   Target
	Previous string
	Version  string
	Status   Status
	Err      error
}

// Syncer keeps a set of targets at the resolved version.
type Syncer struct {
	reader *Reader
	writer *Writer
}

// NewSyncer creates a Syncer on fs.
func NewSyncer(fs core.FileSystem) *Syncer {
	return &Syncer{reader: NewReader(fs), writer: NewWriter(fs)}
}

// Check reads every target and reports drift without writing.
func (s *Syncer) Check(ctx context.Context, targets []Target, version string) []Result {
	results := make([]Result, 0, len(targets))
	for _, t := range targets {
		res := Result{Target: t, Version: version}
		current, err := s.reader.Read(ctx, t)
		switch {
		case err != nil:
			res.Status, res.Err = StatusFailed, err
		case current == version:
			res.Previous, res.Status = current, StatusUnchanged
		default:
			res.Previous, res.Status = current, StatusDrift
		}
		results = append(results, res)
	}
	return results
}

// Sync writes version into every target that differs. A failing target
// does not stop the others.
func (s *Syncer) Sync(ctx context.Context, targets []Target, version string) []Result {
	results := s.Check(ctx, targets, version)
	for i := range results {
		res := &results[i]
		if res.Status == StatusUnchanged {
			continue
		}
		// A raw file that does not exist yet is created.
		if res.Status == StatusFailed && !(res.Target.Format == FormatRaw && !s.writer.Exists(ctx, res.Target.Path)) {
			continue
		}
		if err := s.writer.Write(ctx, res.Target, version); err != nil {
			res.Status, res.Err = StatusFailed, err
			continue
		}
		res.Status, res.Err = StatusUpdated, nil
	}
	return results
}

// HasFailures reports whether any result failed.
func HasFailures(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFailed {
			return true
		}
	}
	return false
}

// CountStatus counts results with the given status.
func CountStatus(results []Result, st Status) int {
	n := 0
	for _, r := range results {
		if r.Status == st {
			n++
		}
	}
	return n
}
