package resolver

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/indaco/recipekit/internal/core"
	"github.com/indaco/recipekit/internal/semver"
)

// DefaultSource is the configuration file name used in messages when the
// caller does not supply one.
const DefaultSource = "CMakeLists.txt"

// VersionString is a validated project version. It is immutable once
// returned.
type VersionString string

func (v VersionString) String() string {
	return string(v)
}

// Semver parses the value into a semver.Version. In loose mode the
// embedded MAJOR.MINOR.PATCH[.TWEAK] sequence is used.
func (v VersionString) Semver() (semver.Version, error) {
	if semver.Valid(string(v)) {
		return semver.ParseVersion(string(v))
	}
	return semver.ExtractVersion(string(v))
}

// Mode selects how the version token is validated.
type Mode string

const (
	// ModeStrict requires the whole token to be MAJOR.MINOR.PATCH[.TWEAK].
	ModeStrict Mode = "strict"
	// ModeLoose accepts a token that merely contains such a sequence and
	// returns the token unchanged.
	ModeLoose Mode = "loose"
)

// ParseMode converts a string to a Mode, falling back to ModeStrict.
func ParseMode(s string) Mode {
	if Mode(s) == ModeLoose {
		return ModeLoose
	}
	return ModeStrict
}

// Resolver extracts and validates versions. The zero value is not usable;
// call New.
type Resolver struct {
	mode   Mode
	logger *log.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMode sets the validation mode.
func WithMode(m Mode) Option {
	return func(r *Resolver) {
		r.mode = ParseMode(string(m))
	}
}

// WithLogger sets the logger that receives the resolution event.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a strict Resolver logging to the default charm logger.
func New(opts ...Option) *Resolver {
	r := &Resolver{mode: ModeStrict, logger: log.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode returns the configured validation mode.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// ResolveVersion resolves text with a default strict Resolver.
func ResolveVersion(text string) (VersionString, error) {
	return New().Resolve(DefaultSource, text)
}

// Resolve extracts the version from the configuration text. source names
// the file in errors and in the emitted log event.
func (r *Resolver) Resolve(source, text string) (VersionString, error) {
	if source == "" {
		source = DefaultSource
	}

	decl, err := ParseDeclaration(text)
	if err != nil {
		return "", &ResolveError{Kind: MissingDeclaration, Source: source}
	}

	candidate, ok := decl.VersionToken()
	if !ok {
		return "", &ResolveError{Kind: MissingVersionMarker, Source: source}
	}

	if !r.accepts(candidate) {
		return "", &ResolveError{Kind: InvalidVersionFormat, Source: source, Candidate: candidate}
	}

	r.logger.Info("resolved project version", "version", candidate, "source", source, "project", decl.Name)
	return VersionString(candidate), nil
}

func (r *Resolver) accepts(candidate string) bool {
	if r.mode == ModeLoose {
		return semver.ContainsVersion(candidate)
	}
	return semver.Valid(candidate)
}

// ResolveFile reads root/relPath through fs and resolves it. Read failures
// are reported as *LoadError; the base name of relPath is used as source.
func (r *Resolver) ResolveFile(ctx context.Context, fs core.FileSystem, root, relPath string) (VersionString, error) {
	if relPath == "" {
		relPath = DefaultSource
	}
	path := filepath.Join(root, relPath)

	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		return "", &LoadError{Path: path, Err: err}
	}

	return r.Resolve(filepath.Base(relPath), string(data))
}

// IsResolveError reports whether err is a resolution failure (as opposed
// to a load failure or anything else).
func IsResolveError(err error) bool {
	var re *ResolveError
	return errors.As(err, &re)
}
