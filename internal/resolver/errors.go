package resolver

import (
	"errors"
	"fmt"

	"github.com/indaco/recipekit/internal/semver"
)

// ErrorKind classifies resolution failures.
type ErrorKind int

const (
	// MissingDeclaration means no project(...) declaration was found.
	MissingDeclaration ErrorKind = iota + 1
	// MissingVersionMarker means the declaration has no VERSION token,
	// or nothing follows it.
	MissingVersionMarker
	// InvalidVersionFormat means the token after VERSION is not a
	// dotted-numeric version.
	InvalidVersionFormat
)

func (k ErrorKind) String() string {
	switch k {
	case MissingDeclaration:
		return "MissingDeclaration"
	case MissingVersionMarker:
		return "MissingVersionMarker"
	case InvalidVersionFormat:
		return "InvalidVersionFormat"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels for errors.Is checks against a *ResolveError.
var (
	ErrMissingDeclaration   = errors.New("missing project declaration")
	ErrMissingVersionMarker = errors.New("missing VERSION marker")
	ErrInvalidVersionFormat = errors.New("invalid version format")
)

// expectedDeclaration describes the accepted input in error messages.
const expectedDeclaration = "project(<name> VERSION " + semver.Pattern + " ...)"

// ResolveError is returned for every resolution failure.
type ResolveError struct {
	Kind ErrorKind
	// Source names the configuration file, e.g. "CMakeLists.txt".
	Source string
	// Candidate is the rejected version token (InvalidVersionFormat only).
	Candidate string
}

func (e *ResolveError) Error() string {
	switch e.Kind {
	case MissingDeclaration:
		return fmt.Sprintf("no valid project() declaration found in %s: expected %s", e.Source, expectedDeclaration)
	case MissingVersionMarker:
		return fmt.Sprintf("project() declaration in %s has no VERSION value: expected %s", e.Source, expectedDeclaration)
	case InvalidVersionFormat:
		return fmt.Sprintf("invalid version %q in %s: expected %s", e.Candidate, e.Source, semver.Pattern)
	default:
		return fmt.Sprintf("cannot resolve version from %s", e.Source)
	}
}

// Is matches the kind sentinels.
func (e *ResolveError) Is(target error) bool {
	switch target {
	case ErrMissingDeclaration:
		return e.Kind == MissingDeclaration
	case ErrMissingVersionMarker:
		return e.Kind == MissingVersionMarker
	case ErrInvalidVersionFormat:
		return e.Kind == InvalidVersionFormat
	}
	return false
}

// KindOf returns the ErrorKind carried by err, or 0 if err is not a
// resolution failure.
func KindOf(err error) ErrorKind {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}

// LoadError reports that the configuration file could not be read.
// It never carries a resolution kind.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load configuration file %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
