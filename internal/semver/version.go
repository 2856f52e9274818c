package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version is a dotted-numeric project version: MAJOR.MINOR.PATCH with an
// optional fourth TWEAK component, as accepted by CMake's project(VERSION).
type Version struct {
	Major    int
	Minor    int
	Patch    int
	Tweak    int
	HasTweak bool
}

// Pattern is the textual form of a valid version, shown in error messages.
const Pattern = "MAJOR.MINOR.PATCH[.TWEAK]"

var (
	// strictRegex matches a whole token made of three or four dot-separated
	// unsigned integers.
	strictRegex = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:\.(\d+))?$`)

	// looseRegex matches the same shape anywhere inside a token.
	looseRegex = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)(?:\.(\d+))?`)

	// ErrInvalidVersion is returned when a string is not a dotted-numeric version.
	ErrInvalidVersion = errors.New("invalid version format")
)

// maxVersionLength guards the regex against pathological input.
const maxVersionLength = 128

// Valid reports whether s is exactly MAJOR.MINOR.PATCH[.TWEAK].
func Valid(s string) bool {
	return len(s) <= maxVersionLength && strictRegex.MatchString(s)
}

// ContainsVersion reports whether s contains a MAJOR.MINOR.PATCH[.TWEAK]
// sequence anywhere, e.g. "v1.2.3-rc1".
func ContainsVersion(s string) bool {
	return len(s) <= maxVersionLength && looseRegex.MatchString(s)
}

// ParseVersion parses a strict dotted-numeric version.
//
// Supported formats:
//   - "1.2.3"
//   - "1.2.3.4"
//
// Surrounding whitespace is ignored. Prefixes such as "v" are rejected.
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxVersionLength {
		return Version{}, fmt.Errorf("%w: version string exceeds maximum length of %d", ErrInvalidVersion, maxVersionLength)
	}

	m := strictRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q does not match %s", ErrInvalidVersion, trimmed, Pattern)
	}
	return fromMatch(m)
}

// ExtractVersion returns the first dotted-numeric version found inside s.
func ExtractVersion(s string) (Version, error) {
	if len(s) > maxVersionLength {
		return Version{}, fmt.Errorf("%w: version string exceeds maximum length of %d", ErrInvalidVersion, maxVersionLength)
	}
	m := looseRegex.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("%w: no %s found in %q", ErrInvalidVersion, Pattern, s)
	}
	return fromMatch(m)
}

func fromMatch(m []string) (Version, error) {
	var v Version
	parts := []*int{&v.Major, &v.Minor, &v.Patch}
	names := []string{"major", "minor", "patch"}
	for i, dst := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Version{}, fmt.Errorf("%w: invalid %s version: %s", ErrInvalidVersion, names[i], err.Error())
		}
		*dst = n
	}
	if m[4] != "" {
		n, err := strconv.Atoi(m[4])
		if err != nil {
			return Version{}, fmt.Errorf("%w: invalid tweak version: %s", ErrInvalidVersion, err.Error())
		}
		v.Tweak = n
		v.HasTweak = true
	}
	return v, nil
}

// String returns the dotted form of the version.
func (v Version) String() string {
	var sb strings.Builder
	sb.Grow(16)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	if v.HasTweak {
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(v.Tweak))
	}
	return sb.String()
}

// Compare returns -1, 0 or +1. A version without a tweak component sorts
// before the same version with tweak 0 (1.2.3 < 1.2.3.0).
func (v Version) Compare(other Version) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, other.Patch); c != 0 {
		return c
	}
	switch {
	case !v.HasTweak && !other.HasTweak:
		return 0
	case !v.HasTweak:
		return -1
	case !other.HasTweak:
		return 1
	default:
		return compareInt(v.Tweak, other.Tweak)
	}
}

// Bump increments the component named by label and resets the lower ones.
//
// Supported labels:
//   - "major": 1.2.3 -> 2.0.0
//   - "minor": 1.2.3 -> 1.3.0
//   - "patch": 1.2.3 -> 1.2.4
//   - "tweak": 1.2.3 -> 1.2.3.1, 1.2.3.4 -> 1.2.3.5
//
// A tweak component is kept (reset to 0) on major/minor/patch bumps.
func (v Version) Bump(label string) (Version, error) {
	next := v
	switch label {
	case "major":
		next = Version{Major: v.Major + 1, HasTweak: v.HasTweak}
	case "minor":
		next = Version{Major: v.Major, Minor: v.Minor + 1, HasTweak: v.HasTweak}
	case "patch":
		next = Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1, HasTweak: v.HasTweak}
	case "tweak":
		next.Tweak = v.Tweak + 1
		next.HasTweak = true
	default:
		return Version{}, fmt.Errorf("invalid bump label: %s", label)
	}
	return next, nil
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
