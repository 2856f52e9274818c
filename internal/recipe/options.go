package recipe

import (
	"fmt"
	"sort"
	"strings"
)

// Option names as they appear in recipe files and -o overrides.
const (
	OptionUnittest           = "unittest"
	OptionEnableCompatHeader = "enable_compat_header"
)

// Options are the recipe's boolean build switches.
type Options struct {
	// Unittest declares test-framework requirements and builds the tests.
	Unittest bool
	// EnableCompatHeader is forwarded to CMake as ENABLE_COMPAT_HEADER.
	EnableCompatHeader bool
}

// DefaultOptions returns unittest on, compat header off.
func DefaultOptions() Options {
	return Options{Unittest: true, EnableCompatHeader: false}
}

// ParseSwitch parses a boolean option value. Besides true/false it accepts
// the ON/OFF, yes/no and 1/0 spellings, case-insensitively.
func ParseSwitch(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid option value %q: expected ON/OFF or true/false", s)
	}
}

// Switch renders a boolean the way CMake definitions expect it.
func Switch(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

// With returns a copy of o with name=value overrides applied.
// Unknown option names are rejected.
func (o Options) With(overrides []string) (Options, error) {
	out := o
	for _, raw := range overrides {
		name, value, ok := strings.Cut(raw, "=")
		if !ok {
			return o, fmt.Errorf("invalid option override %q: expected name=value", raw)
		}
		b, err := ParseSwitch(value)
		if err != nil {
			return o, fmt.Errorf("option %s: %w", name, err)
		}
		switch strings.TrimSpace(name) {
		case OptionUnittest:
			out.Unittest = b
		case OptionEnableCompatHeader:
			out.EnableCompatHeader = b
		default:
			return o, fmt.Errorf("unknown option %q (known: %s)", name, strings.Join(OptionNames(), ", "))
		}
	}
	return out, nil
}

// Map returns the options keyed by name.
func (o Options) Map() map[string]bool {
	return map[string]bool{
		OptionUnittest:           o.Unittest,
		OptionEnableCompatHeader: o.EnableCompatHeader,
	}
}

// OptionNames lists the known option names, sorted.
func OptionNames() []string {
	names := []string{OptionUnittest, OptionEnableCompatHeader}
	sort.Strings(names)
	return names
}
