package resolver

import (
	"regexp"
	"strings"
)

// declarationRegex finds `project` (not as the tail of a longer identifier),
// optional whitespace and a parenthesised body up to the first ')'.
var declarationRegex = regexp.MustCompile(`(?:^|[^A-Za-z0-9_])project\s*\(([^)]*)\)`)

// versionMarker is the literal token that precedes the version value.
const versionMarker = "VERSION"

// Declaration is the parsed body of a project(...) statement.
type Declaration struct {
	// Name is the first body token (the CMake project name), if any.
	Name string
	// Body is the raw text between the parentheses.
	Body string
	// Tokens is Body split on whitespace.
	Tokens []string
}

// ParseDeclaration returns the first project(...) declaration in text.
// Comments and quoted arguments of other commands are ignored.
func ParseDeclaration(text string) (*Declaration, error) {
	stripped := stripComments(text)
	bodyStart, bodyEnd, ok := findDeclaration(stripped)
	if !ok {
		return nil, &ResolveError{Kind: MissingDeclaration, Source: DefaultSource}
	}

	body := stripped[bodyStart:bodyEnd]
	d := &Declaration{Body: body, Tokens: strings.Fields(body)}
	if len(d.Tokens) > 0 {
		d.Name = d.Tokens[0]
	}
	return d, nil
}

// VersionToken returns the token following the first VERSION marker.
func (d *Declaration) VersionToken() (string, bool) {
	for i, tok := range d.Tokens {
		if tok != versionMarker {
			continue
		}
		if i+1 >= len(d.Tokens) {
			return "", false
		}
		return d.Tokens[i+1], true
	}
	return "", false
}

// findDeclaration returns the body offsets of the first declaration in
// comment-stripped text. Quoted arguments are masked while searching so a
// "project(" inside a string is never taken.
func findDeclaration(stripped string) (start, end int, ok bool) {
	m := declarationRegex.FindStringSubmatchIndex(blank(stripped, true))
	if m == nil {
		return 0, 0, false
	}
	return m[2], m[3], true
}

// stripComments blanks CMake comments so a commented-out project() is not
// matched. Line comments run from '#' to end of line; bracket comments are
// #[[ ... ]]. Quoted arguments are left untouched.
func stripComments(text string) string {
	return blank(text, false)
}

// blank replaces comments, and the contents of quoted arguments when
// quotes is set, with spaces. Newlines and quote marks are kept so
// offsets stay stable.
func blank(text string, quotes bool) string {
	if !strings.Contains(text, "#") && (!quotes || !strings.Contains(text, `"`)) {
		return text
	}

	out := []byte(text)
	mask := func(i int) {
		if quotes && out[i] != '\n' {
			out[i] = ' '
		}
	}
	inQuote := false
	for i := 0; i < len(out); i++ {
		c := out[i]
		switch {
		case inQuote:
			if c == '\\' {
				mask(i)
				if i+1 < len(out) {
					i++
					mask(i)
				}
			} else if c == '"' {
				inQuote = false
			} else {
				mask(i)
			}
		case c == '"':
			inQuote = true
		case c == '#':
			end := commentEnd(text, i)
			for j := i; j < end; j++ {
				if out[j] != '\n' {
					out[j] = ' '
				}
			}
			i = end - 1
		}
	}
	return string(out)
}

// commentEnd returns the index just past the comment starting at i.
func commentEnd(text string, i int) int {
	if strings.HasPrefix(text[i:], "#[[") {
		if j := strings.Index(text[i+3:], "]]"); j >= 0 {
			return i + 3 + j + 2
		}
		return len(text)
	}
	if j := strings.IndexByte(text[i:], '\n'); j >= 0 {
		return i + j
	}
	return len(text)
}
