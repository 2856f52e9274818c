package resolver

import (
	"regexp"

	"github.com/indaco/recipekit/internal/semver"
)

var tokenRegex = regexp.MustCompile(`\S+`)

// RewriteVersion returns text with the value after VERSION in the first
// project() declaration replaced by version. Everything else, comments and
// formatting included, is preserved. The same error kinds as Resolve are
// reported, and version itself must be MAJOR.MINOR.PATCH[.TWEAK].
func RewriteVersion(source, text, version string) (string, error) {
	if source == "" {
		source = DefaultSource
	}
	if !semver.Valid(version) {
		return "", &ResolveError{Kind: InvalidVersionFormat, Source: source, Candidate: version}
	}

	// Comments are blanked in place, so offsets match the original text.
	stripped := stripComments(text)
	bodyStart, bodyEnd, ok := findDeclaration(stripped)
	if !ok {
		return "", &ResolveError{Kind: MissingDeclaration, Source: source}
	}
	body := stripped[bodyStart:bodyEnd]

	toks := tokenRegex.FindAllStringIndex(body, -1)
	for i, span := range toks {
		if body[span[0]:span[1]] != versionMarker {
			continue
		}
		if i+1 >= len(toks) {
			break
		}
		val := toks[i+1]
		start, end := bodyStart+val[0], bodyStart+val[1]
		return text[:start] + version + text[end:], nil
	}
	return "", &ResolveError{Kind: MissingVersionMarker, Source: source}
}
