package convention

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"

	"recast/internal/match"
)

// prefixed strips a known leading marker (accessor verbs or Hungarian type
// tags) before comparing names, so getUserName and userName, or strName and
// name, score as the same property.
type prefixed struct {
	name     string
	prefixes []string
	render   func(string) string
}

// Prefix returns the accessor-prefix convention: names carrying get/set/is/has
// verbs compare equal to their bare property name (getUserName -> userName).
func Prefix() Convention {
	p := prefixed{
		name:     "prefix",
		prefixes: []string{"get", "set", "is", "has"},
	}
	p.render = func(canonicalName string) string {
		return "get" + strcase.ToCamel(canonicalName)
	}

	return p
}

// HungarianNotation returns the Hungarian-notation convention: a leading type
// tag is ignored when comparing (strName -> name). Denormalize renders the
// bare lowerCamel name; the type tag cannot be reconstructed from the name
// alone.
func HungarianNotation() Convention {
	p := prefixed{
		name:     "hungarian",
		prefixes: []string{"str", "int", "num", "flt", "dbl", "bln", "bool", "arr", "lst", "obj", "ch", "sz"},
		render:   strcase.ToLowerCamel,
	}

	return p
}

func (p prefixed) Name() string { return p.name }

// Matches reports whether the name starts with one of the known markers
// followed by an uppercase letter, the shape that distinguishes "getUser"
// from plain words like "settings".
func (p prefixed) Matches(name string) bool {
	_, ok := p.strip(name)

	return ok
}

func (p prefixed) Normalize(name string) string {
	if bare, ok := p.strip(name); ok {
		return canonical(bare)
	}

	return canonical(name)
}

func (p prefixed) Denormalize(canonicalName string) string {
	if canonicalName == "" {
		return ""
	}

	return p.render(canonicalName)
}

func (p prefixed) Confidence(source, destination string) float64 {
	return tokenScore(p.bareTokens(source), p.bareTokens(destination))
}

func (p prefixed) bareTokens(name string) []string {
	if bare, ok := p.strip(name); ok {
		return match.CanonicalTokens(bare)
	}

	return match.CanonicalTokens(name)
}

// strip removes the longest matching marker, requiring an uppercase rune
// right after it so ordinary words never lose their head.
func (p prefixed) strip(name string) (string, bool) {
	best := ""

	for _, prefix := range p.prefixes {
		if len(prefix) <= len(best) || !strings.HasPrefix(name, prefix) {
			continue
		}

		rest := name[len(prefix):]
		if rest == "" {
			continue
		}

		if unicode.IsUpper([]rune(rest)[0]) {
			best = prefix
		}
	}

	if best == "" {
		return name, false
	}

	return name[len(best):], true
}
