package convention

import (
	"github.com/iancoleman/strcase"

	"recast/internal/match"
)

// casing implements the four pure casing styles. They share tokenization and
// scoring; only detection and rendering differ per style.
type casing struct {
	name   string
	detect func(string) bool
	render func(string) string
}

// CamelCase returns the camelCase convention (emailAddress).
func CamelCase() Convention {
	return casing{name: "camelCase", detect: isCamelCase, render: strcase.ToLowerCamel}
}

// PascalCase returns the PascalCase convention (EmailAddress).
func PascalCase() Convention {
	return casing{name: "PascalCase", detect: isPascalCase, render: strcase.ToCamel}
}

// SnakeCase returns the snake_case convention (email_address).
func SnakeCase() Convention {
	return casing{name: "snake_case", detect: isSnakeCase, render: strcase.ToSnake}
}

// KebabCase returns the kebab-case convention (email-address).
func KebabCase() Convention {
	return casing{name: "kebab-case", detect: isKebabCase, render: strcase.ToKebab}
}

func (c casing) Name() string { return c.name }

func (c casing) Matches(name string) bool {
	if name == "" {
		return false
	}

	return c.detect(name)
}

func (c casing) Normalize(name string) string {
	return canonical(name)
}

func (c casing) Denormalize(canonicalName string) string {
	if canonicalName == "" {
		return ""
	}

	return c.render(canonicalName)
}

func (c casing) Confidence(source, destination string) float64 {
	return tokenScore(match.CanonicalTokens(source), match.CanonicalTokens(destination))
}

// isCamelCase: starts with a lowercase letter, no separators. A single
// lowercase word is valid camelCase.
func isCamelCase(name string) bool {
	for i, r := range name {
		if i == 0 {
			if !isLower(r) {
				return false
			}

			continue
		}

		if !isLower(r) && !isUpper(r) && !isDigit(r) {
			return false
		}
	}

	return true
}

// isPascalCase: starts with an uppercase letter, no separators.
func isPascalCase(name string) bool {
	for i, r := range name {
		if i == 0 {
			if !isUpper(r) {
				return false
			}

			continue
		}

		if !isLower(r) && !isUpper(r) && !isDigit(r) {
			return false
		}
	}

	return true
}

// isSnakeCase: contains an underscore, everything lowercase.
func isSnakeCase(name string) bool {
	seen := false

	for _, r := range name {
		switch {
		case r == '_':
			seen = true
		case isLower(r) || isDigit(r):
		default:
			return false
		}
	}

	return seen
}

// isKebabCase: contains a hyphen, everything lowercase.
func isKebabCase(name string) bool {
	seen := false

	for _, r := range name {
		switch {
		case r == '-':
			seen = true
		case isLower(r) || isDigit(r):
		default:
			return false
		}
	}

	return seen
}
