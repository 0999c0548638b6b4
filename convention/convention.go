package convention

import (
	"strings"

	"recast/internal/match"
)

// Convention is a naming-style detector and normalizer.
//
// Normalize produces the canonical form of a name: its lowercase word tokens
// joined by single spaces ("dateOfBirth" -> "date of birth"). The canonical
// form is an internal comparison key; Denormalize renders it back into the
// convention's own style.
//
// Confidence scores how likely source and destination denote the same logical
// property, independent of which style either name is written in. Scores are
// in [0, 1]; unparseable names score 0 and never cause an error.
type Convention interface {
	Name() string
	Matches(name string) bool
	Normalize(name string) string
	Denormalize(canonical string) string
	Confidence(source, destination string) float64
}

// DefaultSet returns the built-in conventions in their registration order:
// camelCase, PascalCase, snake_case, kebab-case, accessor prefixes,
// abbreviations, Hungarian notation.
func DefaultSet() []Convention {
	return []Convention{
		CamelCase(),
		PascalCase(),
		SnakeCase(),
		KebabCase(),
		Prefix(),
		Abbreviation(),
		HungarianNotation(),
	}
}

// canonical joins a name's lowercase word tokens with single spaces.
func canonical(name string) string {
	return strings.Join(match.CanonicalTokens(name), " ")
}

// tokenScore scores two canonical token lists.
//
// Identical lists score 1.0. When one list is a strict prefix of the other the
// shared leading tokens carry the property identity ("email" vs "email
// address") and the score is 0.8 + 0.2 * (shorter/longer), always at or above
// the default acceptance threshold. Otherwise the score falls back to
// normalized edit distance over the joined keys, taking the better of the
// plain keys and the noise-suffix-trimmed keys ("created" vs "createdAt").
//
// A trailing shared token does not get the prefix bonus: "contactEmail" vs
// "email" names a different identity qualified by "email", not the same one.
func tokenScore(src, dst []string) float64 {
	if len(src) == 0 || len(dst) == 0 {
		return 0
	}

	if tokensEqual(src, dst) {
		return 1.0
	}

	if ok, ratio := prefixRatio(src, dst); ok {
		return 0.8 + 0.2*ratio
	}

	srcKey := strings.Join(src, "")
	dstKey := strings.Join(dst, "")

	plain := match.LevenshteinNormalized(srcKey, dstKey)
	trimmed := match.LevenshteinNormalized(
		match.TrimNoiseSuffix(srcKey),
		match.TrimNoiseSuffix(dstKey),
	)

	return max(plain, trimmed)
}

func tokensEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// prefixRatio reports whether one token list is a strict prefix of the other,
// and the shorter/longer length ratio when it is.
func prefixRatio(a, b []string) (bool, float64) {
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}

	if len(short) == len(long) {
		return false, 0
	}

	for i := range short {
		if short[i] != long[i] {
			return false, 0
		}
	}

	return true, float64(len(short)) / float64(len(long))
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
