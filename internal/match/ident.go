package match

import (
	"strings"
	"unicode"
)

// CanonicalKey collapses an identifier into a style-agnostic comparison key.
// The pipeline:
// 1. Tokenize CamelCase runs (acronyms stay whole).
// 2. Join tokens and case-fold to lower.
// 3. Strip separators (_, -, spaces).
//
// "emailAddress", "email_address", "EMAIL-ADDRESS" all yield "emailaddress".
func CanonicalKey(s string) string {
	tokens := tokenizeCamelCase(s)

	joined := strings.Join(tokens, "")
	joined = strings.ToLower(joined)
	joined = stripSeparators(joined)

	return joined
}

// CanonicalTokens splits an identifier into its lowercase word tokens,
// preserving order: "dateOfBirth" -> ["date", "of", "birth"].
func CanonicalTokens(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// noiseSuffixes are trailing tokens that rarely change a field's identity
// (timestamps and key suffixes), ordered longest-first so partial overlaps
// trim correctly.
var noiseSuffixes = []string{"timestamp", "ids", "utc", "id", "at"}

// TrimNoiseSuffix removes one trailing noise token from an already-canonical
// key, so "orderid" and "order" compare as the same field. Keys consisting
// only of a noise token are returned unchanged.
func TrimNoiseSuffix(key string) string {
	for _, suffix := range noiseSuffixes {
		if strings.HasSuffix(key, suffix) && len(key) > len(suffix) {
			return strings.TrimSuffix(key, suffix)
		}
	}

	return key
}

// tokenizeCamelCase splits a CamelCase, camelCase, or separator-delimited
// string into word tokens.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "customerName" -> ["customer", "Name"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "order_id" -> ["order", "id"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		// Separators end the current token
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i == 0 {
			current.WriteRune(r)

			continue
		}

		if startsNewToken(runes, i) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isSeparator reports whether the rune delimits words in any supported naming
// style (snake, kebab, spaced).
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsNewToken reports whether a new word token begins at position i.
func startsNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prev)
	isPrevSep := isSeparator(prev)

	// lower-to-upper transition: "orderId" splits before 'I'
	if isUpper && !isPrevUpper && !isPrevSep {
		return true
	}

	// end of an acronym run: "XMLParser" splits before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
	if isUpper && isPrevUpper && hasNextLower {
		return true
	}

	return false
}

func stripSeparators(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if !isSeparator(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
