package convention

import (
	"strings"

	"github.com/iancoleman/strcase"

	"recast/internal/match"
)

// builtinAbbreviations maps abbreviated tokens to their canonical expansions.
// The table is consulted before any edit-distance heuristic.
var builtinAbbreviations = map[string]string{
	"addr": "address",
	"amt":  "amount",
	"avg":  "average",
	"cnt":  "count",
	"desc": "description",
	"dob":  "date of birth",
	"idx":  "index",
	"msg":  "message",
	"num":  "number",
	"pwd":  "password",
	"qty":  "quantity",
	"tel":  "telephone",
	"usr":  "user",
}

type abbreviation struct {
	table   map[string]string // abbreviated token -> canonical expansion
	reverse map[string]string // canonical expansion -> abbreviated token
}

// Abbreviation returns the abbreviation convention backed by the built-in
// table: dob scores 1.0 against dateOfBirth, addr against address, and so on.
func Abbreviation() Convention {
	return AbbreviationWith(nil)
}

// AbbreviationWith returns an abbreviation convention whose table is the
// built-in one extended (or overridden) by extra entries. Keys are the
// abbreviated tokens; values may be written in any naming style.
func AbbreviationWith(extra map[string]string) Convention {
	table := make(map[string]string, len(builtinAbbreviations)+len(extra))
	for abbr, expansion := range builtinAbbreviations {
		table[strings.ToLower(abbr)] = canonical(expansion)
	}

	for abbr, expansion := range extra {
		table[strings.ToLower(abbr)] = canonical(expansion)
	}

	reverse := make(map[string]string, len(table))
	for abbr, expansion := range table {
		reverse[expansion] = abbr
	}

	return abbreviation{table: table, reverse: reverse}
}

func (a abbreviation) Name() string { return "abbreviation" }

// Matches reports whether any token of the name is a known abbreviation.
func (a abbreviation) Matches(name string) bool {
	for _, token := range match.CanonicalTokens(name) {
		if _, ok := a.table[token]; ok {
			return true
		}
	}

	return false
}

// Normalize expands every abbreviated token: "usrAddr" -> "user address".
func (a abbreviation) Normalize(name string) string {
	return strings.Join(a.expand(name), " ")
}

// Denormalize re-abbreviates a canonical form: the whole form first ("date of
// birth" -> "dob"), then token by token ("user address" -> "usrAddr").
func (a abbreviation) Denormalize(canonicalName string) string {
	if canonicalName == "" {
		return ""
	}

	if abbr, ok := a.reverse[canonicalName]; ok {
		return abbr
	}

	tokens := strings.Fields(canonicalName)
	for i, token := range tokens {
		if abbr, ok := a.reverse[token]; ok {
			tokens[i] = abbr
		}
	}

	return strcase.ToLowerCamel(strings.Join(tokens, " "))
}

func (a abbreviation) Confidence(source, destination string) float64 {
	return tokenScore(a.expand(source), a.expand(destination))
}

// expand replaces abbreviated tokens with their expansion tokens, leaving
// unknown tokens in place.
func (a abbreviation) expand(name string) []string {
	var out []string

	for _, token := range match.CanonicalTokens(name) {
		if expansion, ok := a.table[token]; ok {
			out = append(out, strings.Fields(expansion)...)

			continue
		}

		out = append(out, token)
	}

	return out
}
