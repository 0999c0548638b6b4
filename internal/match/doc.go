// Package match provides identifier canonicalization, Levenshtein distance
// calculation, candidate ranking, and one-to-one assignment for
// convention-based field matching.
//
// Key functions:
//   - CanonicalKey: collapses an identifier to a style-agnostic comparison key
//   - Levenshtein: computes edit distance between strings
//   - RankCandidates: scores one destination field against all source fields
//   - Assign: greedy one-to-one pairing above a confidence threshold
package match
