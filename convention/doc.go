// Package convention provides pluggable naming-style detectors used to infer
// whether two differently spelled field names denote the same logical
// property.
//
// Each Convention can detect its own style (Matches), reduce a name to a
// style-agnostic canonical form (Normalize), render a canonical form back into
// its style (Denormalize), and score how likely two raw names are the same
// property (Confidence). Built-ins cover camelCase, PascalCase, snake_case,
// kebab-case, accessor prefixes (getUserName -> userName), Hungarian notation
// (strName -> name), and a static abbreviation table (dob -> dateOfBirth).
//
// Conventions never fail on malformed input: an unparseable name yields
// Matches == false and a confidence of 0.
package convention
