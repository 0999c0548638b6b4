// Package diagnostic provides structured errors, warnings, and infos
// accumulated while validating mapping profiles.
//
// Key capabilities:
//   - Unknown field and unknown type reports
//   - Conflicting member declarations
//   - Close-spelling suggestions for misspelled field names
package diagnostic
