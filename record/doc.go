// Package record provides the dynamically typed field records exchanged at the
// mapper boundary: a Value is a scalar, a Record (string-keyed fields), or a
// List, and conversion helpers translate between records and native Go values.
//
// Key types:
//   - Value: tagged variant over scalar / record / list
//   - Record: a field-name -> Value map with typed getters
//   - FromNative / FromStruct: boundary conversion into records
package record
