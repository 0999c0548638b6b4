package record

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// FromNative converts a native Go value into a Value. String-keyed maps become
// records, slices and arrays become lists, and everything else is wrapped as a
// scalar. Values already in record form pass through unchanged.
func FromNative(v any) Value {
	switch t := v.(type) {
	case nil:
		return Nil()
	case Value:
		return t
	case Record:
		return Of(t)
	case List:
		return OfList(t)
	case map[string]any:
		return Of(FromMap(t))
	case []any:
		l := make(List, len(t))
		for i, e := range t {
			l[i] = FromNative(e)
		}

		return OfList(l)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Scalar(v)
		}

		r := make(Record, rv.Len())
		for _, key := range rv.MapKeys() {
			r[key.String()] = FromNative(rv.MapIndex(key).Interface())
		}

		return Of(r)
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// []byte stays a scalar
			return Scalar(v)
		}

		l := make(List, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			l[i] = FromNative(rv.Index(i).Interface())
		}

		return OfList(l)
	default:
		return Scalar(v)
	}
}

// Native converts the value back into plain Go data: records become
// map[string]any, lists become []any, scalars are returned verbatim and the
// nil value becomes nil.
func (v Value) Native() any {
	switch v.kind {
	case KindNil:
		return nil
	case KindScalar:
		return v.scalar
	case KindRecord:
		return v.record.ToMap()
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Native()
		}

		return out
	}

	return nil
}

// FromMap converts a string-keyed map into a Record, converting values
// recursively.
func FromMap(m map[string]any) Record {
	r := make(Record, len(m))
	for name, v := range m {
		r[name] = FromNative(v)
	}

	return r
}

// ToMap converts the record into a plain map[string]any, recursively.
func (r Record) ToMap() map[string]any {
	out := make(map[string]any, len(r))
	for name, v := range r {
		out[name] = v.Native()
	}

	return out
}

// FromStruct hydrates a Record from a struct (or struct pointer) using
// mapstructure field naming, so `mapstructure:"user_id"` tags control the
// resulting field names. Nested structs and slices convert recursively.
func FromStruct(src any) (Record, error) {
	if src == nil {
		return nil, fmt.Errorf("record: cannot hydrate from nil")
	}

	var raw map[string]any
	if err := mapstructure.Decode(src, &raw); err != nil {
		return nil, fmt.Errorf("record: hydrating %T: %w", src, err)
	}

	return FromMap(raw), nil
}

// Decode writes the record's fields into out (a struct pointer) using
// mapstructure, the inverse of FromStruct.
func (r Record) Decode(out any) error {
	if err := mapstructure.Decode(r.ToMap(), out); err != nil {
		return fmt.Errorf("record: decoding into %T: %w", out, err)
	}

	return nil
}
