package recast

import (
	"fmt"
	"reflect"
	"strings"
)

// Field declares one field of a registered type: its name as it appears in
// records, and optionally the type of its value. A Type naming another
// registered type ("Address") or a list of one ("[]OrderLine") makes the
// mapper recurse into nested records for that field; an empty Type means the
// value is copied as-is.
type Field struct {
	Name string
	Type string
}

// Fields builds an untyped field list from plain names.
func Fields(names ...string) []Field {
	out := make([]Field, len(names))
	for i, name := range names {
		out[i] = Field{Name: name}
	}

	return out
}

// typeRegistry holds the declared field sets the mapper consults when it
// needs a type's shape: destination fields to fill by inference, source
// fields and their declaration order, nested field types for recursion.
// Registration happens during the single-writer configuration phase; map-time
// lookups are read-only.
type typeRegistry struct {
	fields map[string][]Field
}

func newTypeRegistry() *typeRegistry {
	return &typeRegistry{fields: make(map[string][]Field)}
}

// register declares (or redeclares) a type's field set.
func (r *typeRegistry) register(name string, fields []Field) {
	r.fields[name] = fields
}

// lookup returns the declared fields of a type in declaration order.
func (r *typeRegistry) lookup(name string) ([]Field, bool) {
	fields, ok := r.fields[name]

	return fields, ok
}

// names returns the declared field names of a type in declaration order.
func (r *typeRegistry) names(name string) []string {
	fields, ok := r.fields[name]
	if !ok {
		return nil
	}

	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}

	return out
}

// fieldTypes returns the declared field-name to field-type index of a type.
// Untyped fields are absent from the result.
func (r *typeRegistry) fieldTypes(name string) map[string]string {
	fields, ok := r.fields[name]
	if !ok {
		return nil
	}

	out := make(map[string]string, len(fields))
	for _, f := range fields {
		if f.Type != "" {
			out[f.Name] = f.Type
		}
	}

	return out
}

// structFields introspects a struct type (or pointer to one) into a Field
// list, honoring mapstructure tags the same way record.FromStruct does.
// Struct-typed fields carry their Go type name, slices of structs carry
// "[]Name", so nested types registered under their Go names recurse
// automatically.
func structFields(sample any) ([]Field, error) {
	if sample == nil {
		return nil, fmt.Errorf("cannot introspect nil")
	}

	t := reflect.TypeOf(sample)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot introspect %s, expected a struct", t.Kind())
	}

	fields := make([]Field, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := sf.Name
		if tag := sf.Tag.Get("mapstructure"); tag != "" {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}

			if tagName != "" {
				name = tagName
			}
		}

		fields = append(fields, Field{Name: name, Type: fieldTypeName(sf.Type)})
	}

	return fields, nil
}

func fieldTypeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr:
		return fieldTypeName(t.Elem())
	case reflect.Struct:
		return t.Name()
	case reflect.Slice, reflect.Array:
		elem := fieldTypeName(t.Elem())
		if elem == "" {
			return ""
		}

		return "[]" + elem
	default:
		return ""
	}
}
