package mapping

import (
	"errors"
	"fmt"
)

// File represents the root of a YAML profile definition file.
// This is the authoritative, human-reviewed mapping configuration.
type File struct {
	// Version of the profile schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Name of the profile this file defines.
	Name string `yaml:"profile,omitempty"`

	// Types declares destination type shapes so field names can be checked
	// and nested mappings resolved. Declaring types is optional; mappings
	// against undeclared types are duck-typed.
	Types map[string]FieldDefs `yaml:"types,omitempty"`

	// Mappings is a list of type pair mappings.
	Mappings []MappingDef `yaml:"mappings"`
}

// MappingDef defines how to map one source type to one target type.
type MappingDef struct {
	// Source type identifier (e.g., "Customer").
	Source string `yaml:"source"`

	// Target type identifier (e.g., "CustomerDto").
	Target string `yaml:"target"`

	// Bidirectional promotes the pair to a two-way mapping: Fields entries
	// become correspondences populating both directions.
	Bidirectional bool `yaml:"bidirectional,omitempty"`

	// Fields is a simplified mapping syntax where keys are target fields
	// and values are the source fields they are copied from.
	// Priority: highest (wins over ignore and auto).
	// Example: { "fullName": "name", "email": "emailAddress" }
	Fields map[string]string `yaml:"fields,omitempty"`

	// Ignore lists target fields that should not be mapped.
	// Priority: second (after fields).
	Ignore []string `yaml:"ignore,omitempty"`

	// Defaults assigns literal values to target fields whose source is
	// absent. A default attaches to whichever rule claims the field.
	Defaults map[string]any `yaml:"defaults,omitempty"`

	// Auto contains auto-matched fields from best-effort convention
	// matching, annotated with confidences for human review. Entries here
	// are overridden by fields or ignore.
	Auto []AutoMatch `yaml:"auto,omitempty"`
}

// AutoMatch is a convention-proposed field pairing with its confidence.
// The suggest workflow emits these for a human to promote into Fields.
type AutoMatch struct {
	// Target is the destination field the match fills.
	Target string `yaml:"target"`

	// Source is the matched source field.
	Source string `yaml:"source"`

	// Confidence is the match confidence in [0, 1].
	Confidence float64 `yaml:"confidence,omitempty"`

	// Convention names the convention that produced the match.
	Convention string `yaml:"convention,omitempty"`
}

// FieldDef declares a single field of a destination type.
// Type optionally names another declared type (or "[]T" for collections)
// to drive nested mapping.
type FieldDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
}

// FieldDefs is a list of field declarations that can be unmarshaled from
// several YAML shapes:
//   - Simple string: "email"
//   - Explicit object: {name: address, type: Address}
//   - Shorthand pair: {address: Address}
type FieldDefs []FieldDef

// Names returns just the field names.
func (f FieldDefs) Names() []string {
	result := make([]string, len(f))
	for i, def := range f {
		result[i] = def.Name
	}

	return result
}

// Get returns the definition for the named field.
func (f FieldDefs) Get(name string) (FieldDef, bool) {
	for _, def := range f {
		if def.Name == name {
			return def, true
		}
	}

	return FieldDef{}, false
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *FieldDefs) UnmarshalYAML(unmarshal func(any) error) error {
	var list []any
	if err := unmarshal(&list); err != nil {
		return err
	}

	result := make([]FieldDef, 0, len(list))

	for _, item := range list {
		switch v := item.(type) {
		case string:
			result = append(result, FieldDef{Name: v})
		case map[string]any:
			// Check if this is an explicit object definition (has "name" key)
			if nameVal, hasName := v["name"]; hasName {
				name, ok := nameVal.(string)
				if !ok {
					return errors.New("invalid field name, expected string")
				}

				def := FieldDef{Name: name}

				if typeVal, hasType := v["type"]; hasType {
					ts, ok := typeVal.(string)
					if !ok {
						return errors.New("invalid field type, expected string")
					}

					def.Type = ts
				}

				result = append(result, def)

				continue
			}

			// Fallback to Key-Value definition: { "fieldName": "fieldType" }
			if len(v) != 1 {
				return errors.New("invalid field definition, expected {name: type} or {name: ..., type: ...}")
			}

			for k, val := range v {
				ts, ok := val.(string)
				if !ok {
					return fmt.Errorf("invalid field type for %s, expected string", k)
				}

				result = append(result, FieldDef{Name: k, Type: ts})
			}
		default:
			return errors.New("expected string or map for field definition")
		}
	}

	*f = result

	return nil
}

// MarshalYAML implements yaml.Marshaler, emitting the compact form: a plain
// string for untyped fields, {name, type} for typed ones.
func (f FieldDefs) MarshalYAML() (any, error) {
	out := make([]any, len(f))

	for i, def := range f {
		if def.Type == "" {
			out[i] = def.Name
		} else {
			out[i] = map[string]string{"name": def.Name, "type": def.Type}
		}
	}

	return out, nil
}
