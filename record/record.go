package record

import "sort"

// Record is a field record: an unordered mapping from field name to Value.
// Record is the unit the mapper consumes and produces; it carries no schema
// beyond the fields actually present.
type Record map[string]Value

// New returns an empty record.
func New() Record {
	return Record{}
}

// Get returns the value of a field and whether the field is present.
func (r Record) Get(field string) (Value, bool) {
	v, ok := r[field]

	return v, ok
}

// Set stores a field value, replacing any previous value.
func (r Record) Set(field string, v Value) {
	r[field] = v
}

// Has reports whether the field is present.
func (r Record) Has(field string) bool {
	_, ok := r[field]

	return ok
}

// Delete removes a field if present.
func (r Record) Delete(field string) {
	delete(r, field)
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r)
}

// Fields returns the field names in sorted order for determinism.
func (r Record) Fields() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	out := make(Record, len(r))
	for name, v := range r {
		out[name] = v.Clone()
	}

	return out
}

// Merge returns a new record holding r's fields overlaid with other's fields;
// on conflict other wins. Both inputs are left untouched.
func (r Record) Merge(other Record) Record {
	out := r.Clone()
	if out == nil {
		out = New()
	}

	for name, v := range other {
		out[name] = v.Clone()
	}

	return out
}

// Equal reports deep field-wise equality.
func (r Record) Equal(other Record) bool {
	if len(r) != len(other) {
		return false
	}

	for name, v := range r {
		ov, ok := other[name]
		if !ok || !v.Equal(ov) {
			return false
		}
	}

	return true
}

// GetString returns a string field value.
func (r Record) GetString(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}

	return v.AsString()
}

// GetInt returns an integer field value.
func (r Record) GetInt(field string) (int64, bool) {
	v, ok := r[field]
	if !ok {
		return 0, false
	}

	return v.AsInt()
}

// GetFloat returns a numeric field value as float64.
func (r Record) GetFloat(field string) (float64, bool) {
	v, ok := r[field]
	if !ok {
		return 0, false
	}

	return v.AsFloat()
}

// GetBool returns a boolean field value.
func (r Record) GetBool(field string) (bool, bool) {
	v, ok := r[field]
	if !ok {
		return false, false
	}

	return v.AsBool()
}

// GetRecord returns a nested record field value.
func (r Record) GetRecord(field string) (Record, bool) {
	v, ok := r[field]
	if !ok {
		return nil, false
	}

	return v.Record()
}

// GetList returns a list field value.
func (r Record) GetList(field string) (List, bool) {
	v, ok := r[field]
	if !ok {
		return nil, false
	}

	return v.List()
}
