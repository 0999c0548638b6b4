package mapping

import "recast/record"

// Transform rewrites a source value before it is written to the destination
// field. It receives both the raw source value (the nil value when the source
// field is absent) and the full source record, so a transform can combine
// several source fields into one destination value.
type Transform func(value record.Value, source record.Record) (record.Value, error)

// Condition guards a property mapping: when it returns false the field is
// skipped (the default fills in if one is set).
type Condition func(source record.Record) bool

// PropertyMapping configures how one destination field is populated.
//
// Evaluation contract, per map call: Ignored short-circuits everything; a
// false Condition falls back to Default or leaves the field unset; a
// Transform result wins over a direct copy; Default fills in when the source
// field is absent. At most one of those paths determines the final value.
type PropertyMapping struct {
	// Destination is the destination field name. Non-empty, unique within
	// the owning TypeMapping.
	Destination string

	// Source is the source field name. Empty means "same name as
	// Destination" unless Ignored is set.
	Source string

	// Transform, when set, computes the destination value.
	Transform Transform

	// Condition, when set, gates the mapping of this field.
	Condition Condition

	// Default is written when the source field is absent or the condition
	// fails. Nil means no default.
	Default *record.Value

	// Ignored excludes the field from mapping entirely. An ignored field is
	// never populated, not even by convention inference.
	Ignored bool

	// declaredSource records that MapFrom was called, so Seal can reject
	// unspellable source names while still treating an unset Source as
	// same-name shorthand.
	declaredSource bool
}

// SourceField returns the effective source field name: the declared source,
// or the destination name when none was declared.
func (p *PropertyMapping) SourceField() string {
	if p.Source != "" {
		return p.Source
	}

	return p.Destination
}

// MemberBuilder configures a single PropertyMapping inside a ForMember call.
// All methods return the builder for chaining.
type MemberBuilder struct {
	member *PropertyMapping
}

// MapFrom sets the source field this destination field is read from.
func (b *MemberBuilder) MapFrom(source string) *MemberBuilder {
	b.member.Source = source
	b.member.declaredSource = true

	return b
}

// Using sets a transform that computes the destination value.
func (b *MemberBuilder) Using(t Transform) *MemberBuilder {
	b.member.Transform = t

	return b
}

// OnlyIf sets a condition; when it evaluates false the field is skipped.
func (b *MemberBuilder) OnlyIf(c Condition) *MemberBuilder {
	b.member.Condition = c

	return b
}

// Default sets the value used when the source field is absent or the
// condition fails.
func (b *MemberBuilder) Default(v record.Value) *MemberBuilder {
	b.member.Default = &v

	return b
}

// Ignore excludes this destination field from mapping entirely.
func (b *MemberBuilder) Ignore() *MemberBuilder {
	b.member.Ignored = true

	return b
}
