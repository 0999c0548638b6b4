package recast

import (
	"fmt"
	"strings"

	"recast/cache"
	"recast/mapping"
	"recast/record"
)

// Map maps a source record to a new record of the destination type. The
// source type is inferred: the single registered mapping targeting the
// destination type decides it, otherwise the record is treated as an
// anonymous shape.
//
// Mapping is best-effort: destination fields no rule can fill are left unset
// and reported in the plan, not as errors. Errors mean a broken
// configuration, an unresolvable type pair or a failed transform.
func (m *Mapper) Map(source record.Record, destinationType string) (record.Record, error) {
	return m.mapRecord(source, "", destinationType, nil, 0)
}

// MapAs is Map with an explicitly declared source type, for when several
// mappings target the same destination type.
func (m *Mapper) MapAs(source record.Record, sourceType, destinationType string) (record.Record, error) {
	return m.mapRecord(source, sourceType, destinationType, nil, 0)
}

// MapTo maps a source record onto a copy of an existing destination record:
// resolved fields are overwritten, fields no rule fills keep their existing
// values. The existing record itself is never modified.
func (m *Mapper) MapTo(source record.Record, destinationType string, existing record.Record) (record.Record, error) {
	return m.mapRecord(source, "", destinationType, existing, 0)
}

// MapToAs is MapTo with an explicitly declared source type.
func (m *Mapper) MapToAs(source record.Record, sourceType, destinationType string, existing record.Record) (record.Record, error) {
	return m.mapRecord(source, sourceType, destinationType, existing, 0)
}

// MapArray maps each source record to the destination type, preserving
// order. The first failing element aborts the call; its error names the
// element index. An empty input yields an empty output.
func (m *Mapper) MapArray(sources []record.Record, destinationType string) ([]record.Record, error) {
	return m.MapArrayAs(sources, "", destinationType)
}

// MapArrayAs is MapArray with an explicitly declared source type.
func (m *Mapper) MapArrayAs(sources []record.Record, sourceType, destinationType string) ([]record.Record, error) {
	out := make([]record.Record, 0, len(sources))

	for i, source := range sources {
		mapped, err := m.mapRecord(source, sourceType, destinationType, nil, 0)
		if err != nil {
			return nil, fmt.Errorf("mapping element %d of %s: %w", i, destinationType, err)
		}

		out = append(out, mapped)
	}

	return out, nil
}

func (m *Mapper) mapRecord(source record.Record, sourceType, destinationType string, existing record.Record, depth int) (record.Record, error) {
	if source == nil {
		source = record.New()
	}

	if sourceType == "" {
		inferred, err := m.inferSourceType(source, destinationType)
		if err != nil {
			return nil, err
		}

		sourceType = inferred
	}

	plan, tm, err := m.planFor(source, sourceType, destinationType)
	if err != nil {
		return nil, err
	}

	out := record.New()
	if existing != nil {
		out = existing.Clone()
	}

	fieldTypes := m.registry.fieldTypes(destinationType)

	for _, pair := range plan.Pairs {
		if err := m.applyPair(pair, tm, fieldTypes, source, out, depth); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// applyPair writes one resolved destination field. Unfillable outcomes leave
// the field alone, which for MapTo means the existing value survives.
func (m *Mapper) applyPair(pair cache.Pair, tm *mapping.TypeMapping, fieldTypes map[string]string, source, out record.Record, depth int) error {
	switch pair.Origin {
	case cache.OriginIgnored:
		return nil

	case cache.OriginExplicit, cache.OriginDefault:
		mem, ok := tm.Member(pair.Destination)
		if !ok {
			return nil
		}

		return m.applyMember(mem, tm, fieldTypes, source, out, depth)

	default:
		raw, ok := source.Get(pair.Source)
		if !ok {
			return nil
		}

		value, err := m.nestValue(raw.Clone(), fieldTypes[pair.Destination], depth)
		if err != nil {
			return err
		}

		out.Set(pair.Destination, value)

		return nil
	}
}

// applyMember evaluates one configured member: condition gate, then
// transform, then direct copy, then default. A transform runs even when the
// declared source field is absent (it receives the nil value) and its result
// is written as-is, with no nested recursion.
func (m *Mapper) applyMember(mem *mapping.PropertyMapping, tm *mapping.TypeMapping, fieldTypes map[string]string, source, out record.Record, depth int) error {
	if mem.Condition != nil && !mem.Condition(source) {
		if mem.Default != nil {
			out.Set(mem.Destination, mem.Default.Clone())
		}

		return nil
	}

	raw, present := source.Get(mem.SourceField())

	if mem.Transform != nil {
		value, err := mem.Transform(raw, source)
		if err != nil {
			return &mapping.Error{
				Kind:            mapping.KindTransform,
				SourceType:      tm.SourceType(),
				DestinationType: tm.DestinationType(),
				Field:           mem.Destination,
				Err:             err,
			}
		}

		out.Set(mem.Destination, value)

		return nil
	}

	if present {
		value, err := m.nestValue(raw.Clone(), fieldTypes[mem.Destination], depth)
		if err != nil {
			return err
		}

		out.Set(mem.Destination, value)

		return nil
	}

	if mem.Default != nil {
		out.Set(mem.Destination, mem.Default.Clone())
	}

	return nil
}

// nestValue recurses into record values whose destination field declares a
// mappable type. Values of undeclared or unmappable types, and non-record
// values, pass through unchanged. Recursion stops at the configured depth
// bound.
func (m *Mapper) nestValue(v record.Value, fieldType string, depth int) (record.Value, error) {
	if fieldType == "" {
		return v, nil
	}

	if elem, isList := strings.CutPrefix(fieldType, "[]"); isList {
		list, ok := v.List()
		if !ok {
			return v, nil
		}

		out := make(record.List, len(list))
		for i, item := range list {
			nested, err := m.nestValue(item, elem, depth)
			if err != nil {
				return record.Nil(), fmt.Errorf("element %d: %w", i, err)
			}

			out[i] = nested
		}

		return record.OfList(out), nil
	}

	rec, ok := v.Record()
	if !ok {
		return v, nil
	}

	if !m.recursable(fieldType) {
		return v, nil
	}

	if m.maxDepth > 0 && depth >= m.maxDepth {
		return v, nil
	}

	mapped, err := m.mapRecord(rec, "", fieldType, nil, depth+1)
	if err != nil {
		return record.Nil(), err
	}

	return record.Of(mapped), nil
}
