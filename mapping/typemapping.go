package mapping

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TypeMapping is the ordered set of property mappings for one
// (source type, destination type) pair.
//
// A TypeMapping is built through ForMember calls and finalized with Seal.
// Sealing is one-way: configuration methods on a sealed mapping return a
// configuration error, and Seal itself may only be called once. Members keep
// their insertion order, so repeated map calls evaluate fields
// deterministically.
type TypeMapping struct {
	source      string
	destination string
	members     *orderedmap.OrderedMap[string, *PropertyMapping]
	sealed      bool
}

// NewTypeMapping returns an unsealed mapping for the given type pair.
func NewTypeMapping(source, destination string) *TypeMapping {
	return &TypeMapping{
		source:      source,
		destination: destination,
		members:     orderedmap.New[string, *PropertyMapping](),
	}
}

// SourceType returns the source type identifier.
func (t *TypeMapping) SourceType() string { return t.source }

// DestinationType returns the destination type identifier.
func (t *TypeMapping) DestinationType() string { return t.destination }

// Sealed reports whether the mapping has been finalized.
func (t *TypeMapping) Sealed() bool { return t.sealed }

// ForMember opens a builder for one destination field. The configure callback
// receives a MemberBuilder whose MapFrom/Using/OnlyIf/Default/Ignore calls
// shape the property mapping. Configuring the same destination field twice
// replaces the earlier member in place, keeping its original position.
func (t *TypeMapping) ForMember(destination string, configure func(*MemberBuilder)) error {
	if t.sealed {
		return newSealedError(t.source, t.destination)
	}

	if strings.TrimSpace(destination) == "" {
		return newConfigError(t.source, t.destination, destination,
			"destination field name must be non-empty")
	}

	member, ok := t.members.Get(destination)
	if ok {
		// Reconfiguring replaces in place, keeping the original position.
		*member = PropertyMapping{Destination: destination}
	} else {
		member = &PropertyMapping{Destination: destination}
		t.members.Set(destination, member)
	}

	if configure != nil {
		configure(&MemberBuilder{member: member})
	}

	return nil
}

// Member returns the property mapping for a destination field, if configured.
func (t *TypeMapping) Member(destination string) (*PropertyMapping, bool) {
	return t.members.Get(destination)
}

// Members returns the property mappings in configuration order.
func (t *TypeMapping) Members() []*PropertyMapping {
	out := make([]*PropertyMapping, 0, t.members.Len())
	for pair := t.members.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}

	return out
}

// Len returns the number of configured members.
func (t *TypeMapping) Len() int { return t.members.Len() }

// Seal finalizes the mapping. It validates that every declared source field
// name is spellable (non-empty after trimming); whether the field exists on a
// live source record is deliberately left to map time, since records are
// duck-typed. Sealing twice is a configuration error.
func (t *TypeMapping) Seal() error {
	if t.sealed {
		return newSealedError(t.source, t.destination)
	}

	for pair := t.members.Oldest(); pair != nil; pair = pair.Next() {
		m := pair.Value
		if m.declaredSource && strings.TrimSpace(m.Source) == "" {
			return newConfigError(t.source, t.destination, m.Destination,
				"declared source field name must be non-empty")
		}
	}

	t.sealed = true

	return nil
}
