package mapping

import (
	"fmt"
	"strings"
)

// Correspondence pairs a field of type A with a field of type B. A single
// correspondence populates both directions of a bidirectional mapping: the
// forward direction maps FieldA into FieldB and the reverse maps FieldB back
// into FieldA.
type Correspondence struct {
	FieldA string
	FieldB string
}

// Bidirectional owns a forward (A -> B) and a reverse (B -> A) TypeMapping
// that share field correspondences. Correspondences are applied to both
// directions at Seal time, skipping any destination field that already has an
// explicitly configured member, so per-direction configuration always wins.
type Bidirectional struct {
	forward         *TypeMapping
	reverse         *TypeMapping
	correspondences []Correspondence
	sealed          bool
}

// NewBidirectional returns an unsealed bidirectional mapping between typeA
// and typeB.
func NewBidirectional(typeA, typeB string) *Bidirectional {
	return &Bidirectional{
		forward: NewTypeMapping(typeA, typeB),
		reverse: NewTypeMapping(typeB, typeA),
	}
}

// Forward returns the A -> B direction.
func (b *Bidirectional) Forward() *TypeMapping { return b.forward }

// Reverse returns the B -> A direction.
func (b *Bidirectional) Reverse() *TypeMapping { return b.reverse }

// Correspond declares that fieldA of type A and fieldB of type B denote the
// same logical property. At Seal time the pair auto-populates a direct-copy
// member in each direction that does not already configure the field.
func (b *Bidirectional) Correspond(fieldA, fieldB string) error {
	if b.sealed {
		return newSealedError(b.forward.source, b.forward.destination)
	}

	b.correspondences = append(b.correspondences, Correspondence{FieldA: fieldA, FieldB: fieldB})

	return nil
}

// ForwardMember configures a destination field of the forward (A -> B)
// direction; see TypeMapping.ForMember.
func (b *Bidirectional) ForwardMember(destination string, configure func(*MemberBuilder)) error {
	return b.forward.ForMember(destination, configure)
}

// ReverseMember configures a destination field of the reverse (B -> A)
// direction; see TypeMapping.ForMember.
func (b *Bidirectional) ReverseMember(destination string, configure func(*MemberBuilder)) error {
	return b.reverse.ForMember(destination, configure)
}

// Correspondences returns the declared field pairs.
func (b *Bidirectional) Correspondences() []Correspondence {
	return b.correspondences
}

// Seal validates the correspondence list, applies it to both directions, and
// seals them. Invalid correspondences — empty field names, a field paired
// with two different correspondents, or a pair fully shadowed by explicit
// members on both sides — are configuration errors.
func (b *Bidirectional) Seal() error {
	if b.sealed {
		return newSealedError(b.forward.source, b.forward.destination)
	}

	if err := b.validateCorrespondences(); err != nil {
		return err
	}

	seen := make(map[Correspondence]struct{}, len(b.correspondences))

	for _, c := range b.correspondences {
		if _, ok := seen[c]; ok {
			continue
		}

		seen[c] = struct{}{}

		applied := false

		if _, ok := b.forward.Member(c.FieldB); !ok {
			err := b.forward.ForMember(c.FieldB, func(m *MemberBuilder) {
				m.MapFrom(c.FieldA)
			})
			if err != nil {
				return err
			}

			applied = true
		}

		if _, ok := b.reverse.Member(c.FieldA); !ok {
			err := b.reverse.ForMember(c.FieldA, func(m *MemberBuilder) {
				m.MapFrom(c.FieldB)
			})
			if err != nil {
				return err
			}

			applied = true
		}

		if !applied {
			return newConfigError(b.forward.source, b.forward.destination, c.FieldA,
				fmt.Sprintf("invalid correspondence (%s, %s): both directions already configure these fields explicitly",
					c.FieldA, c.FieldB))
		}
	}

	if err := b.forward.Seal(); err != nil {
		return err
	}

	if err := b.reverse.Seal(); err != nil {
		return err
	}

	b.sealed = true

	return nil
}

func (b *Bidirectional) validateCorrespondences() error {
	byA := make(map[string]string, len(b.correspondences))
	byB := make(map[string]string, len(b.correspondences))

	for _, c := range b.correspondences {
		if strings.TrimSpace(c.FieldA) == "" || strings.TrimSpace(c.FieldB) == "" {
			return newConfigError(b.forward.source, b.forward.destination, "",
				"invalid correspondence: field names must be non-empty")
		}

		if prev, ok := byA[c.FieldA]; ok && prev != c.FieldB {
			return newConfigError(b.forward.source, b.forward.destination, c.FieldA,
				fmt.Sprintf("invalid correspondence: %q paired with both %q and %q", c.FieldA, prev, c.FieldB))
		}

		if prev, ok := byB[c.FieldB]; ok && prev != c.FieldA {
			return newConfigError(b.forward.source, b.forward.destination, c.FieldB,
				fmt.Sprintf("invalid correspondence: %q paired with both %q and %q", c.FieldB, prev, c.FieldA))
		}

		byA[c.FieldA] = c.FieldB
		byB[c.FieldB] = c.FieldA
	}

	return nil
}
