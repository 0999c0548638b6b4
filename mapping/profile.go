package mapping

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Profile is a named, ordered bundle of type mappings. Profiles group related
// configuration so it can be registered with a mapper in one call; after
// Seal the bundle is immutable.
type Profile struct {
	name     string
	mappings *orderedmap.OrderedMap[string, *TypeMapping]
	bidis    []*Bidirectional
	sealed   bool
}

// NewProfile returns an empty profile with the given name.
func NewProfile(name string) *Profile {
	return &Profile{
		name:     name,
		mappings: orderedmap.New[string, *TypeMapping](),
	}
}

// Name returns the profile name.
func (p *Profile) Name() string { return p.name }

// Sealed reports whether the profile has been sealed.
func (p *Profile) Sealed() bool { return p.sealed }

// CreateMap registers and returns a mapping for the given type pair. Calling
// it again for the same pair returns the previously created mapping, so
// configuration can be split across call sites. Returns nil once the profile
// is sealed and the pair is unknown.
func (p *Profile) CreateMap(source, destination string) *TypeMapping {
	key := typePair(source, destination)
	if existing, ok := p.mappings.Get(key); ok {
		return existing
	}

	if p.sealed {
		return nil
	}

	tm := NewTypeMapping(source, destination)
	p.mappings.Set(key, tm)

	return tm
}

// CreateMapBidirectional registers a bidirectional mapping between typeA and
// typeB, claiming both directed pairs, and returns it for configuration.
// Returns nil if the profile is sealed or either direction is already taken.
func (p *Profile) CreateMapBidirectional(typeA, typeB string) *Bidirectional {
	b := NewBidirectional(typeA, typeB)
	if err := p.AddBidirectional(b); err != nil {
		return nil
	}

	return b
}

// AddTypeMapping adds an externally built mapping to the profile. The type
// pair must not already be present.
func (p *Profile) AddTypeMapping(tm *TypeMapping) error {
	if p.sealed {
		return newSealedError(tm.SourceType(), tm.DestinationType())
	}

	key := typePair(tm.SourceType(), tm.DestinationType())
	if _, ok := p.mappings.Get(key); ok {
		return newConfigError(tm.SourceType(), tm.DestinationType(), "",
			fmt.Sprintf("duplicate mapping for type pair %s", key))
	}

	p.mappings.Set(key, tm)

	return nil
}

// AddBidirectional adds a bidirectional mapping, claiming both directed type
// pairs.
func (p *Profile) AddBidirectional(b *Bidirectional) error {
	if p.sealed {
		return newSealedError(b.forward.SourceType(), b.forward.DestinationType())
	}

	for _, tm := range []*TypeMapping{b.forward, b.reverse} {
		key := typePair(tm.SourceType(), tm.DestinationType())
		if _, ok := p.mappings.Get(key); ok {
			return newConfigError(tm.SourceType(), tm.DestinationType(), "",
				fmt.Sprintf("duplicate mapping for type pair %s", key))
		}
	}

	p.mappings.Set(typePair(b.forward.SourceType(), b.forward.DestinationType()), b.forward)
	p.mappings.Set(typePair(b.reverse.SourceType(), b.reverse.DestinationType()), b.reverse)
	p.bidis = append(p.bidis, b)

	return nil
}

// Mapping returns the mapping registered for the directed type pair, if any.
func (p *Profile) Mapping(source, destination string) (*TypeMapping, bool) {
	return p.mappings.Get(typePair(source, destination))
}

// Mappings returns every registered mapping in declaration order, with
// bidirectional mappings contributing their forward then reverse direction.
func (p *Profile) Mappings() []*TypeMapping {
	out := make([]*TypeMapping, 0, p.mappings.Len())
	for pair := p.mappings.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}

	return out
}

// Len returns the number of directed type pairs in the profile.
func (p *Profile) Len() int { return p.mappings.Len() }

// SealMappings applies pending bidirectional correspondences and seals every
// mapping in the profile, without freezing the profile itself: new type pairs
// may still be added afterwards. Already sealed mappings are left as they
// are, so sealing is idempotent at the profile level.
func (p *Profile) SealMappings() error {
	for _, b := range p.bidis {
		if b.sealed {
			continue
		}

		if err := b.Seal(); err != nil {
			return err
		}
	}

	for pair := p.mappings.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Sealed() {
			continue
		}

		if err := pair.Value.Seal(); err != nil {
			return err
		}
	}

	return nil
}

// Seal seals every mapping in the profile and then freezes the profile: no
// further type pairs can be registered.
func (p *Profile) Seal() error {
	if err := p.SealMappings(); err != nil {
		return err
	}

	p.sealed = true

	return nil
}

func typePair(source, destination string) string {
	return fmt.Sprintf("%s->%s", source, destination)
}
