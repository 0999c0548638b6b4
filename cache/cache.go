package cache

import "fmt"

// Key identifies a directed type pair.
type Key struct {
	Source      string
	Destination string
}

// String returns the canonical "Source->Destination" form.
func (k Key) String() string {
	return fmt.Sprintf("%s->%s", k.Source, k.Destination)
}

// Origin tells how a plan pair was decided.
type Origin string

const (
	// OriginExplicit means a configured member (ForMember) decided the pair.
	OriginExplicit Origin = "explicit"
	// OriginConvention means a naming convention matched the fields.
	OriginConvention Origin = "convention"
	// OriginIdentity means the fields share the exact same name.
	OriginIdentity Origin = "identity"
	// OriginIgnored means the destination is explicitly excluded.
	OriginIgnored Origin = "ignored"
	// OriginDefault means only a configured default feeds the destination.
	OriginDefault Origin = "default"
)

// Pair is one resolved destination assignment.
type Pair struct {
	Destination string  `json:"destination"`
	Source      string  `json:"source,omitempty"`
	Origin      Origin  `json:"origin"`
	Confidence  float64 `json:"confidence,omitempty"`
	Convention  string  `json:"convention,omitempty"`
}

// Miss records a destination field no rule could fill, with the reason.
type Miss struct {
	Destination string `json:"destination"`
	Reason      string `json:"reason,omitempty"`
}

// Plan is the resolved mapping for one type pair. Pairs are listed in
// evaluation order: configured members first, inferred assignments after.
//
// Conventions and Threshold record the inference settings the plan was built
// under. Persistent backends hand back plans from earlier runs, so readers
// compare them against the current settings before trusting the plan.
type Plan struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Pairs       []Pair  `json:"pairs"`
	Unmatched   []Miss  `json:"unmatched,omitempty"`
	Conventions bool    `json:"conventions,omitempty"`
	Threshold   float64 `json:"threshold,omitempty"`
}

// Key returns the cache key this plan is stored under.
func (p *Plan) Key() Key {
	return Key{Source: p.Source, Destination: p.Destination}
}

// PairFor returns the resolved assignment for a destination field.
func (p *Plan) PairFor(destination string) (Pair, bool) {
	for _, pair := range p.Pairs {
		if pair.Destination == destination {
			return pair, true
		}
	}

	return Pair{}, false
}

// Stats is a point-in-time snapshot of backend counters. Errors counts
// backend I/O or serialization failures; such failures degrade to misses,
// they never fail a map call.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int64
	Errors  int64
}

// Backend stores immutable resolved plans. Get and Set must be safe for
// concurrent use. A Set for an existing key replaces the entry wholesale.
type Backend interface {
	Get(key Key) (*Plan, bool)
	Set(key Key, plan *Plan)
	Clear()
	Stats() Stats
}
