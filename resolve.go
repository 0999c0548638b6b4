package recast

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"recast/cache"
	"recast/internal/match"
	"recast/mapping"
	"recast/record"
)

// planFor resolves the mapping plan for a type pair: cached plan when fresh,
// otherwise built from the explicit mapping plus inference and cached for
// reuse. The returned TypeMapping is nil when the pair has no explicit
// mapping.
func (m *Mapper) planFor(source record.Record, sourceType, destinationType string) (*cache.Plan, *mapping.TypeMapping, error) {
	tm, hasMapping := m.profile.Mapping(sourceType, destinationType)

	if hasMapping && !tm.Sealed() {
		return nil, nil, &mapping.Error{
			Kind:            mapping.KindConfiguration,
			SourceType:      sourceType,
			DestinationType: destinationType,
			Message:         "mapping is not sealed; call Seal before mapping",
		}
	}

	destFields, destRegistered := m.registry.lookup(destinationType)

	if !hasMapping && !destRegistered {
		msg := "no mapping registered and destination type is not registered, so conventions cannot infer its fields"
		if !m.useConv {
			msg = "no mapping registered and conventions are disabled"
		}

		return nil, nil, &mapping.Error{
			Kind:            mapping.KindResolution,
			SourceType:      sourceType,
			DestinationType: destinationType,
			Message:         msg,
		}
	}

	key := cache.Key{Source: sourceType, Destination: destinationType}

	if plan, ok := m.plans.Get(key); ok {
		if m.planFresh(plan, tm, destFields, destRegistered) {
			m.debugLog("mapping plan cache hit", logrus.Fields{
				"source":      sourceType,
				"destination": destinationType,
			})

			return plan, tm, nil
		}

		m.debugLog("discarded stale mapping plan", logrus.Fields{
			"source":      sourceType,
			"destination": destinationType,
		})
	}

	plan := m.buildPlan(source, sourceType, destinationType, tm, destFields)
	m.plans.Set(key, plan)

	m.debugLog("mapping plan built", logrus.Fields{
		"source":      sourceType,
		"destination": destinationType,
		"pairs":       len(plan.Pairs),
		"unmatched":   len(plan.Unmatched),
	})

	return plan, tm, nil
}

// planFresh reports whether a cached plan still describes the current
// configuration: same explicit member set, same destination field universe.
// Persistent backends hand back plans from previous runs, so a plan that
// predates a configuration change must be rebuilt, not trusted.
func (m *Mapper) planFresh(plan *cache.Plan, tm *mapping.TypeMapping, destFields []Field, destRegistered bool) bool {
	if plan.Conventions != m.useConv || plan.Threshold != m.threshold {
		return false
	}

	memberDests := make(map[string]bool)
	if tm != nil {
		for _, mem := range tm.Members() {
			memberDests[mem.Destination] = true
		}
	}

	planExplicit := make(map[string]bool)
	planUniverse := make(map[string]bool)

	for _, p := range plan.Pairs {
		planUniverse[p.Destination] = true

		switch p.Origin {
		case cache.OriginExplicit, cache.OriginIgnored, cache.OriginDefault:
			planExplicit[p.Destination] = true
		}
	}

	for _, miss := range plan.Unmatched {
		planUniverse[miss.Destination] = true
	}

	if !sameSet(planExplicit, memberDests) {
		return false
	}

	universe := make(map[string]bool, len(memberDests)+len(destFields))
	for dest := range memberDests {
		universe[dest] = true
	}

	if destRegistered {
		for _, f := range destFields {
			universe[f.Name] = true
		}
	}

	return sameSet(planUniverse, universe)
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}

	for k := range a {
		if !b[k] {
			return false
		}
	}

	return true
}

// buildPlan computes the resolved pair list for a type pair. Explicit members
// come first in configuration order; destination fields without members are
// filled by convention inference (or exact-name matches when conventions are
// off) in declaration order, one source field per destination.
func (m *Mapper) buildPlan(source record.Record, sourceType, destinationType string, tm *mapping.TypeMapping, destFields []Field) *cache.Plan {
	plan := &cache.Plan{
		Source:      sourceType,
		Destination: destinationType,
		Conventions: m.useConv,
		Threshold:   m.threshold,
	}

	memberDests := make(map[string]bool)
	usedSources := make(map[string]bool)

	if tm != nil {
		for _, mem := range tm.Members() {
			memberDests[mem.Destination] = true

			if mem.Ignored {
				plan.Pairs = append(plan.Pairs, cache.Pair{
					Destination: mem.Destination,
					Origin:      cache.OriginIgnored,
				})

				continue
			}

			origin := cache.OriginExplicit
			if mem.Source == "" && mem.Transform == nil && mem.Default != nil {
				origin = cache.OriginDefault
			}

			plan.Pairs = append(plan.Pairs, cache.Pair{
				Destination: mem.Destination,
				Source:      mem.SourceField(),
				Origin:      origin,
			})

			usedSources[mem.SourceField()] = true
		}
	}

	var openDests []string
	for _, f := range destFields {
		if !memberDests[f.Name] {
			openDests = append(openDests, f.Name)
		}
	}

	var openSources []string
	for _, s := range m.sourceFields(source, sourceType) {
		if !usedSources[s] {
			openSources = append(openSources, s)
		}
	}

	if m.useConv {
		m.inferPairs(plan, openDests, openSources)
	} else {
		m.exactPairs(plan, openDests, openSources)
	}

	return plan
}

// inferPairs fills open destinations by one-to-one convention assignment.
func (m *Mapper) inferPairs(plan *cache.Plan, openDests, openSources []string) {
	assigned := match.Assign(openDests, openSources, m.scorerSet(), m.threshold)

	byDest := make(map[string]match.Pair, len(assigned))
	for _, p := range assigned {
		byDest[p.Destination] = p
	}

	for _, dest := range openDests {
		p, ok := byDest[dest]
		if !ok {
			plan.Unmatched = append(plan.Unmatched, cache.Miss{
				Destination: dest,
				Reason:      fmt.Sprintf("no source field matched at or above threshold %.2g", m.threshold),
			})

			continue
		}

		pair := cache.Pair{
			Destination: dest,
			Source:      p.Source,
			Origin:      cache.OriginConvention,
			Confidence:  p.Confidence,
			Convention:  p.Convention,
		}

		if p.Source == dest {
			pair.Origin = cache.OriginIdentity
			pair.Convention = ""
		}

		plan.Pairs = append(plan.Pairs, pair)
	}
}

// exactPairs fills open destinations by exact-name matches only.
func (m *Mapper) exactPairs(plan *cache.Plan, openDests, openSources []string) {
	available := make(map[string]bool, len(openSources))
	for _, s := range openSources {
		available[s] = true
	}

	for _, dest := range openDests {
		if !available[dest] {
			plan.Unmatched = append(plan.Unmatched, cache.Miss{
				Destination: dest,
				Reason:      "no exact-name source field (conventions disabled)",
			})

			continue
		}

		available[dest] = false

		plan.Pairs = append(plan.Pairs, cache.Pair{
			Destination: dest,
			Source:      dest,
			Origin:      cache.OriginIdentity,
			Confidence:  1,
		})
	}
}

// sourceFields returns the source field pool for inference: the registered
// declaration order when the source type is known, otherwise the record's
// own fields in sorted order.
func (m *Mapper) sourceFields(source record.Record, sourceType string) []string {
	if names := m.registry.names(sourceType); names != nil {
		return names
	}

	return source.Fields()
}

// inferSourceType determines the source type for a map call that did not
// declare one. A single registered mapping targeting the destination type
// decides it; several make the call ambiguous; none means the record is
// treated as an anonymous shape keyed by its own field set.
func (m *Mapper) inferSourceType(source record.Record, destinationType string) (string, error) {
	var candidates []string

	for _, tm := range m.profile.Mappings() {
		if tm.DestinationType() == destinationType {
			candidates = append(candidates, tm.SourceType())
		}
	}

	switch len(candidates) {
	case 0:
		return anonymousType(source), nil
	case 1:
		return candidates[0], nil
	default:
		return "", &mapping.Error{
			Kind:            mapping.KindResolution,
			DestinationType: destinationType,
			Message: fmt.Sprintf("source type is ambiguous, candidates %s; use MapAs",
				strings.Join(candidates, ", ")),
		}
	}
}

// anonymousType keys an undeclared source shape by its sorted field names, so
// records with the same shape share one cached plan.
func anonymousType(source record.Record) string {
	return fmt.Sprintf("record(%s)", strings.Join(source.Fields(), ","))
}

// recursable reports whether nested records can be mapped into the given
// type: it is registered or some explicit mapping targets it. Values of
// unrecursable types pass through verbatim.
func (m *Mapper) recursable(destinationType string) bool {
	if _, ok := m.registry.lookup(destinationType); ok {
		return true
	}

	for _, tm := range m.profile.Mappings() {
		if tm.DestinationType() == destinationType {
			return true
		}
	}

	return false
}

func (m *Mapper) scorerSet() []match.Scorer {
	scorers := make([]match.Scorer, len(m.conventions))
	for i, c := range m.conventions {
		scorers[i] = c
	}

	return scorers
}
