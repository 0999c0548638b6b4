package recast

import (
	"recast/cache"
	"recast/internal/match"
	"recast/mapping"
	"recast/record"
)

// Explain resolves and returns the mapping plan for a source record and
// destination type without evaluating it: every pair with its origin and
// confidence, plus the destination fields nothing matched. The plan is
// resolved exactly as Map would, cache included.
func (m *Mapper) Explain(source record.Record, destinationType string) (*cache.Plan, error) {
	return m.ExplainAs(source, "", destinationType)
}

// ExplainAs is Explain with an explicitly declared source type.
func (m *Mapper) ExplainAs(source record.Record, sourceType, destinationType string) (*cache.Plan, error) {
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

	plan, _, err := m.planFor(source, sourceType, destinationType)

	return plan, err
}

// Candidate is one scored source-field option for a destination field.
type Candidate struct {
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
	Convention string  `json:"convention,omitempty"`
}

// Suggestion lists the best source candidates for one destination field
// without an explicit member. Ambiguous means the two best candidates sit
// too close together for the winner to mean much.
type Suggestion struct {
	Destination string      `json:"destination"`
	Candidates  []Candidate `json:"candidates"`
	Ambiguous   bool        `json:"ambiguous,omitempty"`
}

// Suggest ranks source-field candidates for every destination field that has
// no explicit member, regardless of threshold or whether conventions are
// enabled for mapping. The destination type must be registered. At most
// limit candidates are returned per field; limit <= 0 means 3.
func (m *Mapper) Suggest(source record.Record, destinationType string, limit int) ([]Suggestion, error) {
	return m.SuggestAs(source, "", destinationType, limit)
}

// SuggestAs is Suggest with an explicitly declared source type, so candidates
// can come from a registered type's declared fields instead of a sample
// record.
func (m *Mapper) SuggestAs(source record.Record, sourceType, destinationType string, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		limit = 3
	}

	destFields, ok := m.registry.lookup(destinationType)
	if !ok {
		return nil, &mapping.Error{
			Kind:            mapping.KindResolution,
			DestinationType: destinationType,
			Message:         "destination type is not registered",
		}
	}

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

	tm, _ := m.profile.Mapping(sourceType, destinationType)
	sources := m.sourceFields(source, sourceType)
	scorers := m.scorerSet()

	var suggestions []Suggestion

	for _, f := range destFields {
		if tm != nil {
			if _, configured := tm.Member(f.Name); configured {
				continue
			}
		}

		ranked := match.RankCandidates(f.Name, sources, scorers)

		candidates := make([]Candidate, 0, limit)
		for _, c := range ranked.Top(limit) {
			if c.Confidence <= 0 {
				continue
			}

			candidates = append(candidates, Candidate{
				Source:     c.Source,
				Confidence: c.Confidence,
				Convention: c.Convention,
			})
		}

		best := ranked.Best()

		suggestions = append(suggestions, Suggestion{
			Destination: f.Name,
			Candidates:  candidates,
			Ambiguous:   best != nil && best.Confidence > 0 && ranked.IsAmbiguous(match.DefaultAmbiguityGap),
		})
	}

	return suggestions, nil
}
