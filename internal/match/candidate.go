package match

import "sort"

// Scorer produces a confidence in [0, 1] that two raw field names denote the
// same logical property. The convention set implements it; unparseable names
// must score 0 rather than fail.
type Scorer interface {
	Name() string
	Confidence(source, destination string) float64
}

// Candidate is one scored (destination, source) field-name pairing.
type Candidate struct {
	Destination string
	Source      string

	// Confidence is the best score any scorer produced for the pair.
	Confidence float64
	// Convention names the scorer that produced Confidence.
	Convention string

	// Distance is the Levenshtein distance between the canonical keys of the
	// two names, used as the first tiebreak between equal confidences.
	Distance int
	// SourceOrder is the source field's declaration index, the final tiebreak.
	SourceOrder int
}

// CandidateList is a list of candidates ordered best-first.
type CandidateList []Candidate

// RankCandidates scores one destination field against every source field,
// taking for each pair the maximum confidence across all scorers. The result
// is sorted best-first; see Less for the documented tiebreak policy.
func RankCandidates(destination string, sources []string, scorers []Scorer) CandidateList {
	candidates := make(CandidateList, 0, len(sources))

	destKey := CanonicalKey(destination)

	for i, source := range sources {
		confidence, convention := bestScore(source, destination, scorers)

		candidates = append(candidates, Candidate{
			Destination: destination,
			Source:      source,
			Confidence:  confidence,
			Convention:  convention,
			Distance:    Levenshtein(CanonicalKey(source), destKey),
			SourceOrder: i,
		})
	}

	sort.Sort(candidates)

	return candidates
}

func bestScore(source, destination string, scorers []Scorer) (float64, string) {
	best := 0.0
	name := ""

	for _, s := range scorers {
		if score := s.Confidence(source, destination); score > best {
			best = score
			name = s.Name()
		}
	}

	return best, name
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface. Candidates order by confidence descending,
// then by shorter canonical-key distance, then by source declaration order.
// This ordering is the documented tiebreak policy: equal-confidence ties never
// depend on map iteration order.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Confidence != c[j].Confidence {
		return c[i].Confidence > c[j].Confidence
	}

	if c[i].Distance != c[j].Distance {
		return c[i].Distance < c[j].Distance
	}

	return c[i].SourceOrder < c[j].SourceOrder
}

// Top returns the best n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold returns candidates with confidence at or above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Confidence >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// IsAmbiguous reports whether the two best candidates sit within gap of each
// other, meaning the winner was decided by tiebreak rather than by a clear
// confidence margin.
func (c CandidateList) IsAmbiguous(gap float64) bool {
	if len(c) < 2 {
		return false
	}

	return c[0].Confidence-c[1].Confidence < gap
}

// DefaultAmbiguityGap is the confidence margin under which two top candidates
// are reported as ambiguous in diagnostics.
const DefaultAmbiguityGap = 0.1
