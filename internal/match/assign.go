package match

import "sort"

// Pair is one accepted destination<-source assignment produced by Assign.
type Pair struct {
	Destination string
	Source      string
	Confidence  float64
	Convention  string
}

// Assign computes a one-to-one pairing between destination and source fields.
//
// Every (destination, source) combination is scored with the maximum
// confidence across the scorers, all candidates are ordered globally
// (confidence descending, then canonical-key distance, then source
// declaration order), and pairs are accepted greedily: a candidate wins only
// if its confidence is at or above threshold and neither of its fields has
// been claimed by an earlier pair. Destinations left unclaimed are simply
// absent from the result; the caller treats them as soft misses.
//
// Zero-confidence candidates are never assigned, whatever the threshold: a
// score of 0 means no convention found any evidence for the pair.
func Assign(destinations, sources []string, scorers []Scorer, threshold float64) []Pair {
	var all CandidateList

	for _, dest := range destinations {
		all = append(all, RankCandidates(dest, sources, scorers)...)
	}

	// Stable keeps destination declaration order as the last tiebreak when two
	// destinations compete for the same source at equal confidence.
	sort.Stable(all)

	claimedDest := make(map[string]bool, len(destinations))
	claimedSource := make(map[string]bool, len(sources))

	var pairs []Pair

	for _, cand := range all {
		if cand.Confidence < threshold || cand.Confidence <= 0 {
			continue
		}

		if claimedDest[cand.Destination] || claimedSource[cand.Source] {
			continue
		}

		claimedDest[cand.Destination] = true
		claimedSource[cand.Source] = true

		pairs = append(pairs, Pair{
			Destination: cand.Destination,
			Source:      cand.Source,
			Confidence:  cand.Confidence,
			Convention:  cand.Convention,
		})
	}

	return pairs
}
