package vectorize

import "sort"

// TermWeight pairs a vocabulary term with its weight in a document vector.
type TermWeight struct {
	Term   string
	Weight float64
}

// TopTerms returns the n heaviest terms of the provided vector, ordered by
// descending weight with ties broken alphabetically so the report is stable.
func (v *Vectorizer) TopTerms(vec []float64, n int) []TermWeight {
	if n <= 0 || len(vec) != len(v.vocab) {
		return nil
	}

	weighted := make([]TermWeight, 0, len(v.vocab))
	for term, idx := range v.vocab {
		if vec[idx] > 0 {
			weighted = append(weighted, TermWeight{Term: term, Weight: vec[idx]})
		}
	}

	sort.Slice(weighted, func(i, j int) bool {
		if weighted[i].Weight != weighted[j].Weight {
			return weighted[i].Weight > weighted[j].Weight
		}
		return weighted[i].Term < weighted[j].Term
	})

	if len(weighted) > n {
		weighted = weighted[:n]
	}
	return weighted
}
