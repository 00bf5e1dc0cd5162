package vectorize

import (
	"math"
	"sort"
)

// Vectorizer fits a TF-IDF model over one batch of tokenized documents and
// transforms each of them into a dense vector over the fitted vocabulary.
//
// The vocabulary is batch-local: IDF statistics are only meaningful relative
// to the corpus they were computed from, so a Vectorizer is fitted once per
// job-description session and never reused across batches.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// Fit builds the vocabulary and IDF statistics from the provided documents.
// Fitting zero documents, or documents that are all empty, is valid and
// results in an empty vocabulary: Transform then returns zero-length vectors
// and downstream similarity rules to 0.
func Fit(docs [][]string) *Vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	// Sorted vocabulary keeps vector layout, and therefore every score,
	// reproducible across runs.
	sort.Strings(terms)

	v := &Vectorizer{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}

	n := float64(len(docs))
	for i, term := range terms {
		v.vocab[term] = i
		// Smoothed IDF: behaves as if one extra document contained every
		// term, keeping weights finite for terms present in all documents.
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return v
}

// Size returns the fitted vocabulary size.
func (v *Vectorizer) Size() int {
	return len(v.vocab)
}

// Transform maps a tokenized document onto the fitted vocabulary as an
// L2-normalized TF-IDF vector. Terms outside the vocabulary are ignored.
func (v *Vectorizer) Transform(doc []string) []float64 {
	vec := make([]float64, len(v.vocab))
	if len(doc) == 0 || len(vec) == 0 {
		return vec
	}

	for _, term := range doc {
		if idx, ok := v.vocab[term]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}

	return vec
}
