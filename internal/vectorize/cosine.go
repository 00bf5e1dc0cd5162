package vectorize

import "math"

// Cosine returns the cosine similarity between two vectors, clamped to [0,1].
// When either vector has zero norm the result is 0.0: an empty document is a
// valid input that simply matches nothing, it is not an error.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// Non-negative TF-IDF weights cannot produce a negative cosine, and
	// float error can only nudge past 1 — clamp both ends anyway.
	return math.Min(math.Max(sim, 0), 1)
}
