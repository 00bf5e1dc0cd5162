package matching

import "math"

// Combine blends the lexical and semantic scores under the configured weight.
// An absent semantic score leaves the lexical score untouched; otherwise the
// combined score is weight*semantic + (1-weight)*lexical, clamped to [0,1].
func Combine(lexical float64, semantic *float64, weight float64) float64 {
	combined := lexical
	if semantic != nil {
		combined = weight**semantic + (1-weight)*lexical
	}
	return math.Min(math.Max(combined, 0), 1)
}
