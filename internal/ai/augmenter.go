package ai

import "context"

// SemanticResult is the joined outcome of one augmentation call. Exactly one
// of the two shapes holds: a usable score in [0,1], or an unavailability
// reason. Unavailability is an expected, non-fatal outcome — the pipeline
// proceeds with the lexical score alone.
type SemanticResult struct {
	Score     float64
	Available bool
	Reason    string
	Raw       string
}

// Unavailable builds a degraded result carrying the reason the semantic
// score could not be produced.
func Unavailable(reason string) *SemanticResult {
	return &SemanticResult{Reason: reason}
}

// Augmenter rates how relevant a resume is to a job description using an
// external language model. Implementations handle their own retry and
// timeout policy and report failures through the result, never as an error
// that could abort a batch.
type Augmenter interface {
	Assess(ctx context.Context, jobText, resumeText string) *SemanticResult
}
