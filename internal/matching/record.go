package matching

// MatchStatus is the terminal state of one candidate in a session.
type MatchStatus string

const (
	StatusShortlisted MatchStatus = "shortlisted"
	StatusRejected    MatchStatus = "rejected"
	StatusError       MatchStatus = "error"
)

// ScoreRecord is the write-once outcome for one candidate. Records are never
// mutated after creation; a rerun produces new records.
type ScoreRecord struct {
	CandidateID string
	// LexicalScore is always present; it is the fallback signal.
	LexicalScore float64
	// SemanticScore is present only when the augmentation call succeeded.
	SemanticScore *float64
	// SemanticReason explains an absent semantic score, or carries the
	// model's one-line rationale when present.
	SemanticReason string
	CombinedScore  float64
	Status         MatchStatus
	// Error holds the failure description for StatusError records.
	Error string
	// ExperienceYears is copied from the extracted profile for tie-breaking
	// and export.
	ExperienceYears int
	// MatchedTerms are the job description's key terms found in the resume.
	MatchedTerms []string
	// Recommendation is the human-readable band for the combined score.
	Recommendation string
}

// Recommend maps a combined score onto the screening recommendation bands.
func Recommend(score float64) string {
	switch {
	case score >= 0.7:
		return "Excellent match - Highly recommended for interview"
	case score >= 0.5:
		return "Good match - Recommended for interview"
	case score >= 0.3:
		return "Moderate match - Consider for interview"
	case score >= 0.2:
		return "Low match - Review manually before decision"
	default:
		return "Poor match - May not meet core requirements"
	}
}
