package matching

import (
	"time"

	"github.com/google/uuid"
)

// Session aggregates one completed batch run. It is owned exclusively by the
// coordinator for its lifetime and finalized in a single pass after all
// per-candidate results are collected.
type Session struct {
	ID           string
	Total        int
	Shortlisted  int
	Rejected     int
	Errors       int
	AverageScore float64
	StartedAt    time.Time
	Duration     time.Duration
}

func newSession(total int) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Total:     total,
		StartedAt: time.Now().UTC(),
	}
}

// finalize fills the aggregate counters from the collected records. The
// average combined score is computed over scored candidates only.
func (s *Session) finalize(records []*ScoreRecord) {
	var sum float64
	var scored int

	for _, record := range records {
		switch record.Status {
		case StatusShortlisted:
			s.Shortlisted++
		case StatusRejected:
			s.Rejected++
		case StatusError:
			s.Errors++
		}
		if record.Status != StatusError {
			sum += record.CombinedScore
			scored++
		}
	}

	if scored > 0 {
		s.AverageScore = sum / float64(scored)
	}
	s.Duration = time.Since(s.StartedAt)
}
