package matching

import (
	"errors"
	"strings"
)

// JobDescription is the immutable posting every candidate in the batch is
// scored against.
type JobDescription struct {
	Text string
}

// NewJobDescription validates the posting text. An empty job description is
// the one normalization failure that is batch-fatal: without it no score in
// the session would be meaningful.
func NewJobDescription(text string) (*JobDescription, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("job description text is empty")
	}
	return &JobDescription{Text: text}, nil
}
