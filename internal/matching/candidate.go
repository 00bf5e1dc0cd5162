package matching

import (
	"github.com/talentsift/resume-ranker/internal/intake"
)

// Candidate is one resume entering the matching pipeline. The raw text is
// owned by the candidate and read-only during matching.
type Candidate struct {
	ID               string
	Text             string
	ExtractionFailed bool
	Profile          ExtractedProfile
}

// ExtractedProfile is the entity-extractor output consumed, not computed, by
// the matching core. It feeds tie-breaking and reporting only.
type ExtractedProfile struct {
	Skills          []string
	Education       []EducationRecord
	ExperienceYears int
}

type EducationRecord struct {
	Degree      string
	Institution string
	Year        int
}

// Candidates wraps a candidate batch.
type Candidates struct {
	Items []*Candidate
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) FindByID(id string) *Candidate {
	for _, candidate := range c.Items {
		if candidate.ID == id {
			return candidate
		}
	}
	return nil
}

// FromDocuments converts parsed-document intake into a candidate batch. A
// document whose extraction failed still becomes a candidate so the session
// can account for it with an ERROR record.
func FromDocuments(docs []*intake.Document) *Candidates {
	batch := &Candidates{Items: make([]*Candidate, 0, len(docs))}
	for _, doc := range docs {
		candidate := &Candidate{
			ID:               doc.ID,
			Text:             doc.Text,
			ExtractionFailed: !doc.ExtractionSucceeded,
		}
		if doc.Profile != nil {
			candidate.Profile.Skills = doc.Profile.Skills
			candidate.Profile.ExperienceYears = doc.Profile.ExperienceYears
			for _, edu := range doc.Profile.Education {
				candidate.Profile.Education = append(candidate.Profile.Education, EducationRecord{
					Degree:      edu.Degree,
					Institution: edu.Institution,
					Year:        edu.Year,
				})
			}
		}
		batch.Items = append(batch.Items, candidate)
	}
	return batch
}
