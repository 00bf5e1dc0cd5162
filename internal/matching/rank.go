package matching

import "sort"

// Rank assigns ranking order to the scored records: combined score
// descending, ties broken by extracted experience years descending, then by
// candidate identifier ascending. The three keys form a total order, so the
// output never depends on the order candidates were processed.
//
// ERROR records are excluded from the ranked list; the session still counts
// them.
func Rank(records []*ScoreRecord) []*ScoreRecord {
	ranked := make([]*ScoreRecord, 0, len(records))
	for _, record := range records {
		if record.Status == StatusError {
			continue
		}
		ranked = append(ranked, record)
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.CombinedScore != b.CombinedScore {
			return a.CombinedScore > b.CombinedScore
		}
		if a.ExperienceYears != b.ExperienceYears {
			return a.ExperienceYears > b.ExperienceYears
		}
		return a.CandidateID < b.CandidateID
	})

	return ranked
}
