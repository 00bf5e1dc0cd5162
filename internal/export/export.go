// Package export serializes completed matching sessions for downstream
// consumers. The matching core itself does not depend on any storage format;
// these writers are the boundary to spreadsheets and persistence.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/talentsift/resume-ranker/internal/matching"
)

var csvHeader = []string{
	"rank", "candidate_id", "lexical_score", "semantic_score",
	"combined_score", "match_status", "experience_years", "recommendation",
}

// WriteCSV writes every record of the result in ranking order, with ERROR
// records trailing. The semantic_score column is empty when the score was
// absent for that candidate.
func WriteCSV(w io.Writer, result *matching.Result) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	rank := 0
	for _, record := range result.Records {
		row := make([]string, 0, len(csvHeader))

		if record.Status == matching.StatusError {
			row = append(row, "")
		} else {
			rank++
			row = append(row, strconv.Itoa(rank))
		}

		semantic := ""
		if record.SemanticScore != nil {
			semantic = formatScore(*record.SemanticScore)
		}

		row = append(row,
			record.CandidateID,
			formatScore(record.LexicalScore),
			semantic,
			formatScore(record.CombinedScore),
			string(record.Status),
			strconv.Itoa(record.ExperienceYears),
			record.Recommendation,
		)

		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

type jsonReport struct {
	Session *matching.Session       `json:"session"`
	Records []*matching.ScoreRecord `json:"records"`
}

// WriteJSON writes the full result, session aggregate included, as indented
// JSON for persistence or further tooling.
func WriteJSON(w io.Writer, result *matching.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Session: result.Session, Records: result.Records})
}

// ToFile writes the result to path using the format implied by the write
// function, creating or truncating the file.
func ToFile(path string, result *matching.Result, write func(io.Writer, *matching.Result) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer file.Close()

	if err := write(file, result); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}

	return nil
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 4, 64)
}
