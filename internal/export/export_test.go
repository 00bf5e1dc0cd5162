package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/talentsift/resume-ranker/internal/matching"
)

func sampleResult() *matching.Result {
	semantic := 0.8
	shortlisted := &matching.ScoreRecord{
		CandidateID:     "c-1",
		LexicalScore:    0.6,
		SemanticScore:   &semantic,
		CombinedScore:   0.66,
		Status:          matching.StatusShortlisted,
		ExperienceYears: 5,
		Recommendation:  matching.Recommend(0.66),
	}
	rejected := &matching.ScoreRecord{
		CandidateID:    "c-2",
		LexicalScore:   0.1,
		CombinedScore:  0.1,
		Status:         matching.StatusRejected,
		Recommendation: matching.Recommend(0.1),
	}
	errored := &matching.ScoreRecord{
		CandidateID: "c-3",
		Status:      matching.StatusError,
		Error:       "document extraction failed",
	}

	return &matching.Result{
		Session: &matching.Session{
			ID: "s-1", Total: 3, Shortlisted: 1, Rejected: 1, Errors: 1, AverageScore: 0.38,
		},
		Ranked:  []*matching.ScoreRecord{shortlisted, rejected},
		Records: []*matching.ScoreRecord{shortlisted, rejected, errored},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(rows))
	}

	if rows[1][0] != "1" || rows[1][1] != "c-1" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[1][3] != "0.8000" {
		t.Fatalf("expected semantic score column, got %q", rows[1][3])
	}

	if rows[2][3] != "" {
		t.Fatalf("expected empty semantic score for c-2, got %q", rows[2][3])
	}

	if rows[3][0] != "" || rows[3][5] != "error" {
		t.Fatalf("expected unranked error row, got %v", rows[3])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		Session struct {
			ID    string `json:"ID"`
			Total int    `json:"Total"`
		} `json:"session"`
		Records []map[string]any `json:"records"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding report: %v", err)
	}

	if decoded.Session.ID != "s-1" || decoded.Session.Total != 3 {
		t.Fatalf("unexpected session: %+v", decoded.Session)
	}
	if len(decoded.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(decoded.Records))
	}
}

func TestToFile(t *testing.T) {
	path := t.TempDir() + "/results.csv"

	if err := ToFile(path, sampleResult(), WriteCSV); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if !strings.Contains(string(data), "c-1") {
		t.Fatalf("file does not contain exported rows: %q", data)
	}
}
