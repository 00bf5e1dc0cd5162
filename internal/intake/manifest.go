// Package intake loads the output of the external document parser and NLP
// extractor. The matching core consumes parsed text and extracted profiles,
// it never derives them.
package intake

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Document is one parsed resume as handed over by the document parser.
type Document struct {
	ID                  string   `json:"id"`
	Text                string   `json:"text,omitempty"`
	TextFile            string   `json:"text_file,omitempty"`
	ExtractionSucceeded bool     `json:"extraction_succeeded"`
	Profile             *Profile `json:"profile,omitempty"`
}

// Profile carries the entity-extractor output for one candidate. All fields
// are best-effort and optional.
type Profile struct {
	Skills          []string          `json:"skills,omitempty" mapstructure:"skills"`
	Education       []EducationRecord `json:"education,omitempty" mapstructure:"education"`
	ExperienceYears int               `json:"experience_years,omitempty" mapstructure:"experience_years"`
}

type EducationRecord struct {
	Degree      string `json:"degree,omitempty" mapstructure:"degree"`
	Institution string `json:"institution,omitempty" mapstructure:"institution"`
	Year        int    `json:"year,omitempty" mapstructure:"year"`
}

type manifest struct {
	Documents []rawDocument `json:"documents"`
}

type rawDocument struct {
	ID                  string         `json:"id"`
	Text                string         `json:"text"`
	TextFile            string         `json:"text_file"`
	ExtractionSucceeded bool           `json:"extraction_succeeded"`
	Profile             map[string]any `json:"profile"`
}

// LoadManifest reads a parsed-document manifest from path. Relative
// text_file entries are resolved against the manifest's directory. Duplicate
// candidate identifiers are rejected: the session invariant of exactly one
// score record per candidate depends on unique IDs.
func LoadManifest(path string) ([]*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer file.Close()

	var m manifest
	if err := json.NewDecoder(file).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding manifest %q: %w", path, err)
	}

	baseDir := filepath.Dir(path)
	seen := make(map[string]bool, len(m.Documents))
	docs := make([]*Document, 0, len(m.Documents))

	for i, raw := range m.Documents {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			return nil, fmt.Errorf("manifest document %d has no id", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate candidate id %q in manifest", id)
		}
		seen[id] = true

		doc := &Document{
			ID:                  id,
			Text:                raw.Text,
			TextFile:            raw.TextFile,
			ExtractionSucceeded: raw.ExtractionSucceeded,
		}

		if doc.Text == "" && raw.TextFile != "" {
			textPath := raw.TextFile
			if !filepath.IsAbs(textPath) {
				textPath = filepath.Join(baseDir, textPath)
			}
			data, err := os.ReadFile(textPath)
			if err != nil {
				return nil, fmt.Errorf("reading text for candidate %q: %w", id, err)
			}
			doc.Text = string(data)
		}

		if raw.Profile != nil {
			profile, err := decodeProfile(raw.Profile)
			if err != nil {
				return nil, fmt.Errorf("decoding profile for candidate %q: %w", id, err)
			}
			doc.Profile = profile
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// decodeProfile tolerates the loose typing of upstream extractors: years may
// arrive as floats or numeric strings depending on the producer.
func decodeProfile(raw map[string]any) (*Profile, error) {
	var profile Profile

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &profile,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	if profile.ExperienceYears < 0 {
		profile.ExperienceYears = 0
	}

	return &profile, nil
}
