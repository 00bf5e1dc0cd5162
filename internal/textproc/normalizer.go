package textproc

import (
	"strings"
	"unicode"
)

// Normalizer turns raw extracted text into a normalized token stream suitable
// for vectorization. The stop-word set is part of the configuration, not a
// hidden constant: pass nil to use the built-in English list.
type Normalizer struct {
	stopWords map[string]bool
}

// techTokens maps punctuation-heavy technology names to forms that survive
// tokenization. Resumes and job descriptions lean on these heavily, so
// stripping the punctuation blindly would merge "c++" and "c" into one term.
var techTokens = map[string]string{
	"c++":      "cplusplus",
	"c#":       "csharp",
	".net":     "dotnet",
	"node.js":  "nodejs",
	"react.js": "reactjs",
	"vue.js":   "vuejs",
}

func NewNormalizer(stopWords []string) *Normalizer {
	set := defaultStopWords
	if stopWords != nil {
		set = make(map[string]bool, len(stopWords))
		for _, w := range stopWords {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				set[w] = true
			}
		}
	}
	return &Normalizer{stopWords: set}
}

// Tokens normalizes the provided text into a lower-cased, punctuation-free
// token stream with stop words removed. Empty or whitespace-only input yields
// an empty stream, never an error: garbled parser output must not abort a
// batch, it just scores as an empty document.
func (n *Normalizer) Tokens(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	text = strings.ToLower(text)
	for from, to := range techTokens {
		text = strings.ReplaceAll(text, from, to)
	}

	var tokens []string
	var word strings.Builder
	flush := func() {
		w := word.String()
		word.Reset()
		if w == "" {
			return
		}
		// Standalone numbers and one-character fragments carry no signal.
		if len([]rune(w)) < 2 || isDigits(w) {
			return
		}
		if n.stopWords[w] {
			return
		}
		tokens = append(tokens, w)
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
