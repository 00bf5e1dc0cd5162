package textproc

import (
	"reflect"
	"testing"
)

func TestTokensLowercasesAndStripsPunctuation(t *testing.T) {
	n := NewNormalizer(nil)

	got := n.Tokens("Senior Backend Engineer (Python/SQL), remote!")
	want := []string{"senior", "backend", "engineer", "python", "sql", "remote"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: %v", got)
	}
}

func TestTokensEmptyInput(t *testing.T) {
	n := NewNormalizer(nil)

	for _, input := range []string{"", "   ", "\n\t  \n"} {
		if got := n.Tokens(input); len(got) != 0 {
			t.Fatalf("expected empty stream for %q, got %v", input, got)
		}
	}
}

func TestTokensPreservesTechTerms(t *testing.T) {
	n := NewNormalizer(nil)

	got := n.Tokens("Expert in C++, C# and Node.js development")

	want := []string{"expert", "cplusplus", "csharp", "nodejs", "development"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: %v", got)
	}
}

func TestTokensDropsNumbersAndShortWords(t *testing.T) {
	n := NewNormalizer(nil)

	got := n.Tokens("3 years of go x 2024")
	want := []string{"years", "go"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: %v", got)
	}
}

func TestTokensCustomStopWords(t *testing.T) {
	n := NewNormalizer([]string{"python", "THE "})

	got := n.Tokens("the python developer")
	want := []string{"developer"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: %v", got)
	}
}

func TestTokensEmptyStopWordsDisablesFiltering(t *testing.T) {
	// An explicitly empty (non-nil) list means no stop words at all.
	n := NewNormalizer([]string{})

	got := n.Tokens("the quick fox")
	want := []string{"the", "quick", "fox"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: %v", got)
	}
}
