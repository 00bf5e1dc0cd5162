package matching

import "testing"

func TestCombineWithoutSemantic(t *testing.T) {
	if got := Combine(0.42, nil, 0.8); got != 0.42 {
		t.Fatalf("expected lexical passthrough, got %v", got)
	}
}

func TestCombineBlends(t *testing.T) {
	semantic := 0.9
	got := Combine(0.5, &semantic, 0.3)
	want := 0.3*0.9 + 0.7*0.5

	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCombineZeroWeightIsLexicalOnly(t *testing.T) {
	semantic := 1.0
	if got := Combine(0.25, &semantic, 0); got != 0.25 {
		t.Fatalf("expected lexical-only with zero weight, got %v", got)
	}
}

func TestCombineClamps(t *testing.T) {
	semantic := 1.5 // defensive: upstream should never hand this over
	if got := Combine(1.0, &semantic, 1.0); got != 1.0 {
		t.Fatalf("expected clamp to 1, got %v", got)
	}

	negative := -0.5
	if got := Combine(0, &negative, 1.0); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
}

func TestCombineMonotonicInSemantic(t *testing.T) {
	lexical := 0.4
	weight := 0.6

	prev := -1.0
	for i := 0; i <= 10; i++ {
		semantic := float64(i) / 10
		got := Combine(lexical, &semantic, weight)
		if got < prev {
			t.Fatalf("combined score decreased: %v -> %v at semantic %v", prev, got, semantic)
		}
		prev = got
	}
}
