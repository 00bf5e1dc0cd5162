package vectorize

import (
	"math"
	"testing"
)

func TestCosineBounds(t *testing.T) {
	cases := [][2][]float64{
		{{1, 0, 0}, {0, 1, 0}},
		{{1, 2, 3}, {3, 2, 1}},
		{{0.5, 0.5}, {0.5, 0.5}},
		{{1e-9, 1e9}, {1e9, 1e-9}},
	}

	for _, c := range cases {
		sim := Cosine(c[0], c[1])
		if sim < 0 || sim > 1 {
			t.Fatalf("cosine out of bounds for %v, %v: %v", c[0], c[1], sim)
		}
	}
}

func TestCosineSelfSimilarity(t *testing.T) {
	a := []float64{0.3, 0, 1.7, 2.2}

	if sim := Cosine(a, a); math.Abs(sim-1) > 1e-9 {
		t.Fatalf("expected cosine(a,a) == 1, got %v", sim)
	}
}

func TestCosineZeroVector(t *testing.T) {
	zero := []float64{0, 0, 0}
	a := []float64{1, 2, 3}

	if sim := Cosine(zero, a); sim != 0 {
		t.Fatalf("expected 0 for zero vector, got %v", sim)
	}
	if sim := Cosine(a, zero); sim != 0 {
		t.Fatalf("expected 0 for zero vector, got %v", sim)
	}
	if sim := Cosine(zero, zero); sim != 0 {
		t.Fatalf("expected 0 for both zero vectors, got %v", sim)
	}
}

func TestCosineMismatchedLengths(t *testing.T) {
	if sim := Cosine([]float64{1}, []float64{1, 2}); sim != 0 {
		t.Fatalf("expected 0 for mismatched lengths, got %v", sim)
	}
}

func TestCosineOrthogonal(t *testing.T) {
	if sim := Cosine([]float64{1, 0}, []float64{0, 1}); sim != 0 {
		t.Fatalf("expected 0 for orthogonal vectors, got %v", sim)
	}
}
