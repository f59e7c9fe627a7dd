package search

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        []float64{1, 0, 0},
			b:        []float64{1, 0, 0},
			expected: 1.0,
		},
		{
			name:     "opposite vectors",
			a:        []float64{1, 0, 0},
			b:        []float64{-1, 0, 0},
			expected: -1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float64{1, 0, 0},
			b:        []float64{0, 1, 0},
			expected: 0.0,
		},
		{
			name:     "zero vector",
			a:        []float64{0, 0, 0},
			b:        []float64{1, 0, 0},
			expected: 0.0,
		},
		{
			name:     "empty vectors",
			a:        []float64{},
			b:        []float64{},
			expected: 0.0,
		},
		{
			name:     "mismatched lengths",
			a:        []float64{1, 0},
			b:        []float64{1, 0, 0},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTopKSimilar(t *testing.T) {
	vectors := []StoredVector{
		NewStoredVector("a", []float64{1, 0}),
		NewStoredVector("b", []float64{0, 1}),
		NewStoredVector("c", []float64{0.9, 0.1}),
	}

	matches := TopKSimilar([]float64{1, 0}, vectors, 2)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].PointID() != "a" {
		t.Errorf("expected best match a, got %s", matches[0].PointID())
	}
	if matches[1].PointID() != "c" {
		t.Errorf("expected second match c, got %s", matches[1].PointID())
	}
	if matches[0].Similarity() < matches[1].Similarity() {
		t.Error("matches not sorted by similarity")
	}
}

func TestTopKSimilar_KLargerThanVectors(t *testing.T) {
	vectors := []StoredVector{
		NewStoredVector("a", []float64{1, 0}),
	}

	matches := TopKSimilar([]float64{1, 0}, vectors, 10)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
}

func TestTopKSimilar_Empty(t *testing.T) {
	if got := TopKSimilar([]float64{1}, nil, 5); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
	if got := TopKSimilar([]float64{1}, []StoredVector{NewStoredVector("a", []float64{1})}, 0); len(got) != 0 {
		t.Errorf("expected no matches for k=0, got %d", len(got))
	}
}
