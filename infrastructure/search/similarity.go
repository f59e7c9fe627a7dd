// Package search implements vector index backends behind the
// search.Index interface.
package search

import (
	"math"
	"sort"
)

// StoredVector holds an embedding vector with its point ID.
type StoredVector struct {
	pointID   string
	embedding []float64
}

// NewStoredVector creates a StoredVector.
func NewStoredVector(pointID string, embedding []float64) StoredVector {
	vec := make([]float64, len(embedding))
	copy(vec, embedding)
	return StoredVector{
		pointID:   pointID,
		embedding: vec,
	}
}

// PointID returns the point identifier.
func (v StoredVector) PointID() string { return v.pointID }

// Embedding returns the embedding vector (copy).
func (v StoredVector) Embedding() []float64 {
	result := make([]float64, len(v.embedding))
	copy(result, v.embedding)
	return result
}

// SimilarityMatch holds a point ID and its similarity score.
type SimilarityMatch struct {
	pointID    string
	similarity float64
}

// NewSimilarityMatch creates a SimilarityMatch.
func NewSimilarityMatch(pointID string, similarity float64) SimilarityMatch {
	return SimilarityMatch{
		pointID:    pointID,
		similarity: similarity,
	}
}

// PointID returns the point identifier.
func (m SimilarityMatch) PointID() string { return m.pointID }

// Similarity returns the similarity score.
func (m SimilarityMatch) Similarity() float64 { return m.similarity }

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns a value between -1 (opposite) and 1 (identical).
// Returns 0 if either vector has zero magnitude.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, magA, magB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(magA) * math.Sqrt(magB))
}

// TopKSimilar finds the top-k most similar vectors to the query.
// Results are sorted by similarity in descending order.
func TopKSimilar(query []float64, vectors []StoredVector, k int) []SimilarityMatch {
	if len(vectors) == 0 || k <= 0 {
		return []SimilarityMatch{}
	}

	matches := make([]SimilarityMatch, 0, len(vectors))
	for _, v := range vectors {
		similarity := CosineSimilarity(query, v.embedding)
		matches = append(matches, NewSimilarityMatch(v.pointID, similarity))
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].similarity > matches[j].similarity
	})

	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k]
}
