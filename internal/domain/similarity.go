package domain

import (
	"fmt"
	"math"
	"sort"
)

// CosineSimilarity returns dot(a,b)/(|a|*|b|), or 0 when either norm is zero.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// Rounding can push identical vectors a hair past 1.
	return math.Max(-1, math.Min(1, similarity)), nil
}

// Scored is anything ranked by TopK.
type Scored interface {
	Score() float64
}

// TopK returns the k highest scoring items, descending, keeping input order for ties.
// The input slice is not modified.
func TopK[T Scored](items []T, k int) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score() > sorted[j].Score()
	})

	if k < 0 {
		k = 0
	}
	if k < len(sorted) {
		sorted = sorted[:k]
	}
	return sorted
}

// Score implements Scored.
func (m *MatchCandidate) Score() float64 { return m.Similarity }

// Score implements Scored.
func (m *JobMatch) Score() float64 { return m.Similarity }

// Score implements Scored.
func (r *MatchResult) Score() float64 { return r.OverallScore }
