package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/matchwise/internal/domain"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected float64
	}{
		{name: "identical vectors", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, expected: 1},
		{name: "scaled vectors", a: []float64{1, 2, 3}, b: []float64{2, 4, 6}, expected: 1},
		{name: "orthogonal vectors", a: []float64{1, 0}, b: []float64{0, 1}, expected: 0},
		{name: "opposite vectors", a: []float64{1, 1}, b: []float64{-1, -1}, expected: -1},
		{name: "zero vector", a: []float64{0, 0, 0}, b: []float64{1, 2, 3}, expected: 0},
		{name: "partial overlap", a: []float64{1, 0}, b: []float64{1, 1}, expected: 1 / math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			similarity, err := domain.CosineSimilarity(tt.a, tt.b)
			require.NoError(t, err)
			require.InDelta(t, tt.expected, similarity, 1e-9)
			require.GreaterOrEqual(t, similarity, -1.0)
			require.LessOrEqual(t, similarity, 1.0)
		})
	}
}

func TestCosineSimilarity_IsSymmetric(t *testing.T) {
	a := []float64{0.3, -0.2, 0.9, 0.1}
	b := []float64{-0.5, 0.4, 0.2, 0.7}

	ab, err := domain.CosineSimilarity(a, b)
	require.NoError(t, err)
	ba, err := domain.CosineSimilarity(b, a)
	require.NoError(t, err)

	require.InDelta(t, ab, ba, 1e-12)
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := domain.CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})
	require.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestTopK(t *testing.T) {
	items := []*domain.MatchCandidate{
		{Candidate: &domain.Candidate{ID: "a"}, Similarity: 0.2},
		{Candidate: &domain.Candidate{ID: "b"}, Similarity: 0.9},
		{Candidate: &domain.Candidate{ID: "c"}, Similarity: 0.5},
		{Candidate: &domain.Candidate{ID: "d"}, Similarity: 0.5},
	}

	ids := func(matches []*domain.MatchCandidate) []string {
		out := make([]string, 0, len(matches))
		for _, m := range matches {
			out = append(out, m.Candidate.ID)
		}
		return out
	}

	t.Run("sorts descending and keeps tie order", func(t *testing.T) {
		require.Equal(t, []string{"b", "c", "d", "a"}, ids(domain.TopK(items, 10)))
	})

	t.Run("truncates to k", func(t *testing.T) {
		require.Equal(t, []string{"b", "c"}, ids(domain.TopK(items, 2)))
	})

	t.Run("zero k returns nothing", func(t *testing.T) {
		require.Empty(t, domain.TopK(items, 0))
	})

	t.Run("does not modify input", func(t *testing.T) {
		domain.TopK(items, 2)
		require.Equal(t, []string{"a", "b", "c", "d"}, ids(items))
	})
}
