package badger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/storage/badger"
)

func newStore(t *testing.T) *badger.Store {
	t.Helper()
	backend, err := badger.OpenBackend(badger.Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return badger.NewStore(backend)
}

func vector(values ...float64) *domain.EmbeddingVector {
	return &domain.EmbeddingVector{Values: values, Model: "test-model"}
}

func TestStore_JobRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	err := store.SaveJob(ctx, &domain.Job{
		ID:        "job-1",
		Title:     "Go Engineer",
		Status:    domain.JobStatusActive,
		Skills:    []string{"go", "grpc"},
		Embedding: vector(1, 0),
	})
	require.NoError(t, err)

	job, err := store.GetJob(ctx, "job-1")
	require.NoError(t, err)
	require.Equal(t, "Go Engineer", job.Title)
	require.Equal(t, []string{"go", "grpc"}, job.Skills)
	require.NotNil(t, job.Embedding)
	require.Equal(t, []float64{1, 0}, job.Embedding.Values)
	require.Equal(t, "job-1", job.Embedding.OwnerID)
	require.Equal(t, domain.KindJob, job.Embedding.OwnerKind)
	require.False(t, job.Embedding.GeneratedAt.IsZero())
}

func TestStore_GetMissing(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.GetJob(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.GetCandidate(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_QueryActiveCandidates(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	candidates := []*domain.Candidate{
		{ID: "a", Role: domain.RoleCandidate, Active: true, Location: "Berlin, DE", Embedding: vector(1, 0)},
		{ID: "b", Role: domain.RoleCandidate, Active: true, Location: "Paris", Embedding: vector(0, 1)},
		{ID: "c", Role: domain.RoleCandidate, Active: false, Embedding: vector(1, 1)},
		{ID: "d", Role: domain.RoleCandidate, Active: true, Deleted: true, Embedding: vector(1, 1)},
		{ID: "e", Role: "recruiter", Active: true, Embedding: vector(1, 1)},
		{ID: "f", Role: domain.RoleCandidate, Active: true},
	}
	for _, candidate := range candidates {
		require.NoError(t, store.SaveCandidate(ctx, candidate))
	}

	tests := []struct {
		name     string
		filter   domain.QueryFilter
		expected []string
	}{
		{name: "all matchable", filter: domain.QueryFilter{}, expected: []string{"a", "b"}},
		{name: "location is case insensitive", filter: domain.QueryFilter{Location: "berlin"}, expected: []string{"a"}},
		{name: "exclude ids", filter: domain.QueryFilter{ExcludeIDs: []string{"a"}}, expected: []string{"b"}},
		{name: "limit", filter: domain.QueryFilter{Limit: 1}, expected: []string{"a"}},
		{name: "other role", filter: domain.QueryFilter{Role: "recruiter"}, expected: []string{"e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := store.QueryActiveCandidates(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(found))
			for _, candidate := range found {
				require.NotNil(t, candidate.Embedding)
				ids = append(ids, candidate.ID)
			}
			require.Equal(t, tt.expected, ids)
		})
	}
}

func TestStore_QueryActiveJobs(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveJob(ctx, &domain.Job{ID: "j1", Status: domain.JobStatusActive, Embedding: vector(1)}))
	require.NoError(t, store.SaveJob(ctx, &domain.Job{ID: "j2", Status: "closed", Embedding: vector(1)}))
	require.NoError(t, store.SaveJob(ctx, &domain.Job{ID: "j3", Status: domain.JobStatusActive}))

	jobs, err := store.QueryActiveJobs(ctx, domain.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "j1", jobs[0].ID)
}

func TestStore_EmbeddingsAndCounts(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveJob(ctx, &domain.Job{ID: "j1", Status: domain.JobStatusActive}))
	require.NoError(t, store.SaveJob(ctx, &domain.Job{ID: "j2", Status: domain.JobStatusActive, Embedding: vector(1)}))
	require.NoError(t, store.SaveCandidate(ctx, &domain.Candidate{ID: "c1", Role: domain.RoleCandidate, Active: true}))

	missing, err := store.JobsMissingEmbeddings(ctx, 0)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	require.Equal(t, "j1", missing[0].ID)

	counts, err := store.CountJobs(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.EntityCounts{Total: 2, WithEmbedding: 1}, counts)

	err = store.SaveEmbedding(ctx, &domain.EmbeddingVector{OwnerID: "j1", OwnerKind: domain.KindJob, Values: []float64{0.5}})
	require.NoError(t, err)

	missing, err = store.JobsMissingEmbeddings(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, missing)

	counts, err = store.CountJobs(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.EntityCounts{Total: 2, WithEmbedding: 2}, counts)

	candidateCounts, err := store.CountCandidates(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.EntityCounts{Total: 1, WithEmbedding: 0}, candidateCounts)

	pending, err := store.CandidatesMissingEmbeddings(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
}

func TestStore_SaveEmbeddingValidation(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	err := store.SaveEmbedding(ctx, &domain.EmbeddingVector{OwnerID: "ghost", OwnerKind: domain.KindCandidate, Values: []float64{1}})
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = store.SaveEmbedding(ctx, &domain.EmbeddingVector{OwnerID: "ghost", OwnerKind: domain.KindCandidate})
	require.Error(t, err)

	require.Error(t, store.SaveJob(ctx, &domain.Job{}))
	require.Error(t, store.SaveCandidate(ctx, nil))
}
