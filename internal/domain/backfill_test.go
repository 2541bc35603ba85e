package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/mocks"
)

func newBackfill(t *testing.T, store domain.EmbeddingStore, provider domain.EmbeddingProvider) *domain.EmbeddingBackfill {
	t.Helper()
	service, err := domain.NewEmbeddingService([]domain.EmbeddingProvider{provider}, domain.EmbeddingConfig{}, nil)
	require.NoError(t, err)
	return domain.NewEmbeddingBackfill(store, service)
}

func TestBackfillJobs(t *testing.T) {
	store := mocks.NewMockEmbeddingStore(t)
	provider := newEmbeddingProvider(t, "openai")

	store.EXPECT().JobsMissingEmbeddings(mock.Anything, 10).Return([]*domain.Job{
		{ID: "job-1", Title: "Go Engineer", Skills: []string{"go"}},
		{ID: "job-2", Title: "Data Engineer"},
	}, nil)

	provider.EXPECT().Embed(mock.Anything, "Go Engineer go").
		Return(&domain.Embedding{Vector: []float64{1, 0}, Model: "m"}, nil)
	provider.EXPECT().Embed(mock.Anything, "Data Engineer").
		Return(nil, errors.New("rate limited"))

	store.EXPECT().SaveEmbedding(mock.Anything, mock.MatchedBy(func(e *domain.EmbeddingVector) bool {
		return e.OwnerID == "job-1" && e.OwnerKind == domain.KindJob && e.Model == "m" && len(e.Values) == 2
	})).Return(nil).Once()

	report, err := newBackfill(t, store, provider).BackfillJobs(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, domain.KindJob, report.Kind)
	require.Equal(t, 2, report.Pending)
	require.Equal(t, 1, report.Embedded)
	require.Len(t, report.Failures, 1)
	require.Equal(t, "job-2", report.Failures[0].ID)
	require.Contains(t, report.Failures[0].Error, "rate limited")
}

func TestBackfillCandidates_EmptyProfileAndSaveFailure(t *testing.T) {
	store := mocks.NewMockEmbeddingStore(t)
	provider := newEmbeddingProvider(t, "openai")

	store.EXPECT().CandidatesMissingEmbeddings(mock.Anything, 0).Return([]*domain.Candidate{
		{ID: "cand-empty"},
		{ID: "cand-gone", Headline: "Backend developer"},
	}, nil)

	provider.EXPECT().Embed(mock.Anything, "Backend developer").
		Return(&domain.Embedding{Vector: []float64{0.5}, Model: "m"}, nil)
	store.EXPECT().SaveEmbedding(mock.Anything, mock.Anything).
		Return(domain.NotFoundError(domain.KindCandidate, "cand-gone"))

	report, err := newBackfill(t, store, provider).BackfillCandidates(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 0, report.Embedded)
	require.Len(t, report.Failures, 2)

	ids := []string{report.Failures[0].ID, report.Failures[1].ID}
	require.ElementsMatch(t, []string{"cand-empty", "cand-gone"}, ids)
}

func TestBackfill_NothingPending(t *testing.T) {
	store := mocks.NewMockEmbeddingStore(t)
	provider := newEmbeddingProvider(t, "openai")

	store.EXPECT().JobsMissingEmbeddings(mock.Anything, 0).Return([]*domain.Job{}, nil)

	report, err := newBackfill(t, store, provider).BackfillJobs(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 0, report.Pending)
	require.Empty(t, report.Failures)
}

func TestBackfill_StoreError(t *testing.T) {
	store := mocks.NewMockEmbeddingStore(t)
	provider := newEmbeddingProvider(t, "openai")

	store.EXPECT().JobsMissingEmbeddings(mock.Anything, 5).Return(nil, errors.New("disk full"))

	_, err := newBackfill(t, store, provider).BackfillJobs(context.Background(), 5)
	require.ErrorContains(t, err, "disk full")
}
