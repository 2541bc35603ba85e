package domain_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/matchwise/internal/cache/memory"
	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/mocks"
)

// unitAt returns a 2D unit vector with the given cosine against (1, 0).
func unitAt(cosine float64) []float64 {
	return []float64{cosine, math.Sqrt(1 - cosine*cosine)}
}

type matchingFixture struct {
	jobs       *mocks.MockJobRepository
	candidates *mocks.MockCandidateRepository
	provider   *mocks.MockCompletionProvider
	cache      *mocks.MockMatchCache
}

func newMatchingFixture(t *testing.T) *matchingFixture {
	t.Helper()
	return &matchingFixture{
		jobs:       mocks.NewMockJobRepository(t),
		candidates: mocks.NewMockCandidateRepository(t),
		provider:   newCompletionProvider(t, "openai"),
		cache:      mocks.NewMockMatchCache(t),
	}
}

func (f *matchingFixture) service(t *testing.T, cache domain.MatchCache) *domain.MatchingService {
	t.Helper()
	engine, err := domain.NewRerankEngine([]domain.CompletionProvider{f.provider}, nil, domain.RerankConfig{}, nil)
	require.NoError(t, err)
	return domain.NewMatchingService(f.jobs, f.candidates, engine, cache, domain.MatchingConfig{}, nil)
}

func TestFindBestMatches_EndToEnd(t *testing.T) {
	f := newMatchingFixture(t)

	f.jobs.EXPECT().GetJob(mock.Anything, "job-1").Return(activeJob("job-1", 1, 0), nil)
	f.candidates.EXPECT().
		QueryActiveCandidates(mock.Anything, mock.Anything).
		Return([]*domain.Candidate{
			activeCandidate("strong", unitAt(0.8)...),
			activeCandidate("medium", unitAt(0.5)...),
			activeCandidate("weak", unitAt(0.05)...),
		}, nil)

	f.provider.EXPECT().
		Complete(mock.Anything, mock.Anything).
		RunAndReturn(answerByCandidate(map[string]string{
			"headline strong": `{"aiScore": 90, "reasoning": "Excellent.", "confidence": 1}`,
			"headline medium": `{"aiScore": 60, "reasoning": "Reasonable.", "confidence": 1}`,
		})).
		Times(2)

	f.cache.EXPECT().GetSet(mock.Anything, "job-1", mock.Anything).Return(nil, domain.ErrCacheMiss)
	f.cache.EXPECT().GetPair(mock.Anything, "job-1", mock.Anything).Return(nil, domain.ErrCacheMiss).Times(2)
	f.cache.EXPECT().TTL().Return(time.Hour)
	f.cache.EXPECT().SetPair(mock.Anything, mock.Anything).Return(nil).Times(2)
	f.cache.EXPECT().
		SetSet(mock.Anything, "job-1", domain.DefaultMatchOptions().Hash(), mock.MatchedBy(func(results []*domain.MatchResult) bool {
			return len(results) == 2
		})).
		Return(nil)

	results, err := f.service(t, f.cache).FindBestMatches(context.Background(), "job-1", domain.MatchOptions{})
	require.NoError(t, err)

	require.Len(t, results, 2)
	require.Equal(t, "strong", results[0].CandidateID)
	require.InDelta(t, 90.0, results[0].AIScore, 1e-9)
	require.Equal(t, "medium", results[1].CandidateID)
	require.InDelta(t, 60.0, results[1].AIScore, 1e-9)
	require.GreaterOrEqual(t, results[0].OverallScore, results[1].OverallScore)
	require.False(t, results[0].ExpiresAt.IsZero())
	require.WithinDuration(t, time.Now().Add(time.Hour), results[0].ExpiresAt, time.Minute)
}

func TestFindBestMatches_CacheHit(t *testing.T) {
	f := newMatchingFixture(t)

	cached := []*domain.MatchResult{{JobID: "job-1", CandidateID: "cand-a", OverallScore: 80}}
	f.cache.EXPECT().GetSet(mock.Anything, "job-1", mock.Anything).Return(cached, nil)

	results, err := f.service(t, f.cache).FindBestMatches(context.Background(), "job-1", domain.MatchOptions{})
	require.NoError(t, err)
	require.Equal(t, cached, results)
}

func TestFindBestMatches_ForceRefreshBypassesCache(t *testing.T) {
	f := newMatchingFixture(t)

	f.jobs.EXPECT().GetJob(mock.Anything, "job-1").Return(activeJob("job-1", 1, 0), nil)
	f.candidates.EXPECT().QueryActiveCandidates(mock.Anything, mock.Anything).Return([]*domain.Candidate{}, nil)

	results, err := f.service(t, f.cache).FindBestMatches(context.Background(), "job-1", domain.MatchOptions{ForceRefresh: true})
	require.NoError(t, err)
	require.Empty(t, results)
	f.cache.AssertNotCalled(t, "GetSet", mock.Anything, mock.Anything, mock.Anything)
}

func TestFindBestMatches_MissingJob(t *testing.T) {
	f := newMatchingFixture(t)

	f.jobs.EXPECT().GetJob(mock.Anything, "ghost").Return(nil, domain.NotFoundError(domain.KindJob, "ghost"))

	results, err := f.service(t, nil).FindBestMatches(context.Background(), "ghost", domain.MatchOptions{})
	require.NoError(t, err)
	require.NotNil(t, results)
	require.Empty(t, results)
}

func TestFindBestMatches_JobWithoutEmbedding(t *testing.T) {
	f := newMatchingFixture(t)

	f.jobs.EXPECT().GetJob(mock.Anything, "job-1").Return(&domain.Job{ID: "job-1", Status: domain.JobStatusActive}, nil)

	results, err := f.service(t, nil).FindBestMatches(context.Background(), "job-1", domain.MatchOptions{})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestFindBestMatches_RepositoryError(t *testing.T) {
	f := newMatchingFixture(t)

	f.jobs.EXPECT().GetJob(mock.Anything, "job-1").Return(nil, errors.New("db closed"))

	_, err := f.service(t, nil).FindBestMatches(context.Background(), "job-1", domain.MatchOptions{})
	require.ErrorContains(t, err, "db closed")
}

func TestFindBestMatches_DegradedSearch(t *testing.T) {
	f := newMatchingFixture(t)

	f.jobs.EXPECT().GetJob(mock.Anything, "job-1").Return(activeJob("job-1", 1, 0), nil)
	f.candidates.EXPECT().
		QueryActiveCandidates(mock.Anything, domain.QueryFilter{Role: domain.RoleCandidate}).
		Return([]*domain.Candidate{activeCandidate("orthogonal", 0, 1)}, nil)
	f.candidates.EXPECT().
		QueryActiveCandidates(mock.Anything, domain.QueryFilter{Role: domain.RoleCandidate, Limit: 3}).
		Return([]*domain.Candidate{activeCandidate("orthogonal", 0, 1)}, nil)
	f.provider.EXPECT().
		Complete(mock.Anything, mock.Anything).
		Return(&domain.Completion{Text: `{"aiScore": 75, "reasoning": "ok", "confidence": 1}`}, nil)

	results, err := f.service(t, nil).FindBestMatches(context.Background(), "job-1", domain.MatchOptions{
		AITopK:         3,
		DegradedSearch: true,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.InDelta(t, domain.DegradedSimilarity, results[0].VectorSimilarity, 1e-9)
}

func TestFindBestMatches_TruncatesToAITopK(t *testing.T) {
	f := newMatchingFixture(t)

	f.jobs.EXPECT().GetJob(mock.Anything, "job-1").Return(activeJob("job-1", 1, 0), nil)
	f.candidates.EXPECT().
		QueryActiveCandidates(mock.Anything, mock.Anything).
		Return([]*domain.Candidate{
			activeCandidate("a", unitAt(0.9)...),
			activeCandidate("b", unitAt(0.8)...),
			activeCandidate("c", unitAt(0.7)...),
		}, nil)

	var prompts []string
	f.provider.EXPECT().
		Complete(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, prompt string) (*domain.Completion, error) {
			prompts = append(prompts, prompt)
			return &domain.Completion{Text: `{"aiScore": 80}`}, nil
		})

	results, err := f.service(t, nil).FindBestMatches(context.Background(), "job-1", domain.MatchOptions{AITopK: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, prompts, 1)
	require.True(t, strings.Contains(prompts[0], "headline a"))
}

func TestFindBestMatches_CanceledRunIsNotCached(t *testing.T) {
	f := newMatchingFixture(t)

	f.jobs.EXPECT().GetJob(mock.Anything, "job-1").Return(activeJob("job-1", 1, 0), nil)
	f.candidates.EXPECT().
		QueryActiveCandidates(mock.Anything, mock.Anything).
		Return([]*domain.Candidate{activeCandidate("strong", unitAt(0.8)...)}, nil)
	f.provider.EXPECT().
		Complete(mock.Anything, mock.Anything).
		Return(&domain.Completion{Text: `{"aiScore": 95, "reasoning": "Excellent.", "confidence": 1}`}, nil).
		Once()

	cache := memory.New(memory.Config{})
	service := f.service(t, cache)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	first, err := service.MatchJob(canceled, "job-1", domain.MatchOptions{})
	require.NoError(t, err)
	require.Len(t, first.Results, 1)
	require.True(t, first.Results[0].Fallback)

	second, err := service.MatchJob(context.Background(), "job-1", domain.MatchOptions{})
	require.NoError(t, err)
	require.False(t, second.FromCache)
	require.Len(t, second.Results, 1)
	require.False(t, second.Results[0].Fallback)
	require.InDelta(t, 95.0, second.Results[0].AIScore, 1e-9)

	third, err := service.MatchJob(context.Background(), "job-1", domain.MatchOptions{})
	require.NoError(t, err)
	require.True(t, third.FromCache)
}

func TestFindBestMatches_FallbackRunSkipsSetCache(t *testing.T) {
	f := newMatchingFixture(t)

	f.jobs.EXPECT().GetJob(mock.Anything, "job-1").Return(activeJob("job-1", 1, 0), nil)
	f.candidates.EXPECT().
		QueryActiveCandidates(mock.Anything, mock.Anything).
		Return([]*domain.Candidate{
			activeCandidate("strong", unitAt(0.8)...),
			activeCandidate("medium", unitAt(0.6)...),
		}, nil)

	var mu sync.Mutex
	calls := map[string]int{}
	f.provider.EXPECT().
		Complete(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, prompt string) (*domain.Completion, error) {
			mu.Lock()
			defer mu.Unlock()
			if strings.Contains(prompt, "headline strong") {
				calls["strong"]++
				return &domain.Completion{Text: `{"aiScore": 90, "reasoning": "Excellent.", "confidence": 1}`}, nil
			}
			calls["medium"]++
			if calls["medium"] == 1 {
				return nil, errors.New("provider outage")
			}
			return &domain.Completion{Text: `{"aiScore": 70, "reasoning": "Solid.", "confidence": 1}`}, nil
		})

	service := f.service(t, memory.New(memory.Config{}))

	first, err := service.MatchJob(context.Background(), "job-1", domain.MatchOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, first.Fallbacks)

	second, err := service.MatchJob(context.Background(), "job-1", domain.MatchOptions{})
	require.NoError(t, err)
	require.False(t, second.FromCache)
	require.Zero(t, second.Fallbacks)
	for _, result := range second.Results {
		require.False(t, result.Fallback)
	}

	// The model-scored pair from the first run is reused; only the failed one is retried.
	require.Equal(t, 1, calls["strong"])
	require.Equal(t, 2, calls["medium"])
}

func TestFindBestMatches_ReusesCachedPairs(t *testing.T) {
	f := newMatchingFixture(t)

	f.jobs.EXPECT().GetJob(mock.Anything, "job-1").Return(activeJob("job-1", 1, 0), nil)
	f.candidates.EXPECT().
		QueryActiveCandidates(mock.Anything, mock.Anything).
		Return([]*domain.Candidate{
			activeCandidate("strong", unitAt(0.8)...),
			activeCandidate("medium", unitAt(0.6)...),
			activeCandidate("stale", unitAt(0.5)...),
		}, nil)

	cache := memory.New(memory.Config{})
	ctx := context.Background()
	require.NoError(t, cache.SetPair(ctx, &domain.MatchResult{
		JobID:        "job-1",
		CandidateID:  "strong",
		AIScore:      88,
		OverallScore: 85,
		Reasoning:    "Cached reasoning.",
		Confidence:   1,
		ExpiresAt:    time.Now().Add(time.Hour),
	}))
	require.NoError(t, cache.SetPair(ctx, &domain.MatchResult{
		JobID:       "job-1",
		CandidateID: "stale",
		AIScore:     50,
		Fallback:    true,
		ExpiresAt:   time.Now().Add(time.Hour),
	}))

	var (
		mu      sync.Mutex
		prompts []string
	)
	f.provider.EXPECT().
		Complete(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, prompt string) (*domain.Completion, error) {
			mu.Lock()
			defer mu.Unlock()
			prompts = append(prompts, prompt)
			return &domain.Completion{Text: `{"aiScore": 65, "reasoning": "Fine.", "confidence": 1}`}, nil
		})

	run, err := f.service(t, cache).MatchJob(ctx, "job-1", domain.MatchOptions{})
	require.NoError(t, err)
	require.Len(t, run.Results, 3)
	require.Equal(t, "strong", run.Results[0].CandidateID)
	require.Equal(t, "Cached reasoning.", run.Results[0].Reasoning)

	require.Len(t, prompts, 2)
	for _, prompt := range prompts {
		require.NotContains(t, prompt, "headline strong")
	}
}

func TestFindBestMatches_ExplicitZeroMinAIScore(t *testing.T) {
	tests := []struct {
		name        string
		opts        domain.MatchOptions
		wantResults int
	}{
		{name: "default threshold drops low scores", opts: domain.MatchOptions{}, wantResults: 0},
		{name: "explicit zero keeps everything", opts: domain.MatchOptions{MinAIScore: domain.Float64(0)}, wantResults: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchingFixture(t)

			f.jobs.EXPECT().GetJob(mock.Anything, "job-1").Return(activeJob("job-1", 1, 0), nil)
			f.candidates.EXPECT().
				QueryActiveCandidates(mock.Anything, mock.Anything).
				Return([]*domain.Candidate{activeCandidate("weak-fit", unitAt(0.8)...)}, nil)
			f.provider.EXPECT().
				Complete(mock.Anything, mock.Anything).
				Return(&domain.Completion{Text: `{"aiScore": 10, "reasoning": "Poor fit.", "confidence": 1}`}, nil)

			results, err := f.service(t, nil).FindBestMatches(context.Background(), "job-1", tt.opts)
			require.NoError(t, err)
			require.Len(t, results, tt.wantResults)
		})
	}
}

func TestFindBestMatches_ExcludedCandidates(t *testing.T) {
	f := newMatchingFixture(t)

	f.jobs.EXPECT().GetJob(mock.Anything, "job-1").Return(activeJob("job-1", 1, 0), nil)
	f.candidates.EXPECT().
		QueryActiveCandidates(mock.Anything, domain.QueryFilter{
			Role:       domain.RoleCandidate,
			ExcludeIDs: []string{"contacted"},
		}).
		Return([]*domain.Candidate{}, nil)

	results, err := f.service(t, nil).FindBestMatches(context.Background(), "job-1", domain.MatchOptions{
		ExcludeCandidateIDs: []string{"contacted"},
	})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestFindJobsForCandidate(t *testing.T) {
	f := newMatchingFixture(t)

	f.candidates.EXPECT().GetCandidate(mock.Anything, "cand-1").Return(activeCandidate("cand-1", 1, 0), nil)
	f.jobs.EXPECT().
		QueryActiveJobs(mock.Anything, mock.Anything).
		Return([]*domain.Job{
			activeJob("close", unitAt(0.9)...),
			activeJob("far", unitAt(0.2)...),
		}, nil)

	matches, err := f.service(t, nil).FindJobsForCandidate(context.Background(), "cand-1", 0, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "close", matches[0].Job.ID)
}

func TestFindJobsForCandidate_Missing(t *testing.T) {
	f := newMatchingFixture(t)

	f.candidates.EXPECT().GetCandidate(mock.Anything, "ghost").Return(nil, domain.NotFoundError(domain.KindCandidate, "ghost"))

	matches, err := f.service(t, nil).FindJobsForCandidate(context.Background(), "ghost", 10, 0.3)
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestGetMatchingStats(t *testing.T) {
	f := newMatchingFixture(t)

	f.jobs.EXPECT().CountJobs(mock.Anything).Return(domain.EntityCounts{Total: 4, WithEmbedding: 3}, nil)
	f.candidates.EXPECT().CountCandidates(mock.Anything).Return(domain.EntityCounts{Total: 0}, nil)
	f.cache.EXPECT().Stats(mock.Anything).Return(domain.CacheStats{Entries: 7, Hits: 2, Misses: 1}, nil)

	stats, err := f.service(t, f.cache).GetMatchingStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, stats.TotalJobs)
	require.Equal(t, 3, stats.JobsWithEmbeddings)
	require.InDelta(t, 0.75, stats.JobEmbeddingCoverage, 1e-9)
	require.Zero(t, stats.CandidateEmbeddingCoverage)
	require.Equal(t, 7, stats.Cache.Entries)
}

func TestInvalidate(t *testing.T) {
	f := newMatchingFixture(t)

	f.cache.EXPECT().InvalidateJob(mock.Anything, "job-1").Return(3, nil)
	f.cache.EXPECT().InvalidateCandidate(mock.Anything, "cand-1").Return(0, errors.New("redis down"))

	service := f.service(t, f.cache)

	removed, err := service.InvalidateJob(context.Background(), "job-1")
	require.NoError(t, err)
	require.Equal(t, 3, removed)

	_, err = service.InvalidateCandidate(context.Background(), "cand-1")
	require.ErrorContains(t, err, "redis down")
}

func TestInvalidate_NoCache(t *testing.T) {
	f := newMatchingFixture(t)

	removed, err := f.service(t, nil).InvalidateJob(context.Background(), "job-1")
	require.NoError(t, err)
	require.Zero(t, removed)
}
