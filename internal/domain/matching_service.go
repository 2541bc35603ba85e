package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidbz/matchwise/internal/observability"
)

const defaultJobsForCandidateLimit = 20

// MatchingConfig holds service-wide defaults.
type MatchingConfig struct {
	Defaults MatchOptions
	// ScanLimit caps rows scanned per vector search; 0 scans everything.
	ScanLimit int
}

// MatchRun is the detailed outcome of matching one job.
type MatchRun struct {
	JobID     string         `json:"job_id"`
	Results   []*MatchResult `json:"results"`
	Usage     Usage          `json:"usage"`
	Fallbacks int            `json:"fallbacks"`
	FromCache bool           `json:"from_cache"`
	Degraded  bool           `json:"degraded"`
}

// MatchingService orchestrates vector search, re-ranking and caching.
type MatchingService struct {
	jobs       JobRepository
	candidates CandidateRepository
	search     *VectorSearch
	reranker   *RerankEngine
	cache      MatchCache
	config     MatchingConfig
	recorder   Recorder
	now        func() time.Time
}

// NewMatchingService creates a new matching service (DI constructor). cache may be nil.
func NewMatchingService(
	jobs JobRepository,
	candidates CandidateRepository,
	reranker *RerankEngine,
	cache MatchCache,
	config MatchingConfig,
	recorder Recorder,
) *MatchingService {
	config.Defaults = config.Defaults.WithDefaults(DefaultMatchOptions())
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &MatchingService{
		jobs:       jobs,
		candidates: candidates,
		search:     NewVectorSearch(jobs, candidates),
		reranker:   reranker,
		cache:      cache,
		config:     config,
		recorder:   recorder,
		now:        time.Now,
	}
}

// Defaults returns the effective default options.
func (s *MatchingService) Defaults() MatchOptions {
	return s.config.Defaults
}

// FindBestMatches returns ranked candidates for a job. A missing job or job embedding
// yields an empty list.
func (s *MatchingService) FindBestMatches(ctx context.Context, jobID string, opts MatchOptions) ([]*MatchResult, error) {
	run, err := s.MatchJob(ctx, jobID, opts)
	if err != nil {
		return nil, err
	}
	return run.Results, nil
}

// MatchJob is FindBestMatches with usage and cache details.
func (s *MatchingService) MatchJob(ctx context.Context, jobID string, opts MatchOptions) (*MatchRun, error) {
	if jobID == "" {
		return nil, &ValidationError{Field: "jobId", Reason: "cannot be empty"}
	}

	ctx = observability.WithJobID(ctx, jobID)
	logger := observability.FromContext(ctx)
	opts = opts.WithDefaults(s.config.Defaults)
	run := &MatchRun{JobID: jobID, Results: []*MatchResult{}}

	optionsHash := opts.Hash()
	if cached := s.cachedSet(ctx, jobID, optionsHash, opts.ForceRefresh); cached != nil {
		run.Results = cached
		run.FromCache = true
		return run, nil
	}

	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		if IsNotFound(err) {
			logger.Warn("job not found, returning empty match list")
			return run, nil
		}
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	shortlist, err := s.search.CandidatesForJob(ctx, job, SearchParams{
		Limit:         opts.VectorTopK,
		MinSimilarity: opts.SimilarityThreshold(),
		Location:      opts.Location,
		ExcludeIDs:    opts.ExcludeCandidateIDs,
		ScanLimit:     s.config.ScanLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	if len(shortlist) == 0 && opts.DegradedSearch {
		logger.Warn("vector search returned nothing, using degraded candidate pull",
			observability.Float64("assumed_similarity", DegradedSimilarity))
		shortlist, err = s.search.DegradedCandidates(ctx, opts.AITopK, opts.ExcludeCandidateIDs)
		if err != nil {
			return nil, fmt.Errorf("degraded search failed: %w", err)
		}
		run.Degraded = true
	}

	if len(shortlist) == 0 {
		logger.Info("no candidates passed vector search")
		return run, nil
	}

	if len(shortlist) > opts.AITopK {
		shortlist = shortlist[:opts.AITopK]
	}

	reused, pending := s.cachedPairs(ctx, jobID, shortlist, opts.ForceRefresh)

	output := &RerankOutput{Results: []*MatchResult{}}
	if len(pending) > 0 {
		output, err = s.reranker.Rerank(ctx, RerankRequest{
			Job:        job,
			Matches:    pending,
			MinAIScore: opts.AIScoreThreshold(),
			Language:   opts.Language,
		})
		if err != nil {
			return nil, fmt.Errorf("rerank failed: %w", err)
		}
	}

	results := output.Results
	for _, pair := range reused {
		if pair.AIScore >= opts.AIScoreThreshold() {
			results = append(results, pair)
		}
	}

	run.Results = TopK(results, len(results))
	run.Usage = output.Usage
	run.Fallbacks = output.Fallbacks

	s.storeResults(ctx, run, optionsHash)

	logger.Info("job matched",
		observability.Int("shortlist", len(shortlist)),
		observability.Int("reused_pairs", len(reused)),
		observability.Int("results", len(run.Results)),
		observability.Int("fallbacks", run.Fallbacks),
		observability.Bool("degraded", run.Degraded))

	return run, nil
}

func (s *MatchingService) cachedSet(ctx context.Context, jobID, optionsHash string, forceRefresh bool) []*MatchResult {
	if s.cache == nil || forceRefresh {
		return nil
	}

	logger := observability.FromContext(ctx)

	cached, err := s.cache.GetSet(ctx, jobID, optionsHash)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.Warn("cache get failed, continuing without cache", observability.Error(err))
		}
		s.recorder.CacheLookup("set", false)
		return nil
	}

	s.recorder.CacheLookup("set", true)
	logger.Info("cache HIT - returning cached match set",
		observability.String("options_hash", optionsHash),
		observability.Int("results", len(cached)))
	return cached
}

// cachedPairs splits the shortlist into live model-scored pair results and the
// matches that still need a completion call.
func (s *MatchingService) cachedPairs(
	ctx context.Context,
	jobID string,
	shortlist []*MatchCandidate,
	forceRefresh bool,
) ([]*MatchResult, []*MatchCandidate) {
	if s.cache == nil || forceRefresh {
		return nil, shortlist
	}

	logger := observability.FromContext(ctx)
	now := s.now()

	reused := make([]*MatchResult, 0)
	pending := make([]*MatchCandidate, 0, len(shortlist))
	for _, match := range shortlist {
		pair, err := s.cache.GetPair(ctx, jobID, match.Candidate.ID)
		if err != nil {
			if !errors.Is(err, ErrCacheMiss) {
				logger.Warn("pair cache get failed",
					observability.String("candidate_id", match.Candidate.ID),
					observability.Error(err))
			}
			s.recorder.CacheLookup("pair", false)
			pending = append(pending, match)
			continue
		}
		if pair.Fallback || (!pair.ExpiresAt.IsZero() && !now.Before(pair.ExpiresAt)) {
			s.recorder.CacheLookup("pair", false)
			pending = append(pending, match)
			continue
		}

		s.recorder.CacheLookup("pair", true)
		copied := *pair
		reused = append(reused, &copied)
	}
	return reused, pending
}

// storeResults caches a run only when it ended cleanly. A canceled run is never
// stored; a run with fallback scores keeps its model-scored pairs but not the set.
func (s *MatchingService) storeResults(ctx context.Context, run *MatchRun, optionsHash string) {
	if s.cache == nil {
		return
	}

	logger := observability.FromContext(ctx)
	if ctx.Err() != nil {
		logger.Warn("run canceled, results not cached", observability.Error(ctx.Err()))
		return
	}

	expiresAt := s.now().Add(s.cache.TTL())

	for _, result := range run.Results {
		if result.Fallback || !result.ExpiresAt.IsZero() {
			continue
		}
		result.ExpiresAt = expiresAt
		if err := s.cache.SetPair(ctx, result); err != nil {
			logger.Warn("failed to store pair in cache",
				observability.String("candidate_id", result.CandidateID),
				observability.Error(err))
		}
	}

	if run.Fallbacks > 0 {
		logger.Info("run used fallback scores, match set not cached",
			observability.Int("fallbacks", run.Fallbacks))
		return
	}

	if err := s.cache.SetSet(ctx, run.JobID, optionsHash, run.Results); err != nil {
		logger.Warn("failed to store match set in cache", observability.Error(err))
	}
}

// FindJobsForCandidate returns jobs ranked by vector similarity only. A missing
// candidate or candidate embedding yields an empty list.
func (s *MatchingService) FindJobsForCandidate(
	ctx context.Context,
	candidateID string,
	limit int,
	minSimilarity float64,
) ([]*JobMatch, error) {
	if candidateID == "" {
		return nil, &ValidationError{Field: "candidateId", Reason: "cannot be empty"}
	}
	if limit <= 0 {
		limit = defaultJobsForCandidateLimit
	}
	if minSimilarity <= 0 {
		minSimilarity = DefaultMinJobSimilarity
	}

	matches, err := s.search.SimilarJobs(ctx, candidateID, SearchParams{
		Limit:         limit,
		MinSimilarity: minSimilarity,
		ScanLimit:     s.config.ScanLimit,
	})
	if err != nil {
		if IsNotFound(err) {
			observability.FromContext(ctx).Warn("candidate not found, returning empty job list",
				observability.String("candidate_id", candidateID))
			return []*JobMatch{}, nil
		}
		return nil, fmt.Errorf("job search failed: %w", err)
	}
	return matches, nil
}

// GetMatchingStats reports embedding coverage and cache counters.
func (s *MatchingService) GetMatchingStats(ctx context.Context) (*MatchingStats, error) {
	jobCounts, err := s.jobs.CountJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	candidateCounts, err := s.candidates.CountCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}

	stats := &MatchingStats{
		TotalJobs:                  jobCounts.Total,
		JobsWithEmbeddings:         jobCounts.WithEmbedding,
		JobEmbeddingCoverage:       coverage(jobCounts),
		TotalCandidates:            candidateCounts.Total,
		CandidatesWithEmbeddings:   candidateCounts.WithEmbedding,
		CandidateEmbeddingCoverage: coverage(candidateCounts),
	}

	if s.cache != nil {
		cacheStats, cacheErr := s.cache.Stats(ctx)
		if cacheErr != nil {
			observability.FromContext(ctx).Warn("failed to read cache stats", observability.Error(cacheErr))
		} else {
			stats.Cache = cacheStats
		}
	}

	return stats, nil
}

func coverage(counts EntityCounts) float64 {
	if counts.Total == 0 {
		return 0
	}
	return float64(counts.WithEmbedding) / float64(counts.Total)
}

// InvalidateJob drops cached results for a job. It returns the number of entries removed.
func (s *MatchingService) InvalidateJob(ctx context.Context, jobID string) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	removed, err := s.cache.InvalidateJob(ctx, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to invalidate job %s: %w", jobID, err)
	}
	observability.FromContext(ctx).Info("job cache invalidated",
		observability.String("job_id", jobID),
		observability.Int("removed", removed))
	return removed, nil
}

// InvalidateCandidate drops cached results referencing a candidate.
func (s *MatchingService) InvalidateCandidate(ctx context.Context, candidateID string) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	removed, err := s.cache.InvalidateCandidate(ctx, candidateID)
	if err != nil {
		return 0, fmt.Errorf("failed to invalidate candidate %s: %w", candidateID, err)
	}
	observability.FromContext(ctx).Info("candidate cache invalidated",
		observability.String("candidate_id", candidateID),
		observability.Int("removed", removed))
	return removed, nil
}
