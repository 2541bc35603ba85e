package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/davidbz/matchwise/internal/observability"
)

const (
	// DefaultMinCandidateSimilarity is the job -> candidates threshold. It is low to
	// keep recall for the re-ranking stage.
	DefaultMinCandidateSimilarity = 0.1

	// DefaultMinJobSimilarity is the candidate -> jobs threshold.
	DefaultMinJobSimilarity = 0.3

	// DegradedSimilarity is assumed for candidates pulled in degraded mode.
	DegradedSimilarity = 0.5

	overFetchFactor = 2
)

// SearchParams controls one vector search.
type SearchParams struct {
	Limit         int
	MinSimilarity float64
	Location      string
	// ExcludeIDs are skipped by the repository scan.
	ExcludeIDs []string
	// ScanLimit caps the opposite-side rows scanned; 0 scans everything.
	ScanLimit int
}

// VectorSearch ranks the opposite entity type by cosine similarity of stored embeddings.
type VectorSearch struct {
	jobs       JobRepository
	candidates CandidateRepository
}

// NewVectorSearch creates a new vector search over the given repositories.
func NewVectorSearch(jobs JobRepository, candidates CandidateRepository) *VectorSearch {
	return &VectorSearch{
		jobs:       jobs,
		candidates: candidates,
	}
}

// SimilarCandidates returns candidates for a job. A job without an embedding yields
// an empty result, not an error.
func (v *VectorSearch) SimilarCandidates(ctx context.Context, jobID string, params SearchParams) ([]*MatchCandidate, error) {
	job, err := v.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	return v.CandidatesForJob(ctx, job, params)
}

// CandidatesForJob is SimilarCandidates for an already loaded job.
func (v *VectorSearch) CandidatesForJob(ctx context.Context, job *Job, params SearchParams) ([]*MatchCandidate, error) {
	if observability.GetJobID(ctx) == "" {
		ctx = observability.WithJobID(ctx, job.ID)
	}
	logger := observability.FromContext(ctx)

	if job.Embedding.Dimension() == 0 {
		logger.Warn("job has no embedding, returning empty candidate list")
		return []*MatchCandidate{}, nil
	}

	candidates, err := v.candidates.QueryActiveCandidates(ctx, QueryFilter{
		Role:       RoleCandidate,
		Location:   params.Location,
		ExcludeIDs: params.ExcludeIDs,
		Limit:      params.ScanLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	scored := make([]*MatchCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if !candidate.IsMatchable() {
			continue
		}
		similarity, simErr := CosineSimilarity(job.Embedding.Values, candidate.Embedding.Values)
		if simErr != nil {
			logger.Warn("skipping candidate with incompatible embedding",
				observability.String("candidate_id", candidate.ID),
				observability.Error(simErr))
			continue
		}
		scored = append(scored, &MatchCandidate{Candidate: candidate, Similarity: similarity})
	}

	results := thresholdTopK(scored, params.Limit, params.MinSimilarity)

	logger.Info("candidate vector search completed",
		observability.Int("scanned", len(candidates)),
		observability.Int("returned", len(results)),
		observability.Float64("min_similarity", params.MinSimilarity))

	return results, nil
}

// SimilarJobs returns jobs for a candidate. A candidate without an embedding yields
// an empty result, not an error.
func (v *VectorSearch) SimilarJobs(ctx context.Context, candidateID string, params SearchParams) ([]*JobMatch, error) {
	logger := observability.FromContext(ctx)

	candidate, err := v.candidates.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate: %w", err)
	}

	if candidate.Embedding.Dimension() == 0 {
		logger.Warn("candidate has no embedding, returning empty job list",
			observability.String("candidate_id", candidateID))
		return []*JobMatch{}, nil
	}

	jobs, err := v.jobs.QueryActiveJobs(ctx, QueryFilter{
		Location:   params.Location,
		ExcludeIDs: params.ExcludeIDs,
		Limit:      params.ScanLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}

	scored := make([]*JobMatch, 0, len(jobs))
	for _, job := range jobs {
		if !job.IsMatchable() {
			continue
		}
		similarity, simErr := CosineSimilarity(candidate.Embedding.Values, job.Embedding.Values)
		if simErr != nil {
			logger.Warn("skipping job with incompatible embedding",
				observability.String("job_id", job.ID),
				observability.Error(simErr))
			continue
		}
		scored = append(scored, &JobMatch{Job: job, Similarity: similarity})
	}

	results := thresholdTopK(scored, params.Limit, params.MinSimilarity)

	logger.Info("job vector search completed",
		observability.Int("scanned", len(jobs)),
		observability.Int("returned", len(results)),
		observability.Float64("min_similarity", params.MinSimilarity))

	return results, nil
}

// DegradedCandidates pulls arbitrary embedded candidates with a flat assumed
// similarity. Callers opt in explicitly.
func (v *VectorSearch) DegradedCandidates(ctx context.Context, limit int, excludeIDs []string) ([]*MatchCandidate, error) {
	candidates, err := v.candidates.QueryActiveCandidates(ctx, QueryFilter{
		Role:       RoleCandidate,
		ExcludeIDs: excludeIDs,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	results := make([]*MatchCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if len(results) == limit {
			break
		}
		if candidate.IsMatchable() {
			results = append(results, &MatchCandidate{Candidate: candidate, Similarity: DegradedSimilarity})
		}
	}
	return results, nil
}

// thresholdTopK over-fetches 2x limit by score, drops items below the threshold and
// truncates to limit.
func thresholdTopK[T Scored](items []T, limit int, minSimilarity float64) []T {
	if limit <= 0 {
		return []T{}
	}

	fetched := TopK(items, limit*overFetchFactor)

	results := make([]T, 0, limit)
	for _, item := range fetched {
		if item.Score() < minSimilarity {
			continue
		}
		results = append(results, item)
		if len(results) == limit {
			break
		}
	}
	return results
}

// IsNotFound reports whether err is an ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
