package domain

import (
	"context"
	"time"
)

// EmbeddingProvider generates vector embeddings from text.
type EmbeddingProvider interface {
	// Embed creates a vector embedding from text.
	Embed(ctx context.Context, text string) (*Embedding, error)

	// Name returns the provider identifier.
	Name() string

	// Dimension returns the vector dimension of the configured model.
	Dimension() int
}

// CompletionProvider is a generative model used for re-ranking.
type CompletionProvider interface {
	// Complete sends a free-form prompt and returns the raw text answer.
	Complete(ctx context.Context, prompt string) (*Completion, error)

	// Name returns the provider identifier.
	Name() string
}

// QueryFilter narrows repository scans.
type QueryFilter struct {
	Role       string
	Location   string
	ExcludeIDs []string
	Limit      int // 0 means no limit
}

// JobRepository reads jobs.
type JobRepository interface {
	// GetJob returns a job by id or an ErrNotFound-wrapped error.
	GetJob(ctx context.Context, id string) (*Job, error)

	// QueryActiveJobs returns active, non-deleted jobs that carry an embedding.
	QueryActiveJobs(ctx context.Context, filter QueryFilter) ([]*Job, error)

	// CountJobs reports totals for stats.
	CountJobs(ctx context.Context) (EntityCounts, error)
}

// CandidateRepository reads candidates.
type CandidateRepository interface {
	// GetCandidate returns a candidate by id or an ErrNotFound-wrapped error.
	GetCandidate(ctx context.Context, id string) (*Candidate, error)

	// QueryActiveCandidates returns active, non-deleted candidates of the filter role
	// that carry an embedding.
	QueryActiveCandidates(ctx context.Context, filter QueryFilter) ([]*Candidate, error)

	// CountCandidates reports totals for stats.
	CountCandidates(ctx context.Context) (EntityCounts, error)
}

// EmbeddingStore persists embeddings and finds records that still lack one.
type EmbeddingStore interface {
	// JobsMissingEmbeddings returns non-deleted jobs without an embedding; limit 0 means all.
	JobsMissingEmbeddings(ctx context.Context, limit int) ([]*Job, error)

	// CandidatesMissingEmbeddings returns non-deleted candidates without an embedding.
	CandidatesMissingEmbeddings(ctx context.Context, limit int) ([]*Candidate, error)

	// SaveEmbedding stores the embedding of an existing job or candidate.
	SaveEmbedding(ctx context.Context, embedding *EmbeddingVector) error
}

// MatchCache stores pair results and per-job result sets with a TTL.
type MatchCache interface {
	// GetPair returns a cached pair result or ErrCacheMiss.
	GetPair(ctx context.Context, jobID, candidateID string) (*MatchResult, error)

	// SetPair stores a pair result.
	SetPair(ctx context.Context, result *MatchResult) error

	// GetSet returns the cached result set for a job and options hash or ErrCacheMiss.
	GetSet(ctx context.Context, jobID, optionsHash string) ([]*MatchResult, error)

	// SetSet stores a job result set.
	SetSet(ctx context.Context, jobID, optionsHash string, results []*MatchResult) error

	// InvalidateJob removes every entry referencing the job.
	InvalidateJob(ctx context.Context, jobID string) (int, error)

	// InvalidateCandidate removes every entry referencing the candidate.
	InvalidateCandidate(ctx context.Context, candidateID string) (int, error)

	// Stats returns cache counters.
	Stats(ctx context.Context) (CacheStats, error)

	// TTL returns the lifetime of new entries.
	TTL() time.Duration
}

// Recorder receives pipeline measurements.
type Recorder interface {
	ProviderCall(kind, provider, status string, elapsed time.Duration)
	RerankOutcome(fallback bool)
	CacheLookup(kind string, hit bool)
	JobFinished(status string, elapsed time.Duration)
}

// NopRecorder discards measurements.
type NopRecorder struct{}

func (NopRecorder) ProviderCall(string, string, string, time.Duration) {}
func (NopRecorder) RerankOutcome(bool)                                 {}
func (NopRecorder) CacheLookup(string, bool)                           {}
func (NopRecorder) JobFinished(string, time.Duration)                  {}
