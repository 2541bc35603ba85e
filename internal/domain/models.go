package domain

import "time"

// EntityKind distinguishes the two sides of a match.
type EntityKind string

const (
	KindJob       EntityKind = "job"
	KindCandidate EntityKind = "candidate"
)

// RoleCandidate is the user role eligible for job matching.
const RoleCandidate = "candidate"

// JobStatusActive marks a job open for matching.
const JobStatusActive = "active"

// EmbeddingVector is a stored embedding owned by a job or a candidate.
type EmbeddingVector struct {
	OwnerID     string     `json:"owner_id"`
	OwnerKind   EntityKind `json:"owner_kind"`
	Values      []float64  `json:"values"`
	Model       string     `json:"model"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// Dimension returns the vector length.
func (e *EmbeddingVector) Dimension() int {
	if e == nil {
		return 0
	}
	return len(e.Values)
}

// Job is a job posting as seen by the matching engine.
type Job struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Company         string           `json:"company,omitempty"`
	Description     string           `json:"description,omitempty"`
	Requirements    []string         `json:"requirements,omitempty"`
	Skills          []string         `json:"skills,omitempty"`
	Location        string           `json:"location,omitempty"`
	EmploymentType  string           `json:"employment_type,omitempty"`
	ExperienceLevel string           `json:"experience_level,omitempty"`
	Status          string           `json:"status"`
	Deleted         bool             `json:"deleted,omitempty"`
	Embedding       *EmbeddingVector `json:"embedding,omitempty"`
}

// IsMatchable reports whether the job can appear in search results.
func (j *Job) IsMatchable() bool {
	return j != nil && !j.Deleted && j.Status == JobStatusActive && j.Embedding.Dimension() > 0
}

// Candidate is a job seeker profile as seen by the matching engine.
type Candidate struct {
	ID              string           `json:"id"`
	Role            string           `json:"role"`
	Name            string           `json:"name"`
	Headline        string           `json:"headline,omitempty"`
	Summary         string           `json:"summary,omitempty"`
	Skills          []string         `json:"skills,omitempty"`
	Experience      []string         `json:"experience,omitempty"`
	Education       []string         `json:"education,omitempty"`
	YearsExperience int              `json:"years_experience,omitempty"`
	Location        string           `json:"location,omitempty"`
	Active          bool             `json:"active"`
	Deleted         bool             `json:"deleted,omitempty"`
	Embedding       *EmbeddingVector `json:"embedding,omitempty"`
}

// IsMatchable reports whether the candidate can appear in search results.
func (c *Candidate) IsMatchable() bool {
	return c != nil && !c.Deleted && c.Active && c.Role == RoleCandidate && c.Embedding.Dimension() > 0
}

// MatchCandidate is a vector-stage hit for a job.
type MatchCandidate struct {
	Candidate  *Candidate
	Similarity float64
}

// JobMatch is a vector-stage hit for a candidate.
type JobMatch struct {
	Job        *Job    `json:"job"`
	Similarity float64 `json:"similarity"`
}

// MatchResult is the blended outcome for one (job, candidate) pair.
type MatchResult struct {
	JobID            string        `json:"job_id"`
	CandidateID      string        `json:"candidate_id"`
	CandidateName    string        `json:"candidate_name,omitempty"`
	VectorSimilarity float64       `json:"vector_similarity"`
	AIScore          float64       `json:"ai_score"`
	OverallScore     float64       `json:"overall_score"`
	Reasoning        string        `json:"reasoning"`
	Confidence       float64       `json:"confidence"`
	Fallback         bool          `json:"fallback"`
	Model            string        `json:"model,omitempty"`
	Latency          time.Duration `json:"latency"`
	ExpiresAt        time.Time     `json:"expires_at"`
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Embedding is a provider embedding response.
type Embedding struct {
	Vector []float64
	Model  string
	Usage  Usage
}

// EmbeddingResult is the adapter-level result of generateEmbedding.
type EmbeddingResult struct {
	Vector        []float64
	Model         string
	Provider      string
	TokenEstimate int
}

// BatchEmbeddingItem is the per-item outcome of a batch embedding run.
type BatchEmbeddingItem struct {
	Index  int
	Result *EmbeddingResult
	Err    error
}

// Completion is a provider completion response.
type Completion struct {
	Text     string
	Model    string
	Provider string
	Usage    Usage
}

// MatchingStats summarizes embedding coverage and cache activity.
type MatchingStats struct {
	TotalJobs                  int        `json:"total_jobs"`
	JobsWithEmbeddings         int        `json:"jobs_with_embeddings"`
	JobEmbeddingCoverage       float64    `json:"job_embedding_coverage"`
	TotalCandidates            int        `json:"total_candidates"`
	CandidatesWithEmbeddings   int        `json:"candidates_with_embeddings"`
	CandidateEmbeddingCoverage float64    `json:"candidate_embedding_coverage"`
	Cache                      CacheStats `json:"cache"`
}

// CacheStats contains cache performance counters.
type CacheStats struct {
	Entries   int   `json:"entries"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// EntityCounts is what repositories report for stats.
type EntityCounts struct {
	Total         int
	WithEmbedding int
}
