package domain

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
)

// Default option values.
const (
	DefaultVectorTopK    = 50
	DefaultAITopK        = 20
	DefaultMinAIScore    = 50.0
	DefaultLanguage      = "en"
	DefaultMaxConcurrent = 3
)

const optionsHashBytes = 16

// MatchOptions are the caller-tunable knobs of a match run. Zero values take
// defaults; the two thresholds are pointers so an explicit 0 is kept.
type MatchOptions struct {
	VectorTopK          int      `json:"vectorTopK,omitempty"`
	AITopK              int      `json:"aiTopK,omitempty"`
	MinVectorSimilarity *float64 `json:"minVectorSimilarity,omitempty"`
	MinAIScore          *float64 `json:"minAiScore,omitempty"`
	Language            string   `json:"language,omitempty"`
	MaxConcurrent       int      `json:"maxConcurrent,omitempty"`
	Location            string   `json:"location,omitempty"`
	// ExcludeCandidateIDs are never shortlisted.
	ExcludeCandidateIDs []string `json:"excludeCandidateIds,omitempty"`
	// DegradedSearch opts into pulling arbitrary candidates when vector search is empty.
	DegradedSearch bool `json:"degradedSearch,omitempty"`
	// ForceRefresh bypasses cached result sets.
	ForceRefresh bool `json:"forceRefresh,omitempty"`
}

// DefaultMatchOptions returns the documented defaults.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		VectorTopK:          DefaultVectorTopK,
		AITopK:              DefaultAITopK,
		MinVectorSimilarity: Float64(DefaultMinCandidateSimilarity),
		MinAIScore:          Float64(DefaultMinAIScore),
		Language:            DefaultLanguage,
		MaxConcurrent:       DefaultMaxConcurrent,
	}
}

// WithDefaults fills zero fields from defaults.
func (o MatchOptions) WithDefaults(defaults MatchOptions) MatchOptions {
	if o.VectorTopK <= 0 {
		o.VectorTopK = defaults.VectorTopK
	}
	if o.AITopK <= 0 {
		o.AITopK = defaults.AITopK
	}
	if o.MinVectorSimilarity == nil {
		o.MinVectorSimilarity = defaults.MinVectorSimilarity
	}
	if o.MinAIScore == nil {
		o.MinAIScore = defaults.MinAIScore
	}
	if o.Language == "" {
		o.Language = defaults.Language
	}
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = defaults.MaxConcurrent
	}
	if !o.DegradedSearch {
		o.DegradedSearch = defaults.DegradedSearch
	}
	return o
}

// Float64 returns a pointer to v, for the threshold fields.
func Float64(v float64) *float64 {
	return &v
}

// SimilarityThreshold returns MinVectorSimilarity, or 0 when unset.
func (o MatchOptions) SimilarityThreshold() float64 {
	if o.MinVectorSimilarity == nil {
		return 0
	}
	return *o.MinVectorSimilarity
}

// AIScoreThreshold returns MinAIScore, or 0 when unset.
func (o MatchOptions) AIScoreThreshold() float64 {
	if o.MinAIScore == nil {
		return 0
	}
	return *o.MinAIScore
}

// CacheIdentity returns the option fields that change a job's result set.
func (o MatchOptions) CacheIdentity() map[string]any {
	excluded := slices.Clone(o.ExcludeCandidateIDs)
	slices.Sort(excluded)
	excluded = slices.Compact(excluded)

	return map[string]any{
		"vectorTopK":          o.VectorTopK,
		"aiTopK":              o.AITopK,
		"minVectorSimilarity": o.SimilarityThreshold(),
		"minAiScore":          o.AIScoreThreshold(),
		"language":            o.Language,
		"location":            o.Location,
		"degradedSearch":      o.DegradedSearch,
		"excludeCandidateIds": excluded,
	}
}

// Hash returns the canonical cache hash of the options.
func (o MatchOptions) Hash() string {
	hash, err := CanonicalOptionsHash(o.CacheIdentity())
	if err != nil {
		// Only scalars and string slices are present, so encoding cannot fail.
		panic(err)
	}
	return hash
}

// CanonicalOptionsHash hashes options with keys sorted, so key order never changes
// the result.
func CanonicalOptionsHash(options map[string]any) (string, error) {
	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return "", fmt.Errorf("failed to encode option key %q: %w", key, err)
		}
		valueJSON, err := json.Marshal(options[key])
		if err != nil {
			return "", fmt.Errorf("failed to encode option %q: %w", key, err)
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')

	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:optionsHashBytes]), nil
}
