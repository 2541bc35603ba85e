package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	_ "embed"

	"github.com/davidbz/matchwise/internal/observability"
	"github.com/davidbz/matchwise/internal/workpool"
)

//go:embed prompts/rerank.md
var rerankPromptTemplate string

const (
	vectorWeight = 0.3
	aiWeight     = 0.7

	defaultRerankWorkers       = 5
	defaultFallbackFloor       = 30.0
	defaultFallbackConfidence  = 0.5
	defaultMaxSummaryChars     = 2000
	defaultLogPreviewChars     = 200
	defaultRerankLanguage      = "en"
	fallbackReasoningTemplate  = "AI re-ranking unavailable (%s); score derived from %.0f%% vector similarity."
	fallbackReasonValidation   = "invalid model response"
	fallbackReasonTimeout      = "model timed out"
	fallbackReasonProviderDown = "model provider failed"
)

// RerankConfig tunes the re-ranking engine.
type RerankConfig struct {
	// Timeout applies to each completion call.
	Timeout time.Duration
	// Workers bounds concurrent completion calls; it is also the sub-batch size.
	Workers int
	// BatchPause is slept between sub-batches.
	BatchPause time.Duration
	// FallbackFloor is the minimum fallback AI score.
	FallbackFloor float64
	// FallbackConfidence is the confidence given to fallback scores.
	FallbackConfidence float64
	// MaxSummaryChars bounds each of the job and candidate summaries in the prompt.
	MaxSummaryChars int
}

// RerankRequest is one job and its vector shortlist.
type RerankRequest struct {
	Job        *Job
	Matches    []*MatchCandidate
	MinAIScore float64
	Language   string
}

// RerankOutput is the ranked result plus token usage of the run.
type RerankOutput struct {
	Results   []*MatchResult
	Usage     Usage
	Fallbacks int
	Dropped   int
}

// RerankEngine scores a shortlist with a generative model.
type RerankEngine struct {
	providers []CompletionProvider
	policies  ScoringPolicies
	config    RerankConfig
	recorder  Recorder
}

// NewRerankEngine creates the engine. Providers are tried in the given order per item.
func NewRerankEngine(
	providers []CompletionProvider,
	policies ScoringPolicies,
	config RerankConfig,
	recorder Recorder,
) (*RerankEngine, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: completion: %w", ErrConfiguration, ErrNoProviders)
	}

	if config.Workers <= 0 {
		config.Workers = defaultRerankWorkers
	}
	if config.FallbackFloor <= 0 {
		config.FallbackFloor = defaultFallbackFloor
	}
	if config.FallbackConfidence <= 0 {
		config.FallbackConfidence = defaultFallbackConfidence
	}
	if config.MaxSummaryChars <= 0 {
		config.MaxSummaryChars = defaultMaxSummaryChars
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &RerankEngine{
		providers: providers,
		policies:  policies,
		config:    config,
		recorder:  recorder,
	}, nil
}

type scoredItem struct {
	result *MatchResult
	usage  Usage
}

// Rerank scores every match. Failures are per item: the item keeps a fallback score.
// Results are sorted by overall score and items below MinAIScore are dropped.
func (e *RerankEngine) Rerank(ctx context.Context, req RerankRequest) (*RerankOutput, error) {
	if req.Job == nil {
		return nil, errors.New("job cannot be nil")
	}

	language := req.Language
	if language == "" {
		language = defaultRerankLanguage
	}

	items, err := workpool.Map(ctx, req.Matches, workpool.Options{
		Workers:    e.config.Workers,
		ChunkSize:  e.config.Workers,
		ChunkPause: e.config.BatchPause,
	}, func(ctx context.Context, _ int, match *MatchCandidate) (scoredItem, error) {
		return e.scoreOne(ctx, req.Job, match, language), nil
	})
	if err != nil {
		return nil, fmt.Errorf("rerank: %w", err)
	}

	output := &RerankOutput{Results: make([]*MatchResult, 0, len(items))}
	for i, item := range items {
		if item.Err != nil {
			// Only skipped items land here; keep them with a fallback score.
			item.Value = scoredItem{result: e.fallback(req.Job, req.Matches[i], item.Err, 0)}
		}

		result := item.Value.result
		output.Usage.PromptTokens += item.Value.usage.PromptTokens
		output.Usage.CompletionTokens += item.Value.usage.CompletionTokens
		output.Usage.TotalTokens += item.Value.usage.TotalTokens

		if result.Fallback {
			output.Fallbacks++
		}
		if result.AIScore < req.MinAIScore {
			output.Dropped++
			continue
		}
		output.Results = append(output.Results, result)
	}

	output.Results = TopK(output.Results, len(output.Results))

	observability.FromContext(ctx).Info("rerank completed",
		observability.Int("shortlist", len(req.Matches)),
		observability.Int("returned", len(output.Results)),
		observability.Int("fallbacks", output.Fallbacks),
		observability.Int("dropped", output.Dropped))

	return output, nil
}

func (e *RerankEngine) scoreOne(ctx context.Context, job *Job, match *MatchCandidate, language string) scoredItem {
	logger := observability.FromContext(ctx)
	started := time.Now()

	prompt := e.buildPrompt(job, match, language)

	completion, err := e.complete(ctx, prompt)
	if err != nil {
		logger.Warn("rerank call failed, using fallback score",
			observability.String("candidate_id", match.Candidate.ID),
			observability.Error(err))
		e.recorder.RerankOutcome(true)
		return scoredItem{result: e.fallback(job, match, err, time.Since(started))}
	}

	logger.Debug("rerank response",
		observability.String("candidate_id", match.Candidate.ID),
		observability.String("response_preview", observability.TruncateForLog(completion.Text, defaultLogPreviewChars)))

	assessment, err := ParseAssessment(completion.Text)
	if err != nil {
		logger.Warn("rerank response rejected, using fallback score",
			observability.String("candidate_id", match.Candidate.ID),
			observability.String("provider", completion.Provider),
			observability.Error(err))
		e.recorder.RerankOutcome(true)
		return scoredItem{
			result: e.fallback(job, match, err, time.Since(started)),
			usage:  completion.Usage,
		}
	}

	aiScore := e.policies.Apply(assessment.AIScore, ScoringContext{
		Job:              job,
		Candidate:        match.Candidate,
		VectorSimilarity: match.Similarity,
	})

	reasoning := assessment.Reasoning
	if reasoning == "" {
		reasoning = "No reasoning provided by the model."
	}

	e.recorder.RerankOutcome(false)

	return scoredItem{
		result: &MatchResult{
			JobID:            job.ID,
			CandidateID:      match.Candidate.ID,
			CandidateName:    match.Candidate.Name,
			VectorSimilarity: match.Similarity,
			AIScore:          aiScore,
			OverallScore:     BlendScore(match.Similarity, aiScore, assessment.Confidence),
			Reasoning:        reasoning,
			Confidence:       assessment.Confidence,
			Model:            completion.Model,
			Latency:          time.Since(started),
		},
		usage: completion.Usage,
	}
}

// complete tries each provider in order and returns the first answer.
func (e *RerankEngine) complete(ctx context.Context, prompt string) (*Completion, error) {
	chainErr := &ChainError{}

	for _, provider := range e.providers {
		completion, err := callProvider(ctx, e.recorder, "completion", provider.Name(), "complete", e.config.Timeout,
			func(callCtx context.Context) (*Completion, error) {
				return provider.Complete(callCtx, prompt)
			})
		if err == nil && completion != nil {
			if completion.Provider == "" {
				completion.Provider = provider.Name()
			}
			return completion, nil
		}
		if err == nil {
			err = &ProviderError{Provider: provider.Name(), Op: "complete", Err: errors.New("empty completion")}
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var providerErr *ProviderError
		if !errors.As(err, &providerErr) {
			providerErr = &ProviderError{Provider: provider.Name(), Op: "complete", Err: err}
		}
		chainErr.Attempts = append(chainErr.Attempts, providerErr)
	}

	return nil, chainErr
}

// fallback derives a score purely from vector similarity.
func (e *RerankEngine) fallback(job *Job, match *MatchCandidate, cause error, latency time.Duration) *MatchResult {
	aiScore := clamp(math.Max(match.Similarity*100, e.config.FallbackFloor), minAIScore, maxAIScore)

	return &MatchResult{
		JobID:            job.ID,
		CandidateID:      match.Candidate.ID,
		CandidateName:    match.Candidate.Name,
		VectorSimilarity: match.Similarity,
		AIScore:          aiScore,
		OverallScore:     BlendScore(match.Similarity, aiScore, e.config.FallbackConfidence),
		Reasoning:        fmt.Sprintf(fallbackReasoningTemplate, fallbackReason(cause), match.Similarity*100),
		Confidence:       e.config.FallbackConfidence,
		Fallback:         true,
		Latency:          latency,
	}
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return fallbackReasonValidation
	case errors.Is(err, ErrProviderTimeout):
		return fallbackReasonTimeout
	default:
		return fallbackReasonProviderDown
	}
}

// BlendScore combines vector similarity and AI score; confidence dampens the sum.
func BlendScore(similarity, aiScore, confidence float64) float64 {
	blended := clamp(similarity*100*vectorWeight+aiScore*aiWeight, 0, 100)
	return blended * clamp(confidence, 0, 1)
}

func (e *RerankEngine) buildPrompt(job *Job, match *MatchCandidate, language string) string {
	replacer := strings.NewReplacer(
		"{{JOB}}", truncateRunes(jobSummary(job), e.config.MaxSummaryChars),
		"{{CANDIDATE}}", truncateRunes(candidateSummary(match.Candidate), e.config.MaxSummaryChars),
		"{{SIMILARITY}}", strconv.FormatFloat(match.Similarity*100, 'f', 1, 64),
		"{{LANGUAGE}}", language,
	)
	return replacer.Replace(rerankPromptTemplate)
}

func jobSummary(job *Job) string {
	var b strings.Builder
	writeLine(&b, "Title", job.Title)
	writeLine(&b, "Company", job.Company)
	writeLine(&b, "Location", job.Location)
	writeLine(&b, "Experience level", job.ExperienceLevel)
	writeLine(&b, "Employment type", job.EmploymentType)
	writeLine(&b, "Skills", strings.Join(job.Skills, ", "))
	writeLine(&b, "Requirements", strings.Join(job.Requirements, "; "))
	writeLine(&b, "Description", job.Description)
	return strings.TrimSpace(b.String())
}

func candidateSummary(candidate *Candidate) string {
	var b strings.Builder
	writeLine(&b, "Headline", candidate.Headline)
	if candidate.YearsExperience > 0 {
		writeLine(&b, "Years of experience", strconv.Itoa(candidate.YearsExperience))
	}
	writeLine(&b, "Location", candidate.Location)
	writeLine(&b, "Skills", strings.Join(candidate.Skills, ", "))
	writeLine(&b, "Experience", strings.Join(candidate.Experience, "; "))
	writeLine(&b, "Education", strings.Join(candidate.Education, "; "))
	writeLine(&b, "Summary", candidate.Summary)
	return strings.TrimSpace(b.String())
}

func writeLine(b *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	b.WriteString("- ")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}
