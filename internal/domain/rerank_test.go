package domain_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/mocks"
	"github.com/davidbz/matchwise/internal/observability"
)

func newCompletionProvider(t *testing.T, name string) *mocks.MockCompletionProvider {
	t.Helper()
	provider := mocks.NewMockCompletionProvider(t)
	provider.EXPECT().Name().Return(name).Maybe()
	return provider
}

func testJob() *domain.Job {
	return &domain.Job{
		ID:              "job-1",
		Title:           "Backend Engineer",
		Skills:          []string{"go"},
		ExperienceLevel: "senior",
		Status:          domain.JobStatusActive,
	}
}

func shortlist(similarities ...float64) []*domain.MatchCandidate {
	matches := make([]*domain.MatchCandidate, 0, len(similarities))
	for i, similarity := range similarities {
		id := string(rune('a' + i))
		matches = append(matches, &domain.MatchCandidate{
			Candidate:  &domain.Candidate{ID: "cand-" + id, Name: "Candidate " + strings.ToUpper(id), Headline: "profile " + id},
			Similarity: similarity,
		})
	}
	return matches
}

// answerByCandidate answers with the score mapped to the candidate headline in the prompt.
func answerByCandidate(scores map[string]string) func(context.Context, string) (*domain.Completion, error) {
	return func(_ context.Context, prompt string) (*domain.Completion, error) {
		for headline, answer := range scores {
			if strings.Contains(prompt, headline) {
				return &domain.Completion{
					Text:  answer,
					Model: "gpt-4o-mini",
					Usage: domain.Usage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120},
				}, nil
			}
		}
		return nil, errors.New("unexpected prompt")
	}
}

func TestBlendScore(t *testing.T) {
	tests := []struct {
		name       string
		similarity float64
		aiScore    float64
		confidence float64
		expected   float64
	}{
		{name: "full confidence", similarity: 0.8, aiScore: 90, confidence: 1, expected: 87},
		{name: "damped by confidence", similarity: 0.5, aiScore: 60, confidence: 0.5, expected: 28.5},
		{name: "clamped at 100", similarity: 1, aiScore: 100, confidence: 1, expected: 100},
		{name: "negative similarity clamped at 0", similarity: -1, aiScore: 0, confidence: 1, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expected, domain.BlendScore(tt.similarity, tt.aiScore, tt.confidence), 1e-9)
		})
	}
}

func TestRerank_ScoresAndSorts(t *testing.T) {
	provider := newCompletionProvider(t, "openai")
	provider.EXPECT().
		Complete(mock.Anything, mock.Anything).
		RunAndReturn(answerByCandidate(map[string]string{
			"profile a": `{"aiScore": 60, "reasoning": "Partial fit.", "confidence": 1}`,
			"profile b": `{"aiScore": 90, "reasoning": "Great fit.", "confidence": 1}`,
		}))

	engine, err := domain.NewRerankEngine([]domain.CompletionProvider{provider}, nil, domain.RerankConfig{}, nil)
	require.NoError(t, err)

	output, err := engine.Rerank(context.Background(), domain.RerankRequest{
		Job:        testJob(),
		Matches:    shortlist(0.5, 0.8),
		MinAIScore: 50,
	})
	require.NoError(t, err)

	require.Len(t, output.Results, 2)
	require.Equal(t, "cand-b", output.Results[0].CandidateID)
	require.InDelta(t, 87.0, output.Results[0].OverallScore, 1e-9)
	require.Equal(t, "Great fit.", output.Results[0].Reasoning)
	require.Equal(t, "cand-a", output.Results[1].CandidateID)
	require.InDelta(t, 57.0, output.Results[1].OverallScore, 1e-9)
	require.Zero(t, output.Fallbacks)
	require.Equal(t, 240, output.Usage.TotalTokens)
	require.Equal(t, "job-1", output.Results[0].JobID)
	require.Equal(t, "gpt-4o-mini", output.Results[0].Model)
}

func TestRerank_LogsJobIDOnce(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	observability.SetLogger(zap.New(core))
	t.Cleanup(func() { observability.SetLogger(zap.NewNop()) })

	provider := newCompletionProvider(t, "openai")
	provider.EXPECT().
		Complete(mock.Anything, mock.Anything).
		Return(&domain.Completion{Text: `{"aiScore": 70, "reasoning": "ok", "confidence": 1}`}, nil)

	engine, err := domain.NewRerankEngine([]domain.CompletionProvider{provider}, nil, domain.RerankConfig{}, nil)
	require.NoError(t, err)

	ctx := observability.WithJobID(context.Background(), "job-1")
	_, err = engine.Rerank(ctx, domain.RerankRequest{Job: testJob(), Matches: shortlist(0.8)})
	require.NoError(t, err)

	entries := logs.FilterMessage("rerank completed").All()
	require.Len(t, entries, 1)

	jobIDFields := 0
	for _, field := range entries[0].Context {
		if field.Key == "job_id" {
			jobIDFields++
		}
	}
	require.Equal(t, 1, jobIDFields)
}

func TestRerank_DropsBelowMinAIScore(t *testing.T) {
	provider := newCompletionProvider(t, "openai")
	provider.EXPECT().
		Complete(mock.Anything, mock.Anything).
		RunAndReturn(answerByCandidate(map[string]string{
			"profile a": `{"aiScore": 49.9, "reasoning": "Weak."}`,
			"profile b": `{"aiScore": 50, "reasoning": "Borderline."}`,
		}))

	engine, err := domain.NewRerankEngine([]domain.CompletionProvider{provider}, nil, domain.RerankConfig{}, nil)
	require.NoError(t, err)

	output, err := engine.Rerank(context.Background(), domain.RerankRequest{
		Job:        testJob(),
		Matches:    shortlist(0.9, 0.2),
		MinAIScore: 50,
	})
	require.NoError(t, err)

	require.Len(t, output.Results, 1)
	require.Equal(t, "cand-b", output.Results[0].CandidateID)
	require.Equal(t, 1, output.Dropped)
	require.InDelta(t, domain.DefaultConfidence, output.Results[0].Confidence, 1e-9)
}

func TestRerank_FallbackOnInvalidResponse(t *testing.T) {
	provider := newCompletionProvider(t, "openai")
	provider.EXPECT().
		Complete(mock.Anything, mock.Anything).
		Return(&domain.Completion{Text: `{"aiScore": 150, "reasoning": "x", "confidence": 0.9}`}, nil)

	engine, err := domain.NewRerankEngine([]domain.CompletionProvider{provider}, nil, domain.RerankConfig{}, nil)
	require.NoError(t, err)

	output, err := engine.Rerank(context.Background(), domain.RerankRequest{
		Job:     testJob(),
		Matches: shortlist(0.82),
	})
	require.NoError(t, err)

	require.Len(t, output.Results, 1)
	result := output.Results[0]
	require.True(t, result.Fallback)
	require.InDelta(t, 82.0, result.AIScore, 1e-9)
	require.InDelta(t, 0.5, result.Confidence, 1e-9)
	require.InDelta(t, domain.BlendScore(0.82, 82, 0.5), result.OverallScore, 1e-9)
	require.Contains(t, result.Reasoning, "invalid model response")
	require.Contains(t, result.Reasoning, "82%")
	require.Equal(t, 1, output.Fallbacks)
}

func TestRerank_FallbackFloor(t *testing.T) {
	provider := newCompletionProvider(t, "openai")
	provider.EXPECT().
		Complete(mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	engine, err := domain.NewRerankEngine([]domain.CompletionProvider{provider}, nil, domain.RerankConfig{}, nil)
	require.NoError(t, err)

	output, err := engine.Rerank(context.Background(), domain.RerankRequest{
		Job:     testJob(),
		Matches: shortlist(0.1),
	})
	require.NoError(t, err)

	require.Len(t, output.Results, 1)
	require.InDelta(t, 30.0, output.Results[0].AIScore, 1e-9)
	require.Contains(t, output.Results[0].Reasoning, "model provider failed")
}

func TestRerank_FallbackOnTimeout(t *testing.T) {
	provider := newCompletionProvider(t, "openai")
	provider.EXPECT().
		Complete(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ string) (*domain.Completion, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	engine, err := domain.NewRerankEngine(
		[]domain.CompletionProvider{provider},
		nil,
		domain.RerankConfig{Timeout: 10 * time.Millisecond},
		nil,
	)
	require.NoError(t, err)

	output, err := engine.Rerank(context.Background(), domain.RerankRequest{
		Job:     testJob(),
		Matches: shortlist(0.7),
	})
	require.NoError(t, err)

	require.True(t, output.Results[0].Fallback)
	require.Contains(t, output.Results[0].Reasoning, "model timed out")
}

func TestRerank_SecondProviderServes(t *testing.T) {
	primary := newCompletionProvider(t, "openai")
	secondary := newCompletionProvider(t, "gemini")

	primary.EXPECT().Complete(mock.Anything, mock.Anything).Return(nil, errors.New("rate limited"))
	secondary.EXPECT().
		Complete(mock.Anything, mock.Anything).
		Return(&domain.Completion{Text: `{"aiScore": 70, "reasoning": "Solid.", "confidence": 0.9}`, Model: "gemini-2.5-flash"}, nil)

	engine, err := domain.NewRerankEngine([]domain.CompletionProvider{primary, secondary}, nil, domain.RerankConfig{}, nil)
	require.NoError(t, err)

	output, err := engine.Rerank(context.Background(), domain.RerankRequest{
		Job:     testJob(),
		Matches: shortlist(0.6),
	})
	require.NoError(t, err)

	require.False(t, output.Results[0].Fallback)
	require.Equal(t, "gemini-2.5-flash", output.Results[0].Model)
}

func TestRerank_AppliesPoliciesBeforeBlend(t *testing.T) {
	provider := newCompletionProvider(t, "openai")
	provider.EXPECT().
		Complete(mock.Anything, mock.Anything).
		Return(&domain.Completion{Text: `{"aiScore": 20, "reasoning": "No experience.", "confidence": 1}`}, nil)

	policies, err := domain.PoliciesByName([]string{domain.PolicyTitleFloor})
	require.NoError(t, err)

	engine, err := domain.NewRerankEngine([]domain.CompletionProvider{provider}, policies, domain.RerankConfig{}, nil)
	require.NoError(t, err)

	job := testJob()
	job.Title = "Engineering Intern"

	output, err := engine.Rerank(context.Background(), domain.RerankRequest{
		Job:     job,
		Matches: shortlist(0.4),
	})
	require.NoError(t, err)

	require.InDelta(t, 60.0, output.Results[0].AIScore, 1e-9)
	require.InDelta(t, domain.BlendScore(0.4, 60, 1), output.Results[0].OverallScore, 1e-9)
}

func TestRerank_PromptContent(t *testing.T) {
	provider := newCompletionProvider(t, "openai")
	provider.EXPECT().
		Complete(mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Backend Engineer") &&
				strings.Contains(prompt, "profile a") &&
				strings.Contains(prompt, "75.0%") &&
				strings.Contains(prompt, `language "pt"`)
		})).
		Return(&domain.Completion{Text: `{"aiScore": 80}`}, nil)

	engine, err := domain.NewRerankEngine([]domain.CompletionProvider{provider}, nil, domain.RerankConfig{}, nil)
	require.NoError(t, err)

	_, err = engine.Rerank(context.Background(), domain.RerankRequest{
		Job:      testJob(),
		Matches:  shortlist(0.75),
		Language: "pt",
	})
	require.NoError(t, err)
}

func TestNewRerankEngine_NoProviders(t *testing.T) {
	_, err := domain.NewRerankEngine(nil, nil, domain.RerankConfig{}, nil)
	require.ErrorIs(t, err, domain.ErrNoProviders)
}
