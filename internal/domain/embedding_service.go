package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/davidbz/matchwise/internal/observability"
	"github.com/davidbz/matchwise/internal/workpool"
)

const (
	charsPerToken = 4

	defaultEmbeddingChunkSize = 10
)

// EmbeddingConfig tunes the embedding adapter.
type EmbeddingConfig struct {
	// Timeout applies to each provider call.
	Timeout time.Duration
	// MaxFallbacks is how many providers after the primary may be tried.
	MaxFallbacks int
	// ChunkSize is the batch chunk size; items of a chunk run concurrently.
	ChunkSize int
	// ChunkPause is slept between batch chunks.
	ChunkPause time.Duration
}

// EmbeddingService generates embeddings through an ordered provider chain.
type EmbeddingService struct {
	providers []EmbeddingProvider
	config    EmbeddingConfig
	recorder  Recorder
}

// NewEmbeddingService creates the adapter. Providers are tried in the given order.
func NewEmbeddingService(providers []EmbeddingProvider, config EmbeddingConfig, recorder Recorder) (*EmbeddingService, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: embedding: %w", ErrConfiguration, ErrNoProviders)
	}
	if err := checkDimensions(providers); err != nil {
		return nil, err
	}

	if config.ChunkSize <= 0 {
		config.ChunkSize = defaultEmbeddingChunkSize
	}
	if config.MaxFallbacks < 0 {
		config.MaxFallbacks = 0
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &EmbeddingService{
		providers: providers,
		config:    config,
		recorder:  recorder,
	}, nil
}

// GenerateEmbedding embeds text with the primary provider, falling back along
// the chain at most MaxFallbacks times.
func (s *EmbeddingService) GenerateEmbedding(ctx context.Context, text string) (*EmbeddingResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Field: "text", Reason: "cannot be empty"}
	}

	logger := observability.FromContext(ctx)

	attempts := s.providers[:min(len(s.providers), s.config.MaxFallbacks+1)]
	expected := s.Dimension()
	chainErr := &ChainError{}

	for i, provider := range attempts {
		embedding, err := callProvider(ctx, s.recorder, "embedding", provider.Name(), "embed", s.config.Timeout,
			func(callCtx context.Context) (*Embedding, error) {
				return provider.Embed(callCtx, text)
			})
		if err == nil && (embedding == nil || len(embedding.Vector) == 0) {
			err = &ProviderError{Provider: provider.Name(), Op: "embed", Err: &ValidationError{Reason: "empty vector"}}
		}
		if err == nil && expected > 0 && len(embedding.Vector) != expected {
			err = &ProviderError{Provider: provider.Name(), Op: "embed", Err: &ValidationError{
				Field:  "vector",
				Reason: fmt.Sprintf("dimension %d, expected %d", len(embedding.Vector), expected),
			}}
		}

		if err == nil {
			if i > 0 {
				logger.Info("embedding served by fallback provider",
					observability.String("provider", provider.Name()),
					observability.Int("attempt", i+1))
			}
			return &EmbeddingResult{
				Vector:        embedding.Vector,
				Model:         embedding.Model,
				Provider:      provider.Name(),
				TokenEstimate: tokenEstimate(text, embedding.Usage),
			}, nil
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("embedding aborted: %w", ctx.Err())
		}

		providerErr, ok := err.(*ProviderError)
		if !ok {
			providerErr = &ProviderError{Provider: provider.Name(), Op: "embed", Err: err}
		}
		chainErr.Attempts = append(chainErr.Attempts, providerErr)

		logger.Warn("embedding provider failed",
			observability.String("provider", provider.Name()),
			observability.Int("attempt", i+1),
			observability.Bool("timeout", providerErr.Timeout()),
			observability.Error(providerErr.Err))
	}

	return nil, chainErr
}

// GenerateBatch embeds texts chunk by chunk. Every input gets an item; a failed
// item or chunk never aborts the rest.
func (s *EmbeddingService) GenerateBatch(ctx context.Context, texts []string) ([]BatchEmbeddingItem, error) {
	results, err := workpool.Map(ctx, texts, workpool.Options{
		Workers:    s.config.ChunkSize,
		ChunkSize:  s.config.ChunkSize,
		ChunkPause: s.config.ChunkPause,
	}, func(ctx context.Context, _ int, text string) (*EmbeddingResult, error) {
		return s.GenerateEmbedding(ctx, text)
	})
	if err != nil {
		return nil, fmt.Errorf("embedding batch: %w", err)
	}

	items := make([]BatchEmbeddingItem, len(results))
	failed := 0
	for i, res := range results {
		items[i] = BatchEmbeddingItem{Index: res.Index, Result: res.Value, Err: res.Err}
		if res.Err != nil {
			failed++
		}
	}

	observability.FromContext(ctx).Info("embedding batch finished",
		observability.Int("total", len(texts)),
		observability.Int("failed", failed))

	return items, nil
}

// Dimension returns the primary provider's vector dimension. Every vector the
// service returns has this length; 0 means the model did not report one.
func (s *EmbeddingService) Dimension() int {
	return s.providers[0].Dimension()
}

// checkDimensions rejects chains that mix vector dimensions. Providers reporting
// 0 are not checked.
func checkDimensions(providers []EmbeddingProvider) error {
	primary := providers[0]
	for _, provider := range providers[1:] {
		dim := provider.Dimension()
		if dim > 0 && primary.Dimension() > 0 && dim != primary.Dimension() {
			return fmt.Errorf("%w: embedding provider %s has dimension %d, %s has %d",
				ErrConfiguration, provider.Name(), dim, primary.Name(), primary.Dimension())
		}
	}
	return nil
}

func tokenEstimate(text string, usage Usage) int {
	if usage.PromptTokens > 0 {
		return usage.PromptTokens
	}
	if usage.TotalTokens > 0 {
		return usage.TotalTokens
	}
	return (len(text) + charsPerToken - 1) / charsPerToken
}
