// Package compat embeds text through any OpenAI-compatible embeddings endpoint.
package compat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/davidbz/matchwise/internal/domain"
)

// Embedder implements domain.EmbeddingProvider on top of a langchaingo embedder.
type Embedder struct {
	embedder   embeddings.Embedder
	model      string
	dimensions int
}

// NewEmbedder creates a new OpenAI-compatible embedding provider.
func NewEmbedder(config Config) (*Embedder, error) {
	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, fmt.Errorf("%w: compat embedding base URL is required", domain.ErrConfiguration)
	}
	if config.Model == "" {
		return nil, fmt.Errorf("%w: compat embedding model is required", domain.ErrConfiguration)
	}
	if config.Dimensions <= 0 {
		return nil, fmt.Errorf("%w: compat embedding dimensions must be positive", domain.ErrConfiguration)
	}

	// Local servers usually ignore the token, but the client requires one.
	token := config.APIKey
	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(config.BaseURL),
		openai.WithToken(token),
		openai.WithEmbeddingModel(config.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create compat client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("create compat embedder: %w", err)
	}

	return &Embedder{
		embedder:   embedder,
		model:      config.Model,
		dimensions: config.Dimensions,
	}, nil
}

// Embed creates a vector embedding from text.
func (e *Embedder) Embed(ctx context.Context, text string) (*domain.Embedding, error) {
	if text == "" {
		return nil, errors.New("text cannot be empty")
	}

	values, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}
	if len(values) == 0 {
		return nil, errors.New("no embeddings returned")
	}

	vector := make([]float64, len(values))
	for i, v := range values {
		vector[i] = float64(v)
	}

	return &domain.Embedding{Vector: vector, Model: e.model}, nil
}

// Name returns the provider identifier.
func (e *Embedder) Name() string {
	return "compat"
}

// Dimension returns the configured vector dimension.
func (e *Embedder) Dimension() int {
	return e.dimensions
}
