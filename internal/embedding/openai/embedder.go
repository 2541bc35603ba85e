// Package openai embeds text with the OpenAI embeddings API.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/davidbz/matchwise/internal/domain"
)

const (
	// Embedding dimensions for different OpenAI models.
	embeddingDimensionStandard = 1536 // Ada v2 and Small v3
	embeddingDimensionLarge    = 3072 // Large v3
)

// Embedder implements domain.EmbeddingProvider with OpenAI.
type Embedder struct {
	client     openai.Client
	model      string
	dimensions int
}

// NewEmbedder creates a new OpenAI embedding provider.
func NewEmbedder(config Config, opts ...option.RequestOption) (*Embedder, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", domain.ErrConfiguration)
	}

	if config.Model == "" {
		config.Model = string(openai.EmbeddingModelTextEmbedding3Small)
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(config.BaseURL))
	}
	if config.MaxRetries > 0 {
		clientOpts = append(clientOpts, option.WithMaxRetries(config.MaxRetries))
	}

	return &Embedder{
		client:     openai.NewClient(append(clientOpts, opts...)...),
		model:      config.Model,
		dimensions: config.Dimensions,
	}, nil
}

// Embed creates a vector embedding from text.
func (e *Embedder) Embed(ctx context.Context, text string) (*domain.Embedding, error) {
	if text == "" {
		return nil, errors.New("text cannot be empty")
	}

	//nolint:exhaustruct // OpenAI SDK struct has many optional fields
	params := openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model:          openai.EmbeddingModel(e.model),
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	}
	if e.dimensions > 0 {
		params.Dimensions = openai.Int(int64(e.dimensions))
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("no embeddings returned")
	}

	model := resp.Model
	if model == "" {
		model = e.model
	}

	return &domain.Embedding{
		Vector: resp.Data[0].Embedding,
		Model:  model,
		Usage: domain.Usage{
			PromptTokens: int(resp.Usage.PromptTokens),
			TotalTokens:  int(resp.Usage.TotalTokens),
		},
	}, nil
}

// Name returns the provider identifier.
func (e *Embedder) Name() string {
	return "openai"
}

// Dimension returns the vector dimension.
func (e *Embedder) Dimension() int {
	if e.dimensions > 0 {
		return e.dimensions
	}

	switch e.model {
	case string(openai.EmbeddingModelTextEmbeddingAda002),
		string(openai.EmbeddingModelTextEmbedding3Small):
		return embeddingDimensionStandard
	case string(openai.EmbeddingModelTextEmbedding3Large):
		return embeddingDimensionLarge
	default:
		return embeddingDimensionStandard
	}
}
