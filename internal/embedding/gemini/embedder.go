// Package gemini embeds text with the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/davidbz/matchwise/internal/domain"
)

const (
	defaultModel     = "text-embedding-004"
	defaultDimension = 768
	largeDimension   = 3072 // gemini-embedding-001
	taskType         = "SEMANTIC_SIMILARITY"
)

// Embedder implements domain.EmbeddingProvider with Gemini.
type Embedder struct {
	client     *genai.Client
	model      string
	dimensions int
}

// NewEmbedder creates a new Gemini embedding provider.
func NewEmbedder(ctx context.Context, config Config) (*Embedder, error) {
	apiKey := strings.TrimSpace(config.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: Gemini API key is required", domain.ErrConfiguration)
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(config.Model)
	if model == "" {
		model = defaultModel
	}

	return &Embedder{client: client, model: model, dimensions: config.Dimensions}, nil
}

// Embed creates a vector embedding from text.
func (e *Embedder) Embed(ctx context.Context, text string) (*domain.Embedding, error) {
	if text == "" {
		return nil, errors.New("text cannot be empty")
	}

	cfg := &genai.EmbedContentConfig{TaskType: taskType}
	if e.dimensions > 0 {
		dims := int32(e.dimensions) //nolint:gosec // configured dimension is small
		cfg.OutputDimensionality = &dims
	}

	resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), cfg)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("gemini api returned no embeddings")
	}

	values := resp.Embeddings[0].Values
	vector := make([]float64, len(values))
	for i, v := range values {
		vector[i] = float64(v)
	}

	return &domain.Embedding{Vector: vector, Model: e.model}, nil
}

// Name returns the provider identifier.
func (e *Embedder) Name() string {
	return "gemini"
}

// Dimension returns the vector dimension.
func (e *Embedder) Dimension() int {
	if e.dimensions > 0 {
		return e.dimensions
	}
	if e.model == "gemini-embedding-001" {
		return largeDimension
	}
	return defaultDimension
}
