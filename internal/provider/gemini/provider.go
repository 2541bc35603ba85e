// Package gemini provides a re-ranking completion provider backed by the Google GenAI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/observability"
)

const (
	defaultModel     = "gemini-2.0-flash"
	systemPrompt     = "You are an experienced technical recruiter. Answer with a single JSON object only."
	jsonResponseMIME = "application/json"
)

// Provider implements domain.CompletionProvider for Gemini.
type Provider struct {
	client      *genai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewProvider creates a new Gemini provider configured for the Gemini API backend.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
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

	return &Provider{
		client:      client,
		model:       model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
	}, nil
}

// Complete sends the prompt to Gemini in JSON mode and returns the joined text parts.
func (p *Provider) Complete(ctx context.Context, prompt string) (*domain.Completion, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("prompt must not be empty")
	}

	observability.FromContext(ctx).Debug("calling Gemini API", observability.String("model", p.model))

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), p.generateConfig())
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return nil, errors.New("gemini api returned empty response")
	}

	completion := &domain.Completion{
		Text:     output,
		Model:    p.model,
		Provider: p.Name(),
	}
	if resp.ModelVersion != "" {
		completion.Model = resp.ModelVersion
	}
	if usage := resp.UsageMetadata; usage != nil {
		completion.Usage = domain.Usage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}

	return completion, nil
}

func (p *Provider) generateConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		ResponseMIMEType:  jsonResponseMIME,
	}
	if p.temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(p.temperature))
	}
	if p.maxTokens > 0 {
		cfg.MaxOutputTokens = int32(p.maxTokens) //nolint:gosec // configured token limit is small
	}
	return cfg
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "gemini"
}

// Model returns the configured model.
func (p *Provider) Model() string {
	return p.model
}
