// Package openai provides the re-ranking completion provider backed by the official
// OpenAI SDK. It converts a free-form prompt into a JSON-mode chat completion and maps
// the response back to domain types.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/observability"
)

const systemPrompt = "You are an experienced technical recruiter. Answer with a single JSON object only."

// Provider implements domain.CompletionProvider for OpenAI.
type Provider struct {
	client      openai.Client
	name        string
	model       string
	temperature float64
	maxTokens   int
	supported   map[string]bool
}

// NewProvider creates a new OpenAI provider.
func NewProvider(config Config, opts ...option.RequestOption) (*Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", domain.ErrConfiguration)
	}

	if config.Model == "" {
		config.Model = openai.ChatModelGPT4oMini
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
	}

	if config.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		clientOpts = append(clientOpts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	if config.MaxRetries > 0 {
		clientOpts = append(clientOpts, option.WithMaxRetries(config.MaxRetries))
	}

	return &Provider{
		client:      openai.NewClient(append(clientOpts, opts...)...),
		name:        "openai",
		model:       config.Model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
		supported:   buildModelSet(SupportedModels()),
	}, nil
}

// Complete sends the prompt as a JSON-mode chat completion and returns the raw answer.
func (p *Provider) Complete(ctx context.Context, prompt string) (*domain.Completion, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.New("prompt cannot be empty")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API", observability.String("model", p.model))

	resp, err := p.client.Chat.Completions.New(ctx, p.toSDKParams(prompt))
	if err != nil {
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	logger.Debug("OpenAI API call succeeded",
		observability.Int("prompt_tokens", int(resp.Usage.PromptTokens)),
		observability.Int("completion_tokens", int(resp.Usage.CompletionTokens)),
	)

	return p.toDomainCompletion(resp)
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// Model returns the configured chat model.
func (p *Provider) Model() string {
	return p.model
}

// IsModelSupported checks if the provider knows the given model.
func (p *Provider) IsModelSupported(_ context.Context, model string) bool {
	return p.supported[model]
}

// toSDKParams converts the prompt to SDK ChatCompletionNewParams.
func (p *Provider) toSDKParams(prompt string) openai.ChatCompletionNewParams {
	//nolint:exhaustruct // OpenAI SDK struct has many optional fields
	params := openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	}

	if p.temperature > 0 {
		params.Temperature = openai.Float(p.temperature)
	}

	if p.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(p.maxTokens))
	}

	return params
}

// toDomainCompletion converts the SDK response to a domain completion.
func (p *Provider) toDomainCompletion(resp *openai.ChatCompletion) (*domain.Completion, error) {
	if len(resp.Choices) == 0 {
		return nil, errors.New("OpenAI returned no choices")
	}

	model := resp.Model
	if model == "" {
		model = p.model
	}

	return &domain.Completion{
		Text:     resp.Choices[0].Message.Content,
		Model:    model,
		Provider: p.name,
		Usage: domain.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}
