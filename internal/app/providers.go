package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/davidbz/matchwise/internal/config"
	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/embedding/compat"
	embeddinggemini "github.com/davidbz/matchwise/internal/embedding/gemini"
	embeddingopenai "github.com/davidbz/matchwise/internal/embedding/openai"
	"github.com/davidbz/matchwise/internal/observability"
	"github.com/davidbz/matchwise/internal/provider/gemini"
	"github.com/davidbz/matchwise/internal/provider/openai"
	"github.com/davidbz/matchwise/internal/provider/registry"
)

func newEmbeddingRegistry(ctx context.Context, cfg *config.Config) (*EmbeddingRegistry, error) {
	reg := registry.NewRegistry[domain.EmbeddingProvider]()

	builders := []struct {
		name  string
		build func() (domain.EmbeddingProvider, error)
	}{
		{"openai", func() (domain.EmbeddingProvider, error) {
			if cfg.OpenAIEmbedding.APIKey == "" {
				return nil, ErrProviderNotConfigured
			}
			return embeddingopenai.NewEmbedder(cfg.OpenAIEmbedding)
		}},
		{"gemini", func() (domain.EmbeddingProvider, error) {
			if cfg.GeminiEmbedding.APIKey == "" {
				return nil, ErrProviderNotConfigured
			}
			return embeddinggemini.NewEmbedder(ctx, cfg.GeminiEmbedding)
		}},
		{"compat", func() (domain.EmbeddingProvider, error) {
			if strings.TrimSpace(cfg.Compat.BaseURL) == "" {
				return nil, ErrProviderNotConfigured
			}
			return compat.NewEmbedder(cfg.Compat)
		}},
	}

	for _, b := range builders {
		if err := registerOptional(ctx, reg, "embedding", b.name, b.build); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func newCompletionRegistry(ctx context.Context, cfg *config.Config) (*CompletionRegistry, error) {
	reg := registry.NewRegistry[domain.CompletionProvider]()

	builders := []struct {
		name  string
		build func() (domain.CompletionProvider, error)
	}{
		{"openai", func() (domain.CompletionProvider, error) {
			if cfg.OpenAI.APIKey == "" {
				return nil, ErrProviderNotConfigured
			}
			return openai.NewProvider(cfg.OpenAI)
		}},
		{"gemini", func() (domain.CompletionProvider, error) {
			if cfg.Gemini.APIKey == "" {
				return nil, ErrProviderNotConfigured
			}
			return gemini.NewProvider(ctx, cfg.Gemini)
		}},
	}

	for _, b := range builders {
		if err := registerOptional(ctx, reg, "completion", b.name, b.build); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// registerOptional builds and registers one provider. Unconfigured providers are skipped.
func registerOptional[P registry.Named](
	ctx context.Context,
	reg *registry.Registry[P],
	kind, name string,
	build func() (P, error),
) error {
	logger := observability.FromContext(ctx)

	provider, err := build()
	if errors.Is(err, ErrProviderNotConfigured) {
		logger.Debug("provider not configured, skipping",
			observability.String("kind", kind),
			observability.String("provider", name))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create %s %s provider: %w", name, kind, err)
	}

	if err := reg.Register(ctx, provider); err != nil {
		return fmt.Errorf("failed to register %s %s provider: %w", name, kind, err)
	}

	logger.Info("provider registered",
		observability.String("kind", kind),
		observability.String("provider", name))
	return nil
}

func newPricingRegistry(ctx context.Context) (domain.PricingRegistry, error) {
	pricing := domain.NewInMemoryPricingRegistry()
	if err := openai.RegisterPricing(ctx, pricing); err != nil {
		return nil, fmt.Errorf("failed to register OpenAI pricing: %w", err)
	}
	if err := gemini.RegisterPricing(ctx, pricing); err != nil {
		return nil, fmt.Errorf("failed to register Gemini pricing: %w", err)
	}
	return pricing, nil
}
