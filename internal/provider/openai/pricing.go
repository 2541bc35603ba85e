package openai

import (
	"context"
	"fmt"

	"github.com/davidbz/matchwise/internal/domain"
)

const (
	// GPT-4o mini pricing per 1K tokens
	gpt4oMiniInputCostPer1K  = 0.00015
	gpt4oMiniOutputCostPer1K = 0.0006

	// GPT-4o pricing per 1K tokens
	gpt4oInputCostPer1K  = 0.0025
	gpt4oOutputCostPer1K = 0.01

	// GPT-4.1 mini pricing per 1K tokens
	gpt41MiniInputCostPer1K  = 0.0004
	gpt41MiniOutputCostPer1K = 0.0016

	// GPT-4.1 pricing per 1K tokens
	gpt41InputCostPer1K  = 0.002
	gpt41OutputCostPer1K = 0.008

	// GPT-4 Turbo pricing per 1K tokens
	gpt4TurboInputCostPer1K  = 0.01
	gpt4TurboOutputCostPer1K = 0.03

	// GPT-3.5 Turbo pricing per 1K tokens
	gpt35TurboInputCostPer1K  = 0.0005
	gpt35TurboOutputCostPer1K = 0.0015

	// Embedding pricing per 1K tokens; embeddings have no output tokens.
	embedding3SmallCostPer1K = 0.00002
	embedding3LargeCostPer1K = 0.00013
)

// Pricing returns the OpenAI price table.
func Pricing() map[string]domain.PricingConfig {
	return map[string]domain.PricingConfig{
		"gpt-4o-mini":            {InputCostPer1K: gpt4oMiniInputCostPer1K, OutputCostPer1K: gpt4oMiniOutputCostPer1K},
		"gpt-4o":                 {InputCostPer1K: gpt4oInputCostPer1K, OutputCostPer1K: gpt4oOutputCostPer1K},
		"gpt-4.1-mini":           {InputCostPer1K: gpt41MiniInputCostPer1K, OutputCostPer1K: gpt41MiniOutputCostPer1K},
		"gpt-4.1":                {InputCostPer1K: gpt41InputCostPer1K, OutputCostPer1K: gpt41OutputCostPer1K},
		"gpt-4-turbo":            {InputCostPer1K: gpt4TurboInputCostPer1K, OutputCostPer1K: gpt4TurboOutputCostPer1K},
		"gpt-3.5-turbo":          {InputCostPer1K: gpt35TurboInputCostPer1K, OutputCostPer1K: gpt35TurboOutputCostPer1K},
		"text-embedding-3-small": {InputCostPer1K: embedding3SmallCostPer1K},
		"text-embedding-3-large": {InputCostPer1K: embedding3LargeCostPer1K},
	}
}

// RegisterPricing registers OpenAI model pricing with the registry.
func RegisterPricing(ctx context.Context, registry domain.PricingRegistry) error {
	for model, config := range Pricing() {
		if err := registry.RegisterPricing(ctx, model, config); err != nil {
			return fmt.Errorf("failed to register pricing for model %s: %w", model, err)
		}
	}

	return nil
}
