package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/provider/gemini"
)

func TestNewProvider_MissingAPIKey(t *testing.T) {
	provider, err := gemini.NewProvider(context.Background(), gemini.Config{})

	require.ErrorIs(t, err, domain.ErrConfiguration)
	require.Nil(t, provider)
}

func TestNewProvider_DefaultModel(t *testing.T) {
	provider, err := gemini.NewProvider(context.Background(), gemini.Config{APIKey: "k"})

	require.NoError(t, err)
	require.Equal(t, "gemini", provider.Name())
	require.Equal(t, "gemini-2.0-flash", provider.Model())
}

func TestProvider_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.0-flash:generateContent"), r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Contains(t, body, "systemInstruction")
		generationConfig, ok := body["generationConfig"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "application/json", generationConfig["responseMimeType"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"aiScore\": 71,"}, {"text": "\"reasoning\": \"ok\"}"}]}}],
			"usageMetadata": {"promptTokenCount": 90, "candidatesTokenCount": 20, "totalTokenCount": 110},
			"modelVersion": "gemini-2.0-flash-001"
		}`))
	}))
	defer server.Close()

	provider, err := gemini.NewProvider(context.Background(), gemini.Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	completion, err := provider.Complete(context.Background(), "rate this candidate")
	require.NoError(t, err)
	require.Equal(t, "{\"aiScore\": 71,\n\"reasoning\": \"ok\"}", completion.Text)
	require.Equal(t, "gemini-2.0-flash-001", completion.Model)
	require.Equal(t, "gemini", completion.Provider)
	require.Equal(t, domain.Usage{PromptTokens: 90, CompletionTokens: 20, TotalTokens: 110}, completion.Usage)
}

func TestProvider_Complete_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	provider, err := gemini.NewProvider(context.Background(), gemini.Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = provider.Complete(context.Background(), "prompt")
	require.Error(t, err)
}

func TestRegisterPricing(t *testing.T) {
	ctx := context.Background()
	registry := domain.NewInMemoryPricingRegistry()

	require.NoError(t, gemini.RegisterPricing(ctx, registry))

	pricing, err := registry.GetPricing(ctx, "gemini-2.0-flash")
	require.NoError(t, err)
	require.InDelta(t, 0.0004, pricing.OutputCostPer1K, 1e-12)
}
