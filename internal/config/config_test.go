package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/matchwise/internal/config"
	"github.com/davidbz/matchwise/internal/domain"
)

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, 8080, cfg.Server.Port)
		require.Equal(t, 30, cfg.Server.ReadTimeout)
		require.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
		require.Equal(t, 60, cfg.OpenAI.Timeout)
		require.Equal(t, 3, cfg.OpenAI.MaxRetries)
		require.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
		require.Equal(t, "text-embedding-3-small", cfg.OpenAIEmbedding.Model)
		require.Empty(t, cfg.OpenAI.APIKey)

		require.Equal(t, []string{"openai"}, cfg.Matching.EmbeddingProviders)
		require.Equal(t, []string{"openai"}, cfg.Matching.CompletionProviders)
		require.Equal(t, 30*time.Second, cfg.Matching.ProviderTimeout)
		require.Equal(t, domain.DefaultMatchOptions(), cfg.Matching.MatchOptions())

		require.Equal(t, config.CacheBackendMemory, cfg.Cache.Backend)
		require.Equal(t, 24*time.Hour, cfg.Cache.TTL)
		require.Equal(t, 5*time.Minute, cfg.Cache.SweepInterval)
		require.Equal(t, "info", cfg.Log.Level)
		require.True(t, cfg.Metrics.Enabled)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		// Set environment variables using t.Setenv for automatic cleanup
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("OPENAI_API_KEY", "sk-test-key")
		t.Setenv("OPENAI_BASE_URL", "https://test.openai.com")
		t.Setenv("OPENAI_TIMEOUT", "120")
		t.Setenv("MATCH_COMPLETION_PROVIDERS", "gemini,openai")
		t.Setenv("MATCH_PROVIDER_TIMEOUT", "5s")
		t.Setenv("MATCH_AI_TOP_K", "7")
		t.Setenv("MATCH_SCORING_POLICIES", "entry_level_floor")
		t.Setenv("CACHE_BACKEND", "redis")
		t.Setenv("CACHE_TTL", "30m")
		t.Setenv("STORAGE_IN_MEMORY", "true")

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify loaded values
		require.Equal(t, 9000, cfg.Server.Port)
		require.Equal(t, "sk-test-key", cfg.OpenAI.APIKey)
		require.Equal(t, "sk-test-key", cfg.OpenAIEmbedding.APIKey)
		require.Equal(t, "https://test.openai.com", cfg.OpenAI.BaseURL)
		require.Equal(t, 120, cfg.OpenAI.Timeout)
		require.Equal(t, []string{"gemini", "openai"}, cfg.Matching.CompletionProviders)
		require.Equal(t, 5*time.Second, cfg.Matching.ProviderTimeout)
		require.Equal(t, 7, cfg.Matching.MatchOptions().AITopK)
		require.Equal(t, []string{"entry_level_floor"}, cfg.Matching.ScoringPolicies)
		require.Equal(t, config.CacheBackendRedis, cfg.Cache.Backend)
		require.Equal(t, 30*time.Minute, cfg.Cache.RedisConfig().TTL)
		require.True(t, cfg.Storage.InMemory)
	})
}

func TestParseDependenciesConfig(t *testing.T) {
	os.Clearenv()
	cfg := config.Load()

	deps := config.ParseDependenciesConfig(cfg)

	require.Same(t, &cfg.Server, deps.Server)
	require.Same(t, &cfg.Matching, deps.Matching)
	require.Same(t, &cfg.OpenAI, deps.OpenAI)
	require.Same(t, &cfg.OpenAIEmbedding, deps.OpenAIEmbedding)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name: "valid openai setup",
			env:  map[string]string{"OPENAI_API_KEY": "sk-test"},
		},
		{
			name:    "missing openai key",
			env:     map[string]string{},
			wantErr: "OPENAI_API_KEY is required",
		},
		{
			name: "gemini completions need gemini key",
			env: map[string]string{
				"OPENAI_API_KEY":             "sk-test",
				"MATCH_COMPLETION_PROVIDERS": "openai,gemini",
			},
			wantErr: "GEMINI_API_KEY is required for gemini completions",
		},
		{
			name: "unknown embedding provider",
			env: map[string]string{
				"OPENAI_API_KEY":            "sk-test",
				"MATCH_EMBEDDING_PROVIDERS": "cohere",
			},
			wantErr: `unknown embedding provider "cohere"`,
		},
		{
			name: "unknown scoring policy",
			env: map[string]string{
				"OPENAI_API_KEY":         "sk-test",
				"MATCH_SCORING_POLICIES": "vibes",
			},
			wantErr: "unknown scoring policy",
		},
		{
			name: "unknown cache backend",
			env: map[string]string{
				"OPENAI_API_KEY": "sk-test",
				"CACHE_BACKEND":  "memcached",
			},
			wantErr: "CACHE_BACKEND must be one of",
		},
		{
			name: "min ai score out of range",
			env: map[string]string{
				"OPENAI_API_KEY":     "sk-test",
				"MATCH_MIN_AI_SCORE": "120",
			},
			wantErr: "MATCH_MIN_AI_SCORE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			err := config.Load().Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrConfiguration)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
