package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/matchwise/internal/cache/memory"
	"github.com/davidbz/matchwise/internal/cache/redis"
	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/embedding/compat"
	embeddinggemini "github.com/davidbz/matchwise/internal/embedding/gemini"
	embeddingopenai "github.com/davidbz/matchwise/internal/embedding/openai"
	"github.com/davidbz/matchwise/internal/metrics"
	"github.com/davidbz/matchwise/internal/observability"
	"github.com/davidbz/matchwise/internal/provider/gemini"
	"github.com/davidbz/matchwise/internal/provider/openai"
	"github.com/davidbz/matchwise/internal/storage/badger"
)

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// Config represents the matching engine configuration.
type Config struct {
	Server          ServerConfig
	CORS            CORSConfig
	Log             observability.LogConfig
	OpenAI          openai.Config
	OpenAIEmbedding embeddingopenai.Config
	Gemini          gemini.Config
	GeminiEmbedding embeddinggemini.Config
	Compat          compat.Config
	Matching        MatchingConfig
	Cache           CacheConfig
	Storage         badger.Config
	Metrics         metrics.Config
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"300"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// MatchingConfig contains pipeline defaults and provider ordering.
type MatchingConfig struct {
	EmbeddingProviders  []string      `env:"MATCH_EMBEDDING_PROVIDERS"  envSeparator:"," envDefault:"openai"`
	CompletionProviders []string      `env:"MATCH_COMPLETION_PROVIDERS" envSeparator:"," envDefault:"openai"`
	ProviderTimeout     time.Duration `env:"MATCH_PROVIDER_TIMEOUT"                      envDefault:"30s"`
	MaxFallbacks        int           `env:"MATCH_EMBEDDING_MAX_FALLBACKS"               envDefault:"1"`
	EmbeddingChunkSize  int           `env:"MATCH_EMBEDDING_CHUNK_SIZE"                  envDefault:"10"`
	EmbeddingChunkPause time.Duration `env:"MATCH_EMBEDDING_CHUNK_PAUSE"                 envDefault:"100ms"`

	RerankWorkers      int           `env:"MATCH_RERANK_WORKERS"        envDefault:"5"`
	RerankBatchPause   time.Duration `env:"MATCH_RERANK_BATCH_PAUSE"    envDefault:"200ms"`
	FallbackFloor      float64       `env:"MATCH_FALLBACK_FLOOR"        envDefault:"30"`
	FallbackConfidence float64       `env:"MATCH_FALLBACK_CONFIDENCE"   envDefault:"0.5"`
	MaxSummaryChars    int           `env:"MATCH_MAX_SUMMARY_CHARS"     envDefault:"2000"`
	ScoringPolicies    []string      `env:"MATCH_SCORING_POLICIES"      envSeparator:","`

	VectorTopK          int     `env:"MATCH_VECTOR_TOP_K"            envDefault:"50"`
	AITopK              int     `env:"MATCH_AI_TOP_K"                envDefault:"20"`
	MinVectorSimilarity float64 `env:"MATCH_MIN_VECTOR_SIMILARITY"   envDefault:"0.1"`
	MinAIScore          float64 `env:"MATCH_MIN_AI_SCORE"            envDefault:"50"`
	Language            string  `env:"MATCH_LANGUAGE"                envDefault:"en"`
	MaxConcurrent       int     `env:"MATCH_MAX_CONCURRENT"          envDefault:"3"`
	DegradedSearch      bool    `env:"MATCH_DEGRADED_SEARCH"         envDefault:"false"`
	ScanLimit           int     `env:"MATCH_SCAN_LIMIT"              envDefault:"0"`

	InputTokensPerRequest  int `env:"MATCH_INPUT_TOKENS_PER_REQUEST"  envDefault:"800"`
	OutputTokensPerRequest int `env:"MATCH_OUTPUT_TOKENS_PER_REQUEST" envDefault:"150"`
}

// CacheConfig selects and tunes the match cache.
type CacheConfig struct {
	Backend       string        `env:"CACHE_BACKEND"        envDefault:"memory"`
	TTL           time.Duration `env:"CACHE_TTL"            envDefault:"24h"`
	SweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL" envDefault:"5m"`
	RedisAddr     string        `env:"REDIS_ADDR"           envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB"             envDefault:"0"`
	KeyPrefix     string        `env:"CACHE_KEY_PREFIX"     envDefault:"matchwise:"`
}

// DepConfig is used for dependency injection with dig. Fields are named because
// several provider packages export a type called Config.
type DepConfig struct {
	dig.Out

	Server          *ServerConfig
	CORS            *CORSConfig
	Log             *observability.LogConfig
	OpenAI          *openai.Config
	OpenAIEmbedding *embeddingopenai.Config
	Gemini          *gemini.Config
	GeminiEmbedding *embeddinggemini.Config
	Compat          *compat.Config
	Matching        *MatchingConfig
	Cache           *CacheConfig
	Storage         *badger.Config
	Metrics         *metrics.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Server:          &cfg.Server,
		CORS:            &cfg.CORS,
		Log:             &cfg.Log,
		OpenAI:          &cfg.OpenAI,
		OpenAIEmbedding: &cfg.OpenAIEmbedding,
		Gemini:          &cfg.Gemini,
		GeminiEmbedding: &cfg.GeminiEmbedding,
		Compat:          &cfg.Compat,
		Matching:        &cfg.Matching,
		Cache:           &cfg.Cache,
		Storage:         &cfg.Storage,
		Metrics:         &cfg.Metrics,
	}
}

// Validate reports settings the process cannot start with. Every error wraps
// domain.ErrConfiguration.
func (c *Config) Validate() error {
	var errs []error

	for _, name := range c.Matching.EmbeddingProviders {
		switch strings.TrimSpace(name) {
		case "openai":
			errs = appendIf(errs, c.OpenAIEmbedding.APIKey == "", "OPENAI_API_KEY is required for openai embeddings")
		case "gemini":
			errs = appendIf(errs, c.GeminiEmbedding.APIKey == "", "GEMINI_API_KEY is required for gemini embeddings")
		case "compat":
			errs = appendIf(errs, c.Compat.BaseURL == "", "COMPAT_EMBEDDING_BASE_URL is required for compat embeddings")
		default:
			errs = append(errs, fmt.Errorf("unknown embedding provider %q", name))
		}
	}
	errs = appendIf(errs, len(c.Matching.EmbeddingProviders) == 0, "at least one embedding provider is required")

	for _, name := range c.Matching.CompletionProviders {
		switch strings.TrimSpace(name) {
		case "openai":
			errs = appendIf(errs, c.OpenAI.APIKey == "", "OPENAI_API_KEY is required for openai completions")
		case "gemini":
			errs = appendIf(errs, c.Gemini.APIKey == "", "GEMINI_API_KEY is required for gemini completions")
		default:
			errs = append(errs, fmt.Errorf("unknown completion provider %q", name))
		}
	}
	errs = appendIf(errs, len(c.Matching.CompletionProviders) == 0, "at least one completion provider is required")

	if _, err := domain.PoliciesByName(c.Matching.ScoringPolicies); err != nil {
		errs = append(errs, err)
	}

	m := c.Matching
	errs = appendIf(errs, m.ProviderTimeout <= 0, "MATCH_PROVIDER_TIMEOUT must be positive")
	errs = appendIf(errs, m.VectorTopK <= 0 || m.AITopK <= 0, "top-k values must be positive")
	errs = appendIf(errs, m.MinVectorSimilarity < -1 || m.MinVectorSimilarity > 1, "MATCH_MIN_VECTOR_SIMILARITY must be within [-1, 1]")
	errs = appendIf(errs, m.MinAIScore < 0 || m.MinAIScore > 100, "MATCH_MIN_AI_SCORE must be within [0, 100]")
	errs = appendIf(errs, m.MaxConcurrent <= 0, "MATCH_MAX_CONCURRENT must be positive")
	errs = appendIf(errs, m.FallbackConfidence < 0 || m.FallbackConfidence > 1, "MATCH_FALLBACK_CONFIDENCE must be within [0, 1]")

	validBackends := []string{CacheBackendMemory, CacheBackendRedis, CacheBackendNone}
	errs = appendIf(errs, !slices.Contains(validBackends, c.Cache.Backend),
		fmt.Sprintf("CACHE_BACKEND must be one of %s", strings.Join(validBackends, ", ")))
	errs = appendIf(errs, c.Cache.TTL <= 0, "CACHE_TTL must be positive")

	errs = appendIf(errs, !c.Storage.InMemory && c.Storage.Path == "", "STORAGE_PATH is required unless STORAGE_IN_MEMORY is set")

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrConfiguration, errors.Join(errs...))
}

func appendIf(errs []error, failed bool, msg string) []error {
	if failed {
		return append(errs, errors.New(msg))
	}
	return errs
}

// MatchOptions returns the configured default match options.
func (m MatchingConfig) MatchOptions() domain.MatchOptions {
	return domain.MatchOptions{
		VectorTopK:          m.VectorTopK,
		AITopK:              m.AITopK,
		MinVectorSimilarity: domain.Float64(m.MinVectorSimilarity),
		MinAIScore:          domain.Float64(m.MinAIScore),
		Language:            m.Language,
		MaxConcurrent:       m.MaxConcurrent,
		DegradedSearch:      m.DegradedSearch,
	}
}

// EmbeddingConfig returns the embedding adapter settings.
func (m MatchingConfig) EmbeddingConfig() domain.EmbeddingConfig {
	return domain.EmbeddingConfig{
		Timeout:      m.ProviderTimeout,
		MaxFallbacks: m.MaxFallbacks,
		ChunkSize:    m.EmbeddingChunkSize,
		ChunkPause:   m.EmbeddingChunkPause,
	}
}

// RerankConfig returns the re-ranking engine settings.
func (m MatchingConfig) RerankConfig() domain.RerankConfig {
	return domain.RerankConfig{
		Timeout:            m.ProviderTimeout,
		Workers:            m.RerankWorkers,
		BatchPause:         m.RerankBatchPause,
		FallbackFloor:      m.FallbackFloor,
		FallbackConfidence: m.FallbackConfidence,
		MaxSummaryChars:    m.MaxSummaryChars,
	}
}

// ServiceConfig returns the matching service settings.
func (m MatchingConfig) ServiceConfig() domain.MatchingConfig {
	return domain.MatchingConfig{Defaults: m.MatchOptions(), ScanLimit: m.ScanLimit}
}

// BatchConfig returns the batch orchestrator settings priced against model.
func (m MatchingConfig) BatchConfig(model string) domain.BatchConfig {
	return domain.BatchConfig{
		CompletionModel: model,
		Tokens: domain.TokenEstimate{
			InputTokensPerRequest:  m.InputTokensPerRequest,
			OutputTokensPerRequest: m.OutputTokensPerRequest,
		},
		Defaults: m.MatchOptions(),
	}
}

// MemoryConfig returns the in-process cache settings.
func (c CacheConfig) MemoryConfig() memory.Config {
	return memory.Config{TTL: c.TTL, SweepInterval: c.SweepInterval}
}

// RedisConfig returns the Redis cache settings.
func (c CacheConfig) RedisConfig() redis.Config {
	return redis.Config{KeyPrefix: c.KeyPrefix, TTL: c.TTL}
}
