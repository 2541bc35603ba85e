// Package app wires the matching engine into a dig container shared by the
// daemon and the operator CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/davidbz/matchwise/internal/cache/memory"
	"github.com/davidbz/matchwise/internal/cache/redis"
	"github.com/davidbz/matchwise/internal/config"
	"github.com/davidbz/matchwise/internal/domain"
	matchhttp "github.com/davidbz/matchwise/internal/http"
	"github.com/davidbz/matchwise/internal/http/middleware"
	"github.com/davidbz/matchwise/internal/metrics"
	"github.com/davidbz/matchwise/internal/observability"
	"github.com/davidbz/matchwise/internal/provider/registry"
	"github.com/davidbz/matchwise/internal/storage/badger"
)

// ErrProviderNotConfigured indicates that a provider is not configured and should be skipped.
var ErrProviderNotConfigured = errors.New("provider not configured")

// EmbeddingRegistry holds every configured embedding provider.
type EmbeddingRegistry = registry.Registry[domain.EmbeddingProvider]

// CompletionRegistry holds every configured completion provider.
type CompletionRegistry = registry.Registry[domain.CompletionProvider]

// Repositories exports the badger store under each domain interface it implements.
type Repositories struct {
	dig.Out

	Jobs       domain.JobRepository
	Candidates domain.CandidateRepository
	Embeddings domain.EmbeddingStore
}

// Telemetry exports the metrics registry and the recorder backed by it.
type Telemetry struct {
	dig.Out

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Recorder   domain.Recorder
}

// BuildContainer registers every constructor. Nothing is built until Invoke.
func BuildContainer(ctx context.Context) *dig.Container {
	container := dig.New()

	provide := func(constructor any, what string) {
		if err := container.Provide(constructor); err != nil {
			log.Fatalf("Failed to provide %s: %v", what, err)
		}
	}

	// Configuration
	provide(config.Load, "config")
	provide(config.ParseDependenciesConfig, "config dependencies")

	// Observability
	provide(observability.InitLogger, "logger")
	provide(newTelemetry, "metrics")

	// Lifecycle
	provide(NewLifecycle, "lifecycle")

	// Providers
	provide(func(cfg *config.Config) (*EmbeddingRegistry, error) {
		return newEmbeddingRegistry(ctx, cfg)
	}, "embedding registry")
	provide(func(cfg *config.Config) (*CompletionRegistry, error) {
		return newCompletionRegistry(ctx, cfg)
	}, "completion registry")

	// Pricing
	provide(func() (domain.PricingRegistry, error) {
		return newPricingRegistry(ctx)
	}, "pricing registry")
	provide(func(pricing domain.PricingRegistry) domain.CostCalculator {
		return domain.NewStandardCostCalculator(pricing)
	}, "cost calculator")

	// Storage
	provide(newStore, "storage")
	provide(func(store *badger.Store) Repositories {
		return Repositories{Jobs: store, Candidates: store, Embeddings: store}
	}, "repositories")

	// Cache
	provide(func(cfg *config.CacheConfig, lifecycle *Lifecycle) (domain.MatchCache, error) {
		return newMatchCache(ctx, cfg, lifecycle)
	}, "match cache")

	// Domain Services
	provide(func(cfg *config.MatchingConfig) (domain.ScoringPolicies, error) {
		return domain.PoliciesByName(cfg.ScoringPolicies)
	}, "scoring policies")
	provide(newEmbeddingService(ctx), "embedding service")
	provide(newRerankEngine(ctx), "rerank engine")
	provide(newMatchingService, "matching service")
	provide(newBatchOrchestrator(ctx), "batch orchestrator")
	provide(domain.NewEmbeddingBackfill, "embedding backfill")

	// HTTP Layer
	provide(matchhttp.NewHandler, "HTTP handler")
	provide(middleware.BuildMiddlewareChain, "middleware chain")
	provide(matchhttp.NewServer, "HTTP server")

	return container
}

func newTelemetry(cfg *metrics.Config) Telemetry {
	if !cfg.Enabled {
		return Telemetry{
			Registerer: prometheus.NewRegistry(),
			Gatherer:   nil,
			Recorder:   domain.NopRecorder{},
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return Telemetry{
		Registerer: reg,
		Gatherer:   reg,
		Recorder:   metrics.NewRecorder(reg),
	}
}

func newStore(cfg *badger.Config, lifecycle *Lifecycle) (*badger.Store, error) {
	backend, err := badger.OpenBackend(*cfg)
	if err != nil {
		return nil, err
	}
	lifecycle.OnStop("storage", func(context.Context) error {
		return backend.Close()
	})
	return badger.NewStore(backend), nil
}

func newMatchCache(ctx context.Context, cfg *config.CacheConfig, lifecycle *Lifecycle) (domain.MatchCache, error) {
	logger := observability.FromContext(ctx)

	switch cfg.Backend {
	case config.CacheBackendMemory:
		cache := memory.New(cfg.MemoryConfig())
		cache.Start(ctx)
		lifecycle.OnStop("memory cache", func(context.Context) error {
			cache.Stop()
			return nil
		})
		logger.Info("match cache enabled", observability.String("backend", cfg.Backend))
		return cache, nil

	case config.CacheBackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		cache, err := redis.NewMatchCache(ctx, client, cfg.RedisConfig())
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to create redis cache: %w", err)
		}
		lifecycle.OnStop("redis cache", func(context.Context) error {
			return client.Close()
		})
		logger.Info("match cache enabled",
			observability.String("backend", cfg.Backend),
			observability.String("addr", cfg.RedisAddr))
		return cache, nil

	default:
		logger.Info("match cache disabled")
		return nil, nil //nolint:nilnil // a nil cache disables caching
	}
}

func newEmbeddingService(ctx context.Context) func(
	*EmbeddingRegistry, *config.MatchingConfig, domain.Recorder,
) (*domain.EmbeddingService, error) {
	return func(reg *EmbeddingRegistry, cfg *config.MatchingConfig, recorder domain.Recorder) (*domain.EmbeddingService, error) {
		providers, err := reg.Ordered(ctx, cfg.EmbeddingProviders)
		if err != nil {
			return nil, fmt.Errorf("%w: embedding providers: %w", domain.ErrConfiguration, err)
		}
		return domain.NewEmbeddingService(providers, cfg.EmbeddingConfig(), recorder)
	}
}

func newRerankEngine(ctx context.Context) func(
	*CompletionRegistry, domain.ScoringPolicies, *config.MatchingConfig, domain.Recorder,
) (*domain.RerankEngine, error) {
	return func(
		reg *CompletionRegistry,
		policies domain.ScoringPolicies,
		cfg *config.MatchingConfig,
		recorder domain.Recorder,
	) (*domain.RerankEngine, error) {
		providers, err := reg.Ordered(ctx, cfg.CompletionProviders)
		if err != nil {
			return nil, fmt.Errorf("%w: completion providers: %w", domain.ErrConfiguration, err)
		}
		return domain.NewRerankEngine(providers, policies, cfg.RerankConfig(), recorder)
	}
}

func newMatchingService(
	jobs domain.JobRepository,
	candidates domain.CandidateRepository,
	engine *domain.RerankEngine,
	cache domain.MatchCache,
	cfg *config.MatchingConfig,
	recorder domain.Recorder,
) *domain.MatchingService {
	return domain.NewMatchingService(jobs, candidates, engine, cache, cfg.ServiceConfig(), recorder)
}

type modeled interface {
	Model() string
}

// newBatchOrchestrator prices batch estimates against the primary completion model.
func newBatchOrchestrator(ctx context.Context) func(
	*domain.MatchingService, domain.CostCalculator, *CompletionRegistry, *config.MatchingConfig, domain.Recorder,
) *domain.BatchOrchestrator {
	return func(
		matching *domain.MatchingService,
		calculator domain.CostCalculator,
		reg *CompletionRegistry,
		cfg *config.MatchingConfig,
		recorder domain.Recorder,
	) *domain.BatchOrchestrator {
		model := ""
		if providers, err := reg.Ordered(ctx, cfg.CompletionProviders); err == nil {
			if primary, ok := providers[0].(modeled); ok {
				model = primary.Model()
			}
		}
		return domain.NewBatchOrchestrator(matching, calculator, cfg.BatchConfig(model), recorder)
	}
}
