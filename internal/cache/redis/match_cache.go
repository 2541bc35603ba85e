package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/matchwise/internal/cache"
	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/observability"
)

const (
	defaultKeyPrefix = "matchwise:"
	defaultTTL       = 24 * time.Hour
	scanBatchSize    = 500

	fieldData      = "data"
	fieldIndexedAt = "indexed_at"

	statsKey    = "stats"
	statsHits   = "hits"
	statsMisses = "misses"
)

// Config tunes the cache.
type Config struct {
	KeyPrefix string
	TTL       time.Duration
}

// MatchCache implements domain.MatchCache on Redis. Entries are hashes with a
// native TTL; every job and candidate has a set of the keys mentioning it.
type MatchCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewMatchCache creates a Redis match cache and verifies the connection.
func NewMatchCache(ctx context.Context, client *redis.Client, cfg Config) (*MatchCache, error) {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &MatchCache{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTL,
	}, nil
}

// TTL returns the lifetime of new entries.
func (c *MatchCache) TTL() time.Duration {
	return c.ttl
}

// GetPair returns a cached pair result or domain.ErrCacheMiss.
func (c *MatchCache) GetPair(ctx context.Context, jobID, candidateID string) (*domain.MatchResult, error) {
	results, err := c.get(ctx, cache.PairKey(jobID, candidateID))
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, domain.ErrCacheMiss
	}
	return results[0], nil
}

// SetPair stores a pair result.
func (c *MatchCache) SetPair(ctx context.Context, result *domain.MatchResult) error {
	if result == nil {
		return errors.New("result cannot be nil")
	}
	return c.set(ctx, cache.PairKey(result.JobID, result.CandidateID), []*domain.MatchResult{result}, cache.PairRefs(result))
}

// GetSet returns a cached result set or domain.ErrCacheMiss.
func (c *MatchCache) GetSet(ctx context.Context, jobID, optionsHash string) ([]*domain.MatchResult, error) {
	return c.get(ctx, cache.SetKey(jobID, optionsHash))
}

// SetSet stores a job result set.
func (c *MatchCache) SetSet(ctx context.Context, jobID, optionsHash string, results []*domain.MatchResult) error {
	return c.set(ctx, cache.SetKey(jobID, optionsHash), results, cache.SetRefs(jobID, results))
}

// InvalidateJob removes every entry referencing the job.
func (c *MatchCache) InvalidateJob(ctx context.Context, jobID string) (int, error) {
	return c.invalidate(ctx, cache.JobRef(jobID))
}

// InvalidateCandidate removes every entry referencing the candidate, including
// result sets that contain it.
func (c *MatchCache) InvalidateCandidate(ctx context.Context, candidateID string) (int, error) {
	return c.invalidate(ctx, cache.CandidateRef(candidateID))
}

// Stats counts live entries and reads hit and miss counters. Redis expires keys
// itself, so evictions are not tracked.
func (c *MatchCache) Stats(ctx context.Context) (domain.CacheStats, error) {
	counters, err := c.client.HGetAll(ctx, c.key(statsKey)).Result()
	if err != nil {
		return domain.CacheStats{}, fmt.Errorf("failed to read cache stats: %w", err)
	}

	stats := domain.CacheStats{
		Hits:   parseCounter(counters[statsHits]),
		Misses: parseCounter(counters[statsMisses]),
	}

	for _, pattern := range []string{"pair:*", "set:*"} {
		iter := c.client.Scan(ctx, 0, c.key(pattern), scanBatchSize).Iterator()
		for iter.Next(ctx) {
			stats.Entries++
		}
		if iterErr := iter.Err(); iterErr != nil {
			return domain.CacheStats{}, fmt.Errorf("failed to count cache entries: %w", iterErr)
		}
	}

	return stats, nil
}

func (c *MatchCache) key(suffix string) string {
	return c.prefix + suffix
}

func (c *MatchCache) get(ctx context.Context, key string) ([]*domain.MatchResult, error) {
	logger := observability.FromContext(ctx)

	data, err := c.client.HGet(ctx, c.key(key), fieldData).Result()
	if errors.Is(err, redis.Nil) {
		c.count(ctx, statsMisses)
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var results []*domain.MatchResult
	if unmarshalErr := json.Unmarshal([]byte(data), &results); unmarshalErr != nil {
		logger.Warn("dropping undecodable cache entry",
			observability.String("key", key),
			observability.Error(unmarshalErr))
		c.client.Del(ctx, c.key(key))
		c.count(ctx, statsMisses)
		return nil, domain.ErrCacheMiss
	}

	c.count(ctx, statsHits)
	return results, nil
}

func (c *MatchCache) set(ctx context.Context, key string, results []*domain.MatchResult, refs []string) error {
	logger := observability.FromContext(ctx)

	data, err := json.Marshal(cache.CloneResults(results))
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	fullKey := c.key(key)
	pipe := c.client.Pipeline()

	pipe.HSet(ctx, fullKey,
		fieldData, string(data),
		fieldIndexedAt, time.Now().Unix(),
	)
	pipe.Expire(ctx, fullKey, c.ttl)

	for _, ref := range refs {
		refKey := c.key(ref)
		pipe.SAdd(ctx, refKey, fullKey)
		// A ref set outlives its newest entry by one TTL at most.
		pipe.Expire(ctx, refKey, c.ttl)
	}

	if _, execErr := pipe.Exec(ctx); execErr != nil {
		logger.Error("cache store failed",
			observability.String("key", key),
			observability.Error(execErr))
		return fmt.Errorf("failed to store cache entry: %w", execErr)
	}

	logger.Debug("cache entry stored",
		observability.String("key", key),
		observability.Int("results", len(results)),
		observability.Int("refs", len(refs)))
	return nil
}

func (c *MatchCache) invalidate(ctx context.Context, ref string) (int, error) {
	refKey := c.key(ref)

	keys, err := c.client.SMembers(ctx, refKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read cache index: %w", err)
	}

	removed := int64(0)
	if len(keys) > 0 {
		removed, err = c.client.Del(ctx, keys...).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to delete cache entries: %w", err)
		}
	}

	if delErr := c.client.Del(ctx, refKey).Err(); delErr != nil {
		return int(removed), fmt.Errorf("failed to delete cache index: %w", delErr)
	}

	return int(removed), nil
}

func (c *MatchCache) count(ctx context.Context, field string) {
	if err := c.client.HIncrBy(ctx, c.key(statsKey), field, 1).Err(); err != nil {
		observability.FromContext(ctx).Debug("failed to update cache counter",
			observability.String("field", field),
			observability.Error(err))
	}
}

func parseCounter(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
