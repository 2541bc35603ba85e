// Package memory is a process-local MatchCache with TTL expiry and a
// background sweeper.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/davidbz/matchwise/internal/cache"
	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/observability"
)

const (
	defaultTTL           = 24 * time.Hour
	defaultSweepInterval = 5 * time.Minute
)

// Config tunes the cache.
type Config struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// Option customizes a MatchCache.
type Option func(*MatchCache)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(c *MatchCache) {
		c.now = now
	}
}

type entry struct {
	results   []*domain.MatchResult
	refs      []string
	expiresAt time.Time
}

// MatchCache implements domain.MatchCache in memory.
type MatchCache struct {
	mu      sync.Mutex
	entries map[string]*entry
	// refs maps a job or candidate reference to the keys mentioning it.
	refs map[string]map[string]struct{}

	ttl           time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	hits      int64
	misses    int64
	evictions int64

	lifecycle sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates an empty cache. Call Start to run the sweeper.
func New(cfg Config, opts ...Option) *MatchCache {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	c := &MatchCache{
		entries:       make(map[string]*entry),
		refs:          make(map[string]map[string]struct{}),
		ttl:           cfg.TTL,
		sweepInterval: cfg.SweepInterval,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the lifetime of new entries.
func (c *MatchCache) TTL() time.Duration {
	return c.ttl
}

// GetPair returns a cached pair result or domain.ErrCacheMiss.
func (c *MatchCache) GetPair(_ context.Context, jobID, candidateID string) (*domain.MatchResult, error) {
	results, err := c.get(cache.PairKey(jobID, candidateID))
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// SetPair stores a pair result.
func (c *MatchCache) SetPair(_ context.Context, result *domain.MatchResult) error {
	if result == nil {
		return errors.New("result cannot be nil")
	}
	c.set(cache.PairKey(result.JobID, result.CandidateID), []*domain.MatchResult{result}, cache.PairRefs(result))
	return nil
}

// GetSet returns a cached result set or domain.ErrCacheMiss.
func (c *MatchCache) GetSet(_ context.Context, jobID, optionsHash string) ([]*domain.MatchResult, error) {
	return c.get(cache.SetKey(jobID, optionsHash))
}

// SetSet stores a job result set.
func (c *MatchCache) SetSet(_ context.Context, jobID, optionsHash string, results []*domain.MatchResult) error {
	c.set(cache.SetKey(jobID, optionsHash), results, cache.SetRefs(jobID, results))
	return nil
}

// InvalidateJob removes every entry referencing the job.
func (c *MatchCache) InvalidateJob(_ context.Context, jobID string) (int, error) {
	return c.invalidate(cache.JobRef(jobID)), nil
}

// InvalidateCandidate removes every entry referencing the candidate, including
// result sets that contain it.
func (c *MatchCache) InvalidateCandidate(_ context.Context, candidateID string) (int, error) {
	return c.invalidate(cache.CandidateRef(candidateID)), nil
}

// Stats returns live entry count and counters.
func (c *MatchCache) Stats(_ context.Context) (domain.CacheStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	live := 0
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			live++
		}
	}

	return domain.CacheStats{
		Entries:   live,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}, nil
}

func (c *MatchCache) get(key string) ([]*domain.MatchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, domain.ErrCacheMiss
	}

	if !c.now().Before(e.expiresAt) {
		c.removeLocked(key)
		c.evictions++
		c.misses++
		return nil, domain.ErrCacheMiss
	}

	c.hits++
	return cache.CloneResults(e.results), nil
}

func (c *MatchCache) set(key string, results []*domain.MatchResult, refs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(key)

	c.entries[key] = &entry{
		results:   cache.CloneResults(results),
		refs:      refs,
		expiresAt: c.now().Add(c.ttl),
	}
	for _, ref := range refs {
		keys, ok := c.refs[ref]
		if !ok {
			keys = make(map[string]struct{})
			c.refs[ref] = keys
		}
		keys[key] = struct{}{}
	}
}

func (c *MatchCache) invalidate(ref string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := c.refs[ref]
	removed := 0
	for key := range keys {
		if c.removeLocked(key) {
			removed++
		}
	}
	delete(c.refs, ref)
	return removed
}

// removeLocked deletes key and its reference index entries. c.mu must be held.
func (c *MatchCache) removeLocked(key string) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	delete(c.entries, key)
	for _, ref := range e.refs {
		keys := c.refs[ref]
		delete(keys, key)
		if len(keys) == 0 {
			delete(c.refs, ref)
		}
	}
	return true
}

// Sweep removes expired entries and returns how many were dropped.
func (c *MatchCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			c.removeLocked(key)
			removed++
		}
	}
	c.evictions += int64(removed)
	return removed
}

// Start runs the sweeper until ctx is done or Stop is called. Calling Start on a
// running cache is a no-op.
func (c *MatchCache) Start(ctx context.Context) {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	if c.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.sweepLoop(ctx, c.done)
}

// Stop halts the sweeper and waits for it to exit.
func (c *MatchCache) Stop() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.cancel = nil
	c.done = nil
}

func (c *MatchCache) sweepLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := c.Sweep(); removed > 0 {
				observability.FromContext(ctx).Debug("match cache swept",
					observability.Int("removed", removed))
			}
		}
	}
}
