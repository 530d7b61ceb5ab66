package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/registro/client/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultCleanupInterval = 30 * time.Second

// FetchFunc loads the value for a cache key from the backend
type FetchFunc func(ctx context.Context) (any, error)

// QueryCache caches fetch results keyed by resource identity. Entries younger
// than the staleness window are served without a network call; concurrent
// fetches for one key collapse into a single in-flight request; entries
// unused for the retention window are evicted by a background janitor.
//
// The cache is the only shared mutable state in the module and is mutated
// exclusively here, in response to a completed fetch or an explicit
// invalidation issued after a successful mutation.
type QueryCache struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group

	staleAfter  time.Duration
	evictAfter  time.Duration
	readRetries int

	logger  *zap.Logger
	metrics *Metrics
	now     func() time.Time

	stopCh  chan struct{}
	stopped int32
}

// entry is one cached fetch result. gen guards against a superseded in-flight
// response overwriting the state installed by a newer request.
type entry struct {
	value      any
	has        bool
	stale      bool
	fetchedAt  time.Time
	lastAccess time.Time
	gen        uint64
}

// QueryCacheOption is a functional option for configuring the cache
type QueryCacheOption func(*QueryCache)

// WithWindows sets the staleness and retention windows
func WithWindows(staleAfter, evictAfter time.Duration) QueryCacheOption {
	return func(c *QueryCache) {
		c.staleAfter = staleAfter
		c.evictAfter = evictAfter
	}
}

// WithReadRetries sets the maximum fetch attempts for reads
func WithReadRetries(n int) QueryCacheOption {
	return func(c *QueryCache) { c.readRetries = n }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) QueryCacheOption {
	return func(c *QueryCache) { c.logger = logger }
}

// WithMetrics attaches cache metrics
func WithMetrics(m *Metrics) QueryCacheOption {
	return func(c *QueryCache) { c.metrics = m }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) QueryCacheOption {
	return func(c *QueryCache) { c.now = now }
}

// NewQueryCache creates a query cache and starts its eviction janitor
func NewQueryCache(opts ...QueryCacheOption) *QueryCache {
	c := &QueryCache{
		entries:     make(map[string]*entry),
		staleAfter:  5 * time.Minute,
		evictAfter:  10 * time.Minute,
		readRetries: 3,
		logger:      zap.NewNop(),
		now:         time.Now,
		stopCh:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.cleanupLoop()

	return c
}

// Fetch returns the cached value for key, or loads it with fn. A fresh cached
// value short-circuits without any network call. On a load failure the last
// cached value, if any, is returned alongside the error so callers can show
// stale data next to an error banner.
func (c *QueryCache) Fetch(ctx context.Context, key string, fn FetchFunc) (any, error) {
	c.mu.Lock()
	now := c.now()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	e.lastAccess = now
	if e.has && !e.stale && now.Sub(e.fetchedAt) < c.staleAfter {
		value := e.value
		c.mu.Unlock()
		c.observeHit(key)
		return value, nil
	}
	c.mu.Unlock()
	c.observeMiss(key)

	result, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.Lock()
		anchor, ok := c.entries[key]
		if !ok {
			anchor = &entry{lastAccess: c.now()}
			c.entries[key] = anchor
		}
		startGen := anchor.gen
		c.mu.Unlock()

		value, err := c.fetchWithRetry(ctx, fn)

		c.mu.Lock()
		defer c.mu.Unlock()
		cur, ok := c.entries[key]
		if !ok {
			// Evicted while in flight; hand the value to callers uncached.
			return value, err
		}
		if err != nil {
			return value, err
		}
		if cur.gen != startGen {
			c.logger.Debug("discarding superseded fetch result", zap.String("key", key))
			return value, nil
		}
		cur.value = value
		cur.has = true
		cur.stale = false
		cur.fetchedAt = c.now()
		return value, nil
	})

	if err != nil {
		// Surface any previously cached value alongside the error.
		c.mu.Lock()
		defer c.mu.Unlock()
		if cur, ok := c.entries[key]; ok && cur.has {
			return cur.value, err
		}
		return nil, err
	}
	return result, nil
}

// fetchWithRetry attempts the load up to the configured read-retry budget.
// An authorization failure is never retried: it needs re-authentication, not
// repetition. Context cancellation also stops the attempts.
func (c *QueryCache) fetchWithRetry(ctx context.Context, fn FetchFunc) (any, error) {
	var value any
	var err error
	for attempt := 1; attempt <= c.readRetries; attempt++ {
		value, err = fn(ctx)
		if err == nil {
			return value, nil
		}
		if shared.IsUnauthorized(err) || ctx.Err() != nil {
			return nil, err
		}
		c.logger.Debug("read attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return nil, err
}

// InvalidateKey marks the exact key stale; the next access refetches it.
// A response still in flight for the key will be discarded on arrival.
func (c *QueryCache) InvalidateKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		c.invalidateEntry(key, e)
	}
}

// InvalidateFamily marks every key with the given prefix stale
func (c *QueryCache) InvalidateFamily(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.invalidateEntry(key, e)
		}
	}
}

func (c *QueryCache) invalidateEntry(key string, e *entry) {
	e.stale = true
	e.gen++
	if c.metrics != nil {
		c.metrics.Invalidations.Inc()
	}
	c.logger.Debug("invalidated cache entry", zap.String("key", key))
}

// Len returns the number of entries currently held
func (c *QueryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close stops the eviction janitor. The cache remains usable; it simply
// stops evicting.
func (c *QueryCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

func (c *QueryCache) observeHit(key string) {
	if c.metrics != nil {
		c.metrics.Hits.Inc()
	}
	c.logger.Debug("cache hit", zap.String("key", key))
}

func (c *QueryCache) observeMiss(key string) {
	if c.metrics != nil {
		c.metrics.Misses.Inc()
	}
	c.logger.Debug("cache miss", zap.String("key", key))
}

func (c *QueryCache) cleanupLoop() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.evictUnused()
		}
	}
}

// evictUnused drops entries that have not been accessed within the retention
// window.
func (c *QueryCache) evictUnused() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var removed int
	for key, e := range c.entries {
		if now.Sub(e.lastAccess) > c.evictAfter {
			delete(c.entries, key)
			removed++
			if c.metrics != nil {
				c.metrics.Evictions.Inc()
			}
		}
	}
	if removed > 0 {
		c.logger.Debug("evicted unused cache entries", zap.Int("removed", removed))
	}
}
