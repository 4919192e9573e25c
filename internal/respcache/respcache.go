package respcache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/socialvibe/feedcore/internal/kv"
	"github.com/socialvibe/feedcore/internal/metrics"
	"github.com/socialvibe/feedcore/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// Cache is the short-TTL response cache in front of expensive read paths.
type Cache interface {
	// GetOrCompute returns the cached value for key if present and
	// unexpired, otherwise runs compute, stores its result with the given
	// TTL and returns it. Concurrent misses on the same key collapse into
	// a single compute call. A failing cache store degrades to direct
	// computation and is never surfaced to the caller.
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(ctx context.Context) ([]byte, error)) ([]byte, error)

	// Invalidate removes every cache entry whose key starts with prefix.
	Invalidate(ctx context.Context, prefix string) error
}

// Cacheable reports whether a request may touch the shared cache. Requests
// carrying a viewer identity are personalized and must never be served from
// or written to a cache keyed only by route. Fail closed: identified means
// uncacheable.
func Cacheable(viewerID string) bool {
	return viewerID == ""
}

type Impl struct {
	store     kv.Store
	logger    logger.Logger
	collector *metrics.Collector
	opTimeout time.Duration
	flight    singleflight.Group
}

var _ Cache = (*Impl)(nil)

func New(store kv.Store, log logger.Logger, collector *metrics.Collector, opTimeout time.Duration) *Impl {
	return &Impl{
		store:     store,
		logger:    log.WithComponent("ResponseCache"),
		collector: collector,
		opTimeout: opTimeout,
	}
}

const cacheNamespace = "cache/"

func (c *Impl) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	storeKey := cacheNamespace + key

	getCtx, cancel := context.WithTimeout(ctx, c.opTimeout)
	cached, err := c.store.Get(getCtx, storeKey)
	cancel()

	switch {
	case err == nil:
		c.collector.RecordCacheHit(keyPrefix(key))
		return cached, nil
	case errors.Is(err, kv.ErrNotFound):
		c.collector.RecordCacheMiss(keyPrefix(key))
	default:
		// Degrade to direct computation when the cache store is sick.
		c.logger.Warn("Cache read failed, computing directly", "key", key, "error", err)
	}

	// Collapse concurrent misses into one computation per key.
	value, err, _ := c.flight.Do(key, func() (interface{}, error) {
		result, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		setCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opTimeout)
		defer cancel()
		if err := c.store.Set(setCtx, storeKey, result, ttl); err != nil {
			c.logger.Warn("Cache write failed", "key", key, "error", err)
		}

		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}

func (c *Impl) Invalidate(ctx context.Context, prefix string) error {
	if err := c.store.DeletePrefix(ctx, cacheNamespace+prefix); err != nil {
		c.logger.Warn("Cache invalidation failed", "prefix", prefix, "error", err)
		return err
	}
	return nil
}

// keyPrefix extracts the route-level prefix of a cache key for metric labels,
// keeping label cardinality bounded.
func keyPrefix(key string) string {
	if i := strings.IndexByte(key, '/'); i > 0 {
		return key[:i]
	}
	return key
}
