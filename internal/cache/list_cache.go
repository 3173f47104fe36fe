package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/portfolio/pkg/logger"
)

// Keys for the two cached list reads.
const (
	KeyPosts = "routine:posts"
	KeyBlogs = "blogs:list"
)

// ListCache is a cache-aside wrapper for whole-list reads. A nil *ListCache is
// valid and always loads from the store.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewListCache builds a cache over the given client. ttl bounds staleness if
// an invalidation is ever lost.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ListCache{client: client, ttl: ttl}
}

// Fetch returns the cached value for key, or calls load and stores its result.
// Redis errors never fail the read; they only fall through to load.
//
// Values live under key:<generation>. The generation is read before load, so
// a result loaded across a concurrent Invalidate lands under a retired
// generation and is never served.
func Fetch[T any](ctx context.Context, c *ListCache, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}

	gen, err := c.generation(ctx, key)
	if err != nil {
		logger.Warn("list cache generation failed", zap.String("key", key), zap.Error(err))
		c.misses.Add(1)
		return load(ctx)
	}
	slot := dataKey(key, gen)

	if data, err := c.client.Get(ctx, slot).Bytes(); err == nil {
		var out T
		if uErr := json.Unmarshal(data, &out); uErr == nil {
			c.hits.Add(1)
			return out, nil
		}
	} else if err != redis.Nil {
		logger.Warn("list cache get failed", zap.String("key", slot), zap.Error(err))
	}

	c.misses.Add(1)
	out, err := load(ctx)
	if err != nil {
		return out, err
	}
	if payload, err := json.Marshal(out); err == nil {
		if err := c.client.Set(ctx, slot, payload, c.ttl).Err(); err != nil {
			logger.Warn("list cache set failed", zap.String("key", slot), zap.Error(err))
		}
	}
	return out, nil
}

// Invalidate retires the current generation of each key after a write.
// Must be called after the write has committed.
func (c *ListCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	_, err := c.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range keys {
			p.Incr(ctx, GenKey(k))
		}
		return nil
	})
	if err != nil {
		logger.Warn("list cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// generation 当前代号，key 不存在视为 0
func (c *ListCache) generation(ctx context.Context, key string) (int64, error) {
	gen, err := c.client.Get(ctx, GenKey(key)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

// GenKey is the redis key holding the generation counter for key.
func GenKey(key string) string { return key + ":gen" }

func dataKey(key string, gen int64) string { return key + ":" + strconv.FormatInt(gen, 10) }

// Counters reports hit/miss totals since start or the last reset.
func (c *ListCache) Counters() Counters {
	if c == nil {
		return Counters{}
	}
	return Counters{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// ResetCounters clears recorded hit/miss counters.
func (c *ListCache) ResetCounters() {
	if c == nil {
		return
	}
	c.hits.Store(0)
	c.misses.Store(0)
}

// Counters summarises cache effectiveness.
type Counters struct {
	Hits   int64
	Misses int64
}
