package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ListCache caches the JSON payload of list reads per resource type. A cache
// failure is never allowed to fail the request it serves, so every method
// degrades to a miss and logs instead of returning an error.
type ListCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewListCache creates a new ListCache.
func NewListCache(redis *RedisClient, ttl time.Duration) *ListCache {
	return &ListCache{
		redis: redis,
		ttl:   ttl,
	}
}

// key returns the Redis key for a resource type's list payload.
func (c *ListCache) key(typeTag string) string {
	return "list:" + typeTag
}

// Get returns the cached list payload for typeTag, or ok=false on a miss.
func (c *ListCache) Get(ctx context.Context, typeTag string) ([]byte, bool) {
	val, err := c.redis.Get(ctx, c.key(typeTag))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("type", typeTag).Msg("List cache read failed")
		}
		return nil, false
	}
	return []byte(val), true
}

// Set stores the list payload for typeTag.
func (c *ListCache) Set(ctx context.Context, typeTag string, payload []byte) {
	if err := c.redis.Set(ctx, c.key(typeTag), string(payload), c.ttl); err != nil {
		log.Warn().Err(err).Str("type", typeTag).Msg("List cache write failed")
	}
}

// Invalidate drops the cached list for typeTag. Called after any write to
// the resource.
func (c *ListCache) Invalidate(ctx context.Context, typeTag string) {
	if err := c.redis.Delete(ctx, c.key(typeTag)); err != nil {
		log.Warn().Err(err).Str("type", typeTag).Msg("List cache invalidation failed")
	}
}
