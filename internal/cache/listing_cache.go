package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dykeinvestments/estate-backend/internal/models"
)

// listingKey is the cache key for the approved-listing snapshot
const listingKey = "listings:approved"

// ListingCache holds a short-lived snapshot of the approved inventory,
// images included, ordered newest-first. Filters are applied in-process
// over the snapshot, so a cache hit serves a listing query without any
// database round-trip.
type ListingCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewListingCache creates a new listing cache.
func NewListingCache(redis *RedisClient, ttl time.Duration) *ListingCache {
	return &ListingCache{
		redis: redis,
		ttl:   ttl,
	}
}

// Get retrieves the cached snapshot. The second return value is false on a
// miss or on any decode problem; a stale or damaged entry is never served.
func (c *ListingCache) Get(ctx context.Context) ([]*models.Property, bool) {
	raw, err := c.redis.Get(ctx, listingKey)
	if err != nil {
		return nil, false
	}

	var properties []*models.Property
	if err := json.Unmarshal([]byte(raw), &properties); err != nil {
		_ = c.redis.Delete(ctx, listingKey)
		return nil, false
	}

	return properties, true
}

// Set stores a fresh snapshot with the configured TTL.
func (c *ListingCache) Set(ctx context.Context, properties []*models.Property) error {
	raw, err := json.Marshal(properties)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, listingKey, string(raw), c.ttl)
}

// Invalidate drops the snapshot. Called after any property write that can
// change the approved inventory.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	err := c.redis.Delete(ctx, listingKey)
	if err == redis.Nil {
		return nil
	}
	return err
}
