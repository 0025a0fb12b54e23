package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserTTL bounds how long a resolved user summary is served from Redis.
const UserTTL = 5 * time.Minute

// UserKey returns the cache key for a user id.
func UserKey(id string) string {
	return "user:" + id
}

// Cache is a JSON cache over a Redis client. A Cache with a nil client is a
// valid no-op cache.
type Cache struct {
	client *redis.Client
}

// New wraps client, which may be nil.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	s, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first and on a miss calls fetch, which must populate dest.
// fetch reports found=false for absent records; those are not cached.
// Redis failures degrade to calling fetch directly.
func (c *Cache) Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() (bool, error)) (bool, error) {
	if found, err := c.GetJSON(ctx, key, dest); err == nil && found {
		return true, nil
	}

	found, err := fetch()
	if err != nil || !found {
		return found, err
	}

	// Best effort.
	_ = c.SetJSON(ctx, key, dest, ttl)
	return true, nil
}
