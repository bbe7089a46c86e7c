package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin JSON read-through layer over redis. A nil *Cache (or a
// Cache built over a nil client) is valid and behaves as a permanent
// miss, so callers never have to guard on cache availability.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

// Get unmarshals the cached value into dest and reports whether the key
// was present.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(data), dest)
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Delete removes individual entries, used to purge detail keys outright.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Invalidate bumps a namespace version counter, orphaning every key
// built under the previous version. Orphans expire with their TTL.
func (c *Cache) Invalidate(ctx context.Context, namespaces ...string) error {
	if c == nil {
		return nil
	}
	for _, ns := range namespaces {
		if err := c.client.Incr(ctx, ns+":ver").Err(); err != nil {
			return err
		}
	}
	return nil
}

// version resolves the current namespace version; a missing counter
// means version zero.
func (c *Cache) version(ctx context.Context, namespace string) int64 {
	if c == nil {
		return 0
	}
	ver, err := c.client.Get(ctx, namespace+":ver").Int64()
	if err != nil {
		return 0
	}
	return ver
}
