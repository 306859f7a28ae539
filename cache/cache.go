// Package cache is a small response cache for the admin analytics surface.
// Aggregation always recomputes correctly from the payment processor, so a
// cache miss or failure only costs latency; entries are short-lived and
// results are unchanged.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type redisCache struct {
	client *redis.Client
}

func NewRedis(addr, password string) Cache {
	return &redisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (c *redisCache) Get(ctx context.Context, key string, value any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s from cache: %w", key, err)
	}

	if err = json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}

	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s for cache: %w", key, err)
	}

	if err = c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache %s: %w", key, err)
	}

	return nil
}

type noop struct{}

// NewNoop returns a cache that never hits, for deployments without Redis.
func NewNoop() Cache {
	return noop{}
}

func (noop) Get(context.Context, string, any) (bool, error) {
	return false, nil
}

func (noop) Set(context.Context, string, any, time.Duration) error {
	return nil
}
