// internal/common/cache/redis.go
package cache

import (
	"context"
	"fmt"
	"time"

	"assist-server/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisCache wraps the Redis client used for geocode result caching.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedis creates a new Redis-backed cache.
func NewRedis(cfg config.CacheConfig) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Address,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	return &RedisCache{
		Client: rdb,
		TTL:    time.Duration(cfg.TTL) * time.Second,
	}, nil
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// Get retrieves a value by key. A miss is (redis.Nil, "").
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

// Set stores a value under the cache TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) error {
	return c.Client.Set(ctx, key, value, c.TTL).Err()
}
