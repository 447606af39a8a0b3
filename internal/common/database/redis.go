// internal/common/database/redis.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"project-analyzer/internal/common/config"

	"github.com/redis/go-redis/v9"
)

const descriptionKeyPrefix = "desc:"

// RedisClient wraps the Redis client
type RedisClient struct {
	Client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis client
func NewRedis(cfg config.CacheConfig) (*RedisClient, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 1,
	})

	return NewRedisFromClient(rdb, config.GetDuration(cfg.TTL)), nil
}

// NewRedisFromClient wraps an already configured client.
func NewRedisFromClient(rdb *redis.Client, ttl time.Duration) *RedisClient {
	return &RedisClient{Client: rdb, ttl: ttl}
}

// Ping tests the Redis connection
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// GetDescription returns a cached description for url. A miss is reported
// as ("", false, nil).
func (c *RedisClient) GetDescription(ctx context.Context, url string) (string, bool, error) {
	val, err := c.Client.Get(ctx, descriptionKeyPrefix+url).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// SetDescription stores a fetched description under url with the configured TTL.
func (c *RedisClient) SetDescription(ctx context.Context, url, description string) error {
	return c.Client.Set(ctx, descriptionKeyPrefix+url, description, c.ttl).Err()
}
