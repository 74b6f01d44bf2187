package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meeting-scheduler/core/config"
	"meeting-scheduler/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is the key/value store used for short-lived state such as
// scheduling run status.
type Cache interface {
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	// GetJSON decodes the value into dest and reports whether the key existed.
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
}

var _ Cache = (*RedisCache)(nil)

func NewRedisCache(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Cache:NewRedisCache:Ping", "addr", cfg.Addr, "error", err)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("Redis initialized successfully", "addr", cfg.Addr, "db", cfg.DB)
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *RedisCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisCache) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, value, ttl).Result()
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
