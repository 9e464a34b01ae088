package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

const (
	KeyMovies = "catalog:movies"
	KeyShows  = "catalog:shows"
)

func KeyShowsByMovie(movieID int64) string {
	return fmt.Sprintf("catalog:shows:movie:%d", movieID)
}

// Cache stores JSON encoded values.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, log *zap.Logger) Cache {
	return &redisCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "redis")),
	}
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		c.log.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// corrupt entry, drop it so the next read repopulates
		c.client.Del(ctx, key)
		return ErrMiss
	}

	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Cache delete failed", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("cache delete: %w", err)
	}

	return nil
}

type noopCache struct{}

// NewNoopCache returns a cache that never stores anything.
func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, any) error { return ErrMiss }

func (noopCache) Set(context.Context, string, any) error { return nil }

func (noopCache) Delete(context.Context, ...string) error { return nil }
