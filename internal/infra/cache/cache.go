package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hotel-backoffice/internal/infra/observability"
	"hotel-backoffice/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Cache is a small JSON adapter over redis used by the report queries and
// the rate limiter. A miss is not an error.
type Cache struct {
	c *redis.Client
}

func New(cfg config.RedisConfig) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})}
}

func NewWithClient(c *redis.Client) *Cache {
	return &Cache{c: c}
}

func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("redis", "hit")
	return true, json.Unmarshal(v, dst)
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, key, b, ttl).Err()
}

func (r *Cache) Del(ctx context.Context, keys ...string) error {
	observability.ObserveCache("redis", "del")
	return r.c.Del(ctx, keys...).Err()
}

func (r *Cache) Ping(ctx context.Context) error {
	return r.c.Ping(ctx).Err()
}

func (r *Cache) Close() error {
	return r.c.Close()
}
