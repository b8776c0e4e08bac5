package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sacsbrainz/betconverter/internal/models"
)

// ConnectRedis opens a client and checks it answers.
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return rdb, nil
}

// RedisCache keeps results in Redis as JSON.
type RedisCache struct {
	R   *redis.Client
	TTL time.Duration
}

func NewRedis(r *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{R: r, TTL: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (models.ConversionResult, error) {
	var res models.ConversionResult

	b, err := c.R.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return res, ErrMiss
	}
	if err != nil {
		return res, err
	}

	return res, json.Unmarshal(b, &res)
}

func (c *RedisCache) Set(ctx context.Context, key string, res models.ConversionResult) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, key, b, c.TTL).Err()
}

// Ping reports whether Redis is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.R.Ping(ctx).Err()
}
