package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNil is returned by Get when the key does not exist.
var ErrNil = redis.Nil

type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RedisClient struct {
	client redis.UniversalClient
}

func Connect(ctx context.Context, cfg Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// Wrap adapts an existing go-redis client.
func Wrap(client redis.UniversalClient) *RedisClient {
	return &RedisClient{client: client}
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// CheckRateLimit counts a hit against key and reports whether it is within limit.
// When the limit is exhausted it also returns the seconds until the window resets.
func (r *RedisClient) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	current, err := r.client.Get(ctx, key).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return true, 0, err
	}

	if current >= limit {
		ttl, _ := r.client.TTL(ctx, key).Result()
		return false, int(ttl.Seconds()), nil
	}

	pipe := r.client.Pipeline()
	pipe.Incr(ctx, key)
	if current == 0 {
		pipe.Expire(ctx, key, window)
	}
	_, err = pipe.Exec(ctx)

	return true, 0, err
}

func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *RedisClient) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
