package kvstore

import (
	"context"
	"errors"
	"time"

	"smartisp.net/console/pkg/redis"
)

const redisKeyPrefix = "ispconsole:"

type redisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisStore keeps values under "ispconsole:<key>" without expiry.
type RedisStore struct {
	client redisClient
}

func NewRedisStore(client *redis.RedisClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, redisKeyPrefix+key)
	if errors.Is(err, redis.ErrNil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, redisKeyPrefix+key, value, 0)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Delete(ctx, redisKeyPrefix+key)
}
