// README: Preference store backed by Redis string keys.
package prefs

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const defaultNamespace = "wardharides:prefs:"

type RedisStore struct {
	redis     *redis.Client
	namespace string
}

// NewRedisStore keys every preference under namespace; empty uses the service default.
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &RedisStore{redis: client, namespace: namespace}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.redis.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.redis.Set(ctx, s.key(key), value, 0).Err()
}

func (s *RedisStore) SetNX(ctx context.Context, key, value string) (bool, error) {
	return s.redis.SetNX(ctx, s.key(key), value, 0).Result()
}

func (s *RedisStore) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	return s.redis.IncrBy(ctx, s.key(key), delta).Result()
}

func (s *RedisStore) key(k string) string {
	return s.namespace + k
}
