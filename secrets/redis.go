package secrets

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStore reads secret values from Redis. Each coordinate maps to the key
// prefix + coordinate.
type RedisStore struct {
	rdb    *goredis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed secret store using an existing client.
func NewRedisStore(rdb *goredis.Client, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

// Read implements Store.
func (s *RedisStore) Read(ctx context.Context, coordinate string) (string, error) {
	value, err := s.rdb.Get(ctx, s.prefix+coordinate).Result()
	if errors.Is(err, goredis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, coordinate)
	}
	if err != nil {
		return "", fmt.Errorf("secrets: redis read %q: %w", coordinate, err)
	}

	return value, nil
}

// Close releases the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
