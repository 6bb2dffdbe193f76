package ledger

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the ledger with a Redis string per user key. It is
// the production Store: records survive restarts and are shared by
// every kiosk instance pointing at the same server.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an already-connected Redis client. The client
// must be non-nil; callers that failed to connect should fall back to
// a MemoryStore instead.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	if rdb == nil {
		panic("nil redis client passed to NewRedisStore")
	}
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}
