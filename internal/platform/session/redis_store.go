package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed Store. Slots live under "session:<sid>" with
// the TTL enforced by Redis itself.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "session:"}
}

func (s *RedisStore) key(sid string) string {
	return s.prefix + sid
}

func (s *RedisStore) Put(ctx context.Context, sid string, v any, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("session: ttl must be positive")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("session: marshal slot: %w", err)
	}
	return s.client.Set(ctx, s.key(sid), data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, sid string, dest any) (bool, error) {
	val, err := s.client.Get(ctx, s.key(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		// Unreadable slot: discard it and report absent.
		_ = s.client.Del(ctx, s.key(sid)).Err()
		return false, nil
	}
	return true, nil
}

func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	return s.client.Del(ctx, s.key(sid)).Err()
}
