package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each namespace as a single Redis key holding a JSON
// document. Used when client state should survive across hosts.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore wraps an existing client. keyPrefix separates this
// application's state from other users of the same Redis.
func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisStore) key(namespace string) string {
	return s.keyPrefix + ":" + namespace
}

func (s *RedisStore) Load(ctx context.Context, namespace string, v any) error {
	raw, err := s.client.Get(ctx, s.key(namespace)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read state %q: %w", namespace, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode state %q: %w", namespace, err)
	}
	return nil
}

func (s *RedisStore) Save(ctx context.Context, namespace string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode state %q: %w", namespace, err)
	}

	if err := s.client.Set(ctx, s.key(namespace), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write state %q: %w", namespace, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, namespace string) error {
	if err := s.client.Del(ctx, s.key(namespace)).Err(); err != nil {
		return fmt.Errorf("failed to delete state %q: %w", namespace, err)
	}
	return nil
}
