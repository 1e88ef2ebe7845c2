// Package credstore persists the operator's login credentials across console
// restarts.
package credstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// The identity record and the credential token are two independent entries.
// Neither implies the other; the session layer only trusts the pair when both
// are present and the identity parses.
const (
	identityKey = "identity"
	tokenKey    = "token"
)

// RedisStore implements credential storage using Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis-backed credential store.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{
		client: client,
		prefix: "console:session:",
	}, nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "console:session:",
	}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

// SaveCredentials stores the serialized identity and the credential token.
func (s *RedisStore) SaveCredentials(ctx context.Context, identity []byte, token string) error {
	if err := s.client.Set(ctx, s.key(identityKey), identity, 0).Err(); err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	if err := s.client.Set(ctx, s.key(tokenKey), token, 0).Err(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// LoadCredentials returns the persisted pair. A missing entry comes back
// empty rather than as an error; deciding what an incomplete pair means is
// the session layer's job.
func (s *RedisStore) LoadCredentials(ctx context.Context) ([]byte, string, error) {
	identity, err := s.client.Get(ctx, s.key(identityKey)).Result()
	if err != nil && err != redis.Nil {
		return nil, "", fmt.Errorf("load identity: %w", err)
	}
	token, err := s.client.Get(ctx, s.key(tokenKey)).Result()
	if err != nil && err != redis.Nil {
		return nil, "", fmt.Errorf("load token: %w", err)
	}
	if identity == "" {
		return nil, token, nil
	}
	return []byte(identity), token, nil
}

// ClearCredentials erases both entries; safe to call when nothing is stored.
func (s *RedisStore) ClearCredentials(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(identityKey), s.key(tokenKey)).Err(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// Client exposes the underlying connection so the cache layer can share it.
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
