package identity

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound indicates a revoked or expired session entry.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore tracks active sessions server-side so sign-out actually
// invalidates a token before its expiry.
type SessionStore interface {
	Put(ctx context.Context, sessionID, profileID string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

const sessionKeyPrefix = "session:"

type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore builds a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Put(ctx context.Context, sessionID, profileID string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKeyPrefix+sessionID, profileID, ttl).Err()
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (string, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
