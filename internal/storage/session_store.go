package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix namespaces session keys in Redis
const sessionKeyPrefix = "session:"

// SessionStore holds bearer session tokens in Redis with a TTL. The
// original design kept sessions in process memory; Redis gives the same
// semantics across restarts and replicas.
type SessionStore struct {
	cache *RedisCache
	ttl   time.Duration
}

// NewSessionStore creates a session store on top of a Redis connection
func NewSessionStore(cache *RedisCache, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: cache, ttl: ttl}
}

// Create issues a new opaque token for the user and stores it with TTL
func (s *SessionStore) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	key := sessionKeyPrefix + token

	if err := s.cache.Set(ctx, key, strconv.FormatInt(userID, 10), s.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Get resolves a token to its user id. Unknown or expired tokens return
// ErrNotFound.
func (s *SessionStore) Get(ctx context.Context, token string) (int64, error) {
	value, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to look up session: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value: %w", err)
	}

	return userID, nil
}

// Delete invalidates a token. Deleting an unknown token is not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.cache.Del(ctx, sessionKeyPrefix+token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
