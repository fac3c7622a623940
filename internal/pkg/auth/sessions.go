package auth

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	cacheport "parley/internal/infrastructure/cache/port"
)

const sessionKeyPrefix = "session:"

// DefaultSessionTTL applies when SESSION_TTL_HOURS is unset.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Sessions issues and resolves opaque session tokens backed by the cache.
// A dropped cache entry simply forces a re-login; nothing else depends on it.
type Sessions struct {
	cache cacheport.Cache
	ttl   time.Duration
}

// NewSessions constructs a session registry with the given TTL. A zero ttl
// falls back to DefaultSessionTTL.
func NewSessions(cache cacheport.Cache, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{cache: cache, ttl: ttl}
}

// SessionTTLFromEnv reads SESSION_TTL_HOURS, defaulting when unset or bogus.
func SessionTTLFromEnv() time.Duration {
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h > 0 {
			return time.Duration(h) * time.Hour
		}
	}
	return DefaultSessionTTL
}

// Issue stores a fresh token for the user and returns it.
func (s *Sessions) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.cache.Set(ctx, sessionKeyPrefix+token, userID, s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve maps a token back to its user id. Unknown or expired tokens return
// ErrNoSession.
func (s *Sessions) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNoSession
	}
	userID, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if errors.Is(err, cacheport.ErrMiss) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", ErrNoSession
	}
	return userID, nil
}

// Revoke deletes the token. Revoking an unknown token is a no-op.
func (s *Sessions) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, err := s.cache.Del(ctx, sessionKeyPrefix+token)
	return err
}

// TTL reports the configured session lifetime.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}
