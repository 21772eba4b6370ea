package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/google/uuid"

	"github.com/campus-events/portal/pkg/redis"
)

// ErrNoToken means the session holds no campus credential (never logged in,
// logged out, or invalidated after an upstream 401/403).
var ErrNoToken = errors.New("no stored token")

// Store keeps campus bearer tokens per session, one slot per session id.
// A write replaces whatever was there before.
type Store interface {
	Save(ctx context.Context, sessionID uuid.UUID, token string, ttl time.Duration) error
	Get(ctx context.Context, sessionID uuid.UUID) (string, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

// RedisStore persists session tokens in Redis with the session TTL.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Redis-backed token store.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func tokenKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:token:%s", sessionID)
}

func (s *RedisStore) Save(ctx context.Context, sessionID uuid.UUID, token string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, tokenKey(sessionID), token, ttl).Err(); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID uuid.UUID) (string, error) {
	token, err := s.rdb.Get(ctx, tokenKey(sessionID)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.rdb.Del(ctx, tokenKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}
