package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "session:refresh:"

// ErrRefreshTokenNotFound is returned for unknown, expired or already rotated tokens.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshStore keeps opaque refresh tokens mapped to user ids.
type RefreshStore interface {
	Issue(ctx context.Context, userID string) (string, error)
	Lookup(ctx context.Context, token string) (string, error)
	Rotate(ctx context.Context, token string) (newToken, userID string, err error)
	Revoke(ctx context.Context, token string) error
}

// RedisRefreshStore is the go-redis implementation of RefreshStore.
type RedisRefreshStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRefreshStore builds the store.
func NewRedisRefreshStore(client *redis.Client, ttl time.Duration) *RedisRefreshStore {
	return &RedisRefreshStore{client: client, ttl: ttl}
}

func (s *RedisRefreshStore) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, refreshKeyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisRefreshStore) Lookup(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, refreshKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrRefreshTokenNotFound
	}
	return userID, err
}

// Rotate consumes token and issues a replacement for the same user. A token
// can be rotated only once.
func (s *RedisRefreshStore) Rotate(ctx context.Context, token string) (string, string, error) {
	userID, err := s.client.GetDel(ctx, refreshKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", "", ErrRefreshTokenNotFound
	}
	if err != nil {
		return "", "", err
	}
	newToken, err := s.Issue(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return newToken, userID, nil
}

func (s *RedisRefreshStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, refreshKeyPrefix+token).Err()
}
