package payment

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const processedPrefix = "payment:processed:"

// Deduper remembers which provider sessions were already credited, since
// webhooks are delivered at least once.
type Deduper interface {
	First(ctx context.Context, sessionID string) (bool, error)
	Forget(ctx context.Context, sessionID string) error
}

// RedisDeduper implements Deduper with SET NX.
type RedisDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDeduper builds the deduper.
func NewRedisDeduper(client *redis.Client, ttl time.Duration) *RedisDeduper {
	return &RedisDeduper{client: client, ttl: ttl}
}

// First reports whether this is the first time sessionID is seen.
func (d *RedisDeduper) First(ctx context.Context, sessionID string) (bool, error) {
	return d.client.SetNX(ctx, processedPrefix+sessionID, time.Now().Unix(), d.ttl).Result()
}

// Forget clears a session so a failed credit can be retried.
func (d *RedisDeduper) Forget(ctx context.Context, sessionID string) error {
	return d.client.Del(ctx, processedPrefix+sessionID).Err()
}
