package reminders

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const leaseKey = "reminders:run:lease"

// RedisLease serializes sweeps across processes with a SETNX lease. The TTL
// bounds how long a crashed run can block the next one.
//
// RedisLease implements Locker.
type RedisLease struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLease builds a lease with the given TTL. A non-positive TTL
// defaults to ten minutes.
func NewRedisLease(client *redis.Client, ttl time.Duration) *RedisLease {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisLease{client: client, ttl: ttl}
}

// Acquire claims the lease. It returns false when another run holds it.
func (l *RedisLease) Acquire(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, leaseKey, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
}

// Release drops the lease.
func (l *RedisLease) Release(ctx context.Context) error {
	return l.client.Del(ctx, leaseKey).Err()
}
