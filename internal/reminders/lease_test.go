package reminders

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisLease(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	lease := NewRedisLease(client, time.Minute)
	ctx := context.Background()

	ok, err := lease.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// A concurrent run cannot claim the lease.
	ok, err = lease.Acquire(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, lease.Release(ctx))

	ok, err = lease.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// A crashed run's lease expires on its own.
	mr.FastForward(2 * time.Minute)
	ok, err = lease.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}
