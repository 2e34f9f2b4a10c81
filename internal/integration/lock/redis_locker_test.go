package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLocker(client), mr
}

func TestRedisLocker_TryLock(t *testing.T) {
	ctx := context.Background()

	t.Run("second claim on a held key fails", func(t *testing.T) {
		locker, mr := newTestLocker(t)

		token, ok, err := locker.TryLock(ctx, "lease:1", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)
		assert.NotEmpty(t, token)

		value, err := mr.Get(keyPrefix + "lease:1")
		require.NoError(t, err)
		assert.Equal(t, token, value)

		_, ok, err = locker.TryLock(ctx, "lease:1", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired claims can be taken again", func(t *testing.T) {
		locker, mr := newTestLocker(t)

		_, ok, err := locker.TryLock(ctx, "lease:2", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		mr.FastForward(2 * time.Minute)

		_, ok, err = locker.TryLock(ctx, "lease:2", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects bad arguments", func(t *testing.T) {
		locker, _ := newTestLocker(t)

		_, _, err := locker.TryLock(ctx, "", time.Minute)
		assert.ErrorIs(t, err, errEmptyKey)

		_, _, err = locker.TryLock(ctx, "lease:3", 0)
		assert.ErrorIs(t, err, errNonPositive)
	})

	t.Run("surfaces connection errors", func(t *testing.T) {
		locker, mr := newTestLocker(t)
		mr.Close()

		_, ok, err := locker.TryLock(ctx, "lease:4", time.Minute)
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestRedisLocker_Release(t *testing.T) {
	ctx := context.Background()

	t.Run("owner releases the key", func(t *testing.T) {
		locker, mr := newTestLocker(t)

		token, ok, err := locker.TryLock(ctx, "rentroll:p:2024-03", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, locker.Release(ctx, "rentroll:p:2024-03", token))
		assert.False(t, mr.Exists(keyPrefix+"rentroll:p:2024-03"))
	})

	t.Run("a stale token leaves the new owner alone", func(t *testing.T) {
		locker, mr := newTestLocker(t)

		stale, ok, err := locker.TryLock(ctx, "lease:5", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		mr.FastForward(2 * time.Minute)
		current, ok, err := locker.TryLock(ctx, "lease:5", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, locker.Release(ctx, "lease:5", stale))

		value, err := mr.Get(keyPrefix + "lease:5")
		require.NoError(t, err)
		assert.Equal(t, current, value)
	})

	t.Run("empty token is a no-op", func(t *testing.T) {
		locker, _ := newTestLocker(t)
		assert.NoError(t, locker.Release(ctx, "lease:6", ""))
	})
}
