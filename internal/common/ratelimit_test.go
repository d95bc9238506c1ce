package common

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimiter(t *testing.T) {
	l := NewMemoryRateLimiter()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, _, err := l.Allow(ctx, "register:ip:1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, retry, err := l.Allow(ctx, "register:ip:1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 20*time.Second, retry)

	ok, _, err = l.Allow(ctx, "register:ip:2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "other clients keep their own budget")
}

func TestRedisRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	l := NewRedisRateLimiter(rdb)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, _, err := l.Allow(ctx, "login:ip:1", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, retry, err := l.Allow(ctx, "login:ip:1", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retry)

	mr.FastForward(time.Minute + time.Second)

	ok, _, err = l.Allow(ctx, "login:ip:1", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "the window resets once the key expires")
}

func TestRedisRateLimiter_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	mr.Close()

	_, _, err := NewRedisRateLimiter(rdb).Allow(context.Background(), "k", 1, time.Minute)
	assert.Error(t, err)
}
