package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisFixedWindow(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	require.NoError(t, client.Ping(ctx).Err())

	l := NewRedis(client, "test:"+uuid.NewString()+":")

	for i := 1; i <= 3; i++ {
		res, err := l.Check(ctx, "user", 3, 2*time.Second)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 3-i, res.Remaining)
	}

	res, err := l.Check(ctx, "user", 3, 2*time.Second)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Greater(t, res.RetryAfter, 0)

	time.Sleep(2100 * time.Millisecond)

	res, err = l.Check(ctx, "user", 3, 2*time.Second)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)
}

func TestRedisRejectsInvalidLimit(t *testing.T) {
	l := NewRedis(nil, "x:")
	_, err := l.Check(context.Background(), "k", -1, time.Second)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}
