package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

func newRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	c := NewRedisWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedis(t)

	var got item
	ok, err := c.Get(ctx, "medicines:1", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "medicines:1", item{Name: "Aspirin", Stock: 3}, time.Minute))
	ok, err = c.Get(ctx, "medicines:1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, item{Name: "Aspirin", Stock: 3}, got)

	mr.FastForward(2 * time.Minute)
	ok, err = c.Get(ctx, "medicines:1", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisDelete(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedis(t)

	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))
	require.NoError(t, c.Delete(ctx, "a", "b"))
	require.NoError(t, c.Delete(ctx))

	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
}

func TestRedisUnavailable(t *testing.T) {
	_, err := NewRedis(context.Background(), "127.0.0.1:1")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	ok, err := c.Get(context.Background(), "k", new(item))
	assert.NoError(t, err)
	assert.False(t, ok)
}
