package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, time.Minute), srv
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	want := []entry{{ID: 1, Name: "Paper"}, {ID: 2, Name: "Toner"}}
	require.NoError(t, c.Set(ctx, "products:all", want))

	var got []entry
	require.NoError(t, c.Get(ctx, "products:all", &got))
	assert.Equal(t, want, got)

	require.NoError(t, c.Delete(ctx, "products:all", "products:vendor:7"))
	err := c.Get(ctx, "products:all", &got)
	assert.True(t, errors.Is(err, ErrMiss))
}

func TestRedisCache_TTL(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", entry{ID: 1}))
	srv.FastForward(2 * time.Minute)

	var got entry
	assert.True(t, errors.Is(c.Get(ctx, "k", &got), ErrMiss))
}

func TestNewRedisClient(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), srv.Addr(), "", 0)
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	_, err = NewRedisClient(context.Background(), "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
