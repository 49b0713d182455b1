package cache

import (
	"context"
	"testing"
	"time"

	"github.com/ferrohub/ferrohub/internal/common/config"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemoryCache()
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_, found, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete(ctx, "k"))
	_, found, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	c, err := NewRedisCache(&config.CacheRedisConfig{Addr: mr.Addr()}, zap.NewNop())
	if err != nil {
		mr.Close()
		t.Fatalf("failed to create redis cache: %v", err)
	}
	return c, mr
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c, mr := newTestRedisCache(t)
	defer mr.Close()
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_, found, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete(ctx, "k"))
	_, found, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := newTestRedisCache(t)
	defer mr.Close()
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewCache_Factory(t *testing.T) {
	c, err := NewCache(&config.CacheConfig{Type: "memory"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)
	_ = c.Close()

	_, err = NewCache(&config.CacheConfig{Type: "memcached"}, zap.NewNop())
	assert.Error(t, err)
}
