package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbr-dash/internal/cache"
	"qbr-dash/internal/config"
	"qbr-dash/internal/qbr"
)

var cachedRows = []qbr.Summary{{Year: 2010, QBR: 85, PasserRating: 110, NumGames: 2, NumQBs: 1}}

func TestOpenCache_Memory(t *testing.T) {
	c, closeFn, err := openCache(context.Background(), config.CacheConfig{Backend: config.CacheMemory, TTL: time.Hour})
	require.NoError(t, err)
	defer closeFn()

	_, ok := c.(*cache.Memory)
	assert.True(t, ok)
}

func TestOpenCache_None(t *testing.T) {
	c, closeFn, err := openCache(context.Background(), config.CacheConfig{Backend: config.CacheNone})
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, cache.Nop{}, c)
}

func TestOpenCache_Redis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	c, closeFn, err := openCache(ctx, config.CacheConfig{
		Backend:   config.CacheRedis,
		TTL:       time.Minute,
		RedisAddr: mr.Addr(),
	})
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, c.Set(ctx, cache.Key(qbr.ByPlayer, "Tom Brady"), cachedRows))
	assert.True(t, mr.Exists(cache.KeyPrefix+"player:Tom Brady"))
	assert.Equal(t, time.Minute, mr.TTL(cache.KeyPrefix+"player:Tom Brady"))
}

func TestOpenCache_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := openCache(context.Background(), config.CacheConfig{
		Backend:   config.CacheRedis,
		TTL:       time.Minute,
		RedisAddr: addr,
	})
	assert.Error(t, err)
}
