package cache

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbr-dash/internal/qbr"
)

func newTestRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := DialRedis(context.Background(), mr.Addr(), "", 0, ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedis_GetSet(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t, time.Hour)

	_, ok, err := c.Get(ctx, "player:Tom Brady")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "player:Tom Brady", sampleRows))
	assert.True(t, mr.Exists(KeyPrefix+"player:Tom Brady"))

	rows, ok, err := c.Get(ctx, "player:Tom Brady")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleRows, rows)
}

func TestRedis_TTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t, 10*time.Minute)

	require.NoError(t, c.Set(ctx, "team:NWE", sampleRows))
	assert.Equal(t, 10*time.Minute, mr.TTL(KeyPrefix+"team:NWE"))

	mr.FastForward(11 * time.Minute)
	_, ok, err := c.Get(ctx, "team:NWE")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_MissingMean(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestRedis(t, time.Hour)

	in := []qbr.Summary{{Year: 2009, QBR: math.NaN(), PasserRating: 80, NumGames: 1, NumQBs: 1}}
	require.NoError(t, c.Set(ctx, "player:Kyle Orton", in))

	rows, ok, err := c.Get(ctx, "player:Kyle Orton")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.True(t, math.IsNaN(rows[0].QBR))
}

func TestRedis_CorruptValue(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t, time.Hour)
	require.NoError(t, mr.Set(KeyPrefix+"team:NWE", "not json"))

	_, ok, err := c.Get(ctx, "team:NWE")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestDialRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := DialRedis(context.Background(), addr, "", 0, time.Minute)
	assert.Error(t, err)
}
