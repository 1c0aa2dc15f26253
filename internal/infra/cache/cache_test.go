//go:build unit

package cache_test

import (
	"context"
	"testing"
	"time"

	"hotel-backoffice/internal/infra/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type occupancySnapshot struct {
	Date          string  `json:"date"`
	OccupiedRooms int     `json:"occupied_rooms"`
	Rate          float64 `json:"rate"`
}

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCacheRoundTrip(t *testing.T) {
	t.Run("stores and reads back JSON values", func(t *testing.T) {
		c, _ := newTestCache(t)
		ctx := context.Background()

		stored := occupancySnapshot{Date: "2026-02-10", OccupiedRooms: 42, Rate: 0.84}
		require.NoError(t, c.Set(ctx, "reports:occupancy:2026-02-10", stored, time.Minute))

		var got occupancySnapshot
		hit, err := c.Get(ctx, "reports:occupancy:2026-02-10", &got)
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, stored, got)
	})

	t.Run("miss is not an error", func(t *testing.T) {
		c, _ := newTestCache(t)

		var got occupancySnapshot
		hit, err := c.Get(context.Background(), "reports:occupancy:missing", &got)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("entries expire after the TTL", func(t *testing.T) {
		c, mr := newTestCache(t)
		ctx := context.Background()

		require.NoError(t, c.Set(ctx, "reports:revenue:2026-02", occupancySnapshot{Rate: 1}, time.Second))
		mr.FastForward(2 * time.Second)

		var got occupancySnapshot
		hit, err := c.Get(ctx, "reports:revenue:2026-02", &got)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("delete removes keys", func(t *testing.T) {
		c, _ := newTestCache(t)
		ctx := context.Background()

		require.NoError(t, c.Set(ctx, "k1", occupancySnapshot{}, time.Minute))
		require.NoError(t, c.Del(ctx, "k1"))

		var got occupancySnapshot
		hit, err := c.Get(ctx, "k1", &got)
		require.NoError(t, err)
		assert.False(t, hit)
	})
}
