package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Domenick1991/airport-service/config"
	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set TEST_REDIS_ADDR (e.g. localhost:6379) to run against a real server.
func testCache(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}
	c := NewRedisCache(config.RedisConfig{Addr: addr, DB: 15}, time.Minute)
	if err := c.Ping(context.Background()); err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()
	require.NoError(t, c.Invalidate(ctx, AirportsKey))

	var got []domain.Airport
	ok, err := c.GetJSON(ctx, AirportsKey, &got)
	require.NoError(t, err)
	assert.False(t, ok)

	want := []domain.Airport{{ID: 1, Name: "Boryspil", ClosestBigCity: "Kyiv"}}
	require.NoError(t, c.SetJSON(ctx, AirportsKey, want))

	ok, err = c.GetJSON(ctx, AirportsKey, &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, c.Invalidate(ctx, AirportsKey))
	ok, err = c.GetJSON(ctx, AirportsKey, &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_InvalidateNothing(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "127.0.0.1:0"}, time.Minute)
	defer c.Close()

	assert.NoError(t, c.Invalidate(context.Background()))
}
