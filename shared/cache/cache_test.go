package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	metricsMocks "atoll/infras/metrics/mocks"
	otelMocks "atoll/infras/otel/mocks"
	"atoll/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedProperty struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, otelMocks.NewOtel(), metricsMocks.NewMetrics()), server
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	redisCache, server := newCache(t)
	ctx := context.Background()

	require.NoError(t, redisCache.Save(ctx, "property:get:p-1", cachedProperty{ID: "p-1", Price: 100}, 60))

	var got cachedProperty
	require.NoError(t, redisCache.Get(ctx, "property:get:p-1", &got))
	assert.Equal(t, cachedProperty{ID: "p-1", Price: 100}, got)

	server.FastForward(61 * time.Second)

	err := redisCache.Get(ctx, "property:get:p-1", &got)
	assert.True(t, errors.Is(err, cache.Nil))
}

func TestRedisCache_StringValues(t *testing.T) {
	redisCache, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, redisCache.Save(ctx, "translation:en", "raw", 60))

	var got string
	require.NoError(t, redisCache.Get(ctx, "translation:en", &got))
	assert.Equal(t, "raw", got)
}

func TestRedisCache_GetMissing(t *testing.T) {
	redisCache, _ := newCache(t)

	var got int
	err := redisCache.Get(context.Background(), "limiter:none", &got)

	require.Error(t, err)
	assert.ErrorIs(t, err, cache.Nil)
}

func TestRedisCache_DeleteAndClear(t *testing.T) {
	redisCache, server := newCache(t)
	ctx := context.Background()

	for _, key := range []string{"booking:gets:1", "booking:gets:2", "booking:count:1", "booking:get:x"} {
		require.NoError(t, redisCache.Save(ctx, key, 1, 60))
	}

	require.NoError(t, redisCache.Delete(ctx, "booking:get:x"))
	assert.False(t, server.Exists("booking:get:x"))

	require.NoError(t, redisCache.Clear(ctx, "booking:gets*"))

	assert.False(t, server.Exists("booking:gets:1"))
	assert.False(t, server.Exists("booking:gets:2"))
	assert.True(t, server.Exists("booking:count:1"))
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	redisCache, server := newCache(t)
	server.Close()

	err := redisCache.Save(context.Background(), "k", 1, 60)
	assert.Error(t, err)
}
