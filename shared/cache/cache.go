package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"atoll/infras/metrics"
	"atoll/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	metricsCacheName      = "redis"
	clearScanCount        = 100
	Nil                   = redis.Nil
)

// RedisCache stores JSON documents (or raw strings) under string keys with a TTL in seconds.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, prefix string) error
}

type redisCache struct {
	client  *redis.Client
	otel    otel.Otel
	metrics metrics.Metrics
}

func NewRedisCache(client *redis.Client, ot otel.Otel, m metrics.Metrics) RedisCache {
	return &redisCache{
		client:  client,
		otel:    ot,
		metrics: m,
	}
}

func (cache *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

func encode(value any) ([]byte, error) {
	if s, ok := value.(string); ok {
		return []byte(s), nil
	}

	return json.Marshal(value)
}

func decode(raw string, value any) error {
	if s, ok := value.(*string); ok {
		*s = raw

		return nil
	}

	return json.Unmarshal([]byte(raw), value)
}

// Clear removes every key matching the pattern, one scan page at a time.
func (cache *redisCache) Clear(ctx context.Context, prefix string) (err error) {
	ctx, scope := cache.scope(ctx, "Clear", prefix)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var cursor uint64

	for {
		var keys []string

		keys, cursor, err = cache.client.Scan(ctx, cursor, prefix, clearScanCount).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			if err = cache.client.Del(ctx, keys...).Err(); err != nil {
				log.Error().Err(err).Str("pattern", prefix).Int("keys", len(keys)).Msg("failed to clear cache")

				return fmt.Errorf("failed to delete cache value: %w", err)
			}

			for range keys {
				cache.metrics.ObserveCache(metricsCacheName, metrics.CacheEventDel)
			}
		}

		if cursor == 0 {
			return nil
		}
	}
}

func (cache *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := cache.scope(ctx, "Delete", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = cache.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	cache.metrics.ObserveCache(metricsCacheName, metrics.CacheEventDel)

	return nil
}

// Get decodes the cached value into value. A missing key yields an error wrapping Nil.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := cache.scope(ctx, "Get", key)
	defer scope.End()
	defer func() {
		if !errors.Is(err, redis.Nil) {
			scope.TraceIfError(err)
		}
	}()

	raw, err := cache.client.Get(ctx, key).Result()

	switch {
	case errors.Is(err, redis.Nil):
		cache.metrics.ObserveCache(metricsCacheName, metrics.CacheEventMiss)

		return fmt.Errorf("cache miss for %s: %w", key, err)
	case err != nil:
		return fmt.Errorf("failed to get cache value: %w", err)
	}

	cache.metrics.ObserveCache(metricsCacheName, metrics.CacheEventHit)

	if err = decode(raw, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to decode cached value")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := cache.scope(ctx, "Save", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payload, err := encode(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to encode cache value")

		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err = cache.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	cache.metrics.ObserveCache(metricsCacheName, metrics.CacheEventSet)

	return nil
}
