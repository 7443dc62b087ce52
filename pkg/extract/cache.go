package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cacheKeyPrefix = "extract:"

type (
	Cache interface {
		Get(ctx context.Context, key string) ([]byte, bool, error)
		Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	}

	RedisCache struct {
		client *redis.Client
	}

	noopCache struct{}
)

// NewRedisCache connects to redis and pings it once. An empty addr gives a
// cache that never hits.
func NewRedisCache(ctx context.Context, addr, password string) (Cache, func() error, error) {
	if addr == "" {
		log.Info().Msg("REDIS_ADDR not set, extraction cache disabled")
		return noopCache{}, func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return noopCache{}, func() error { return nil }, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().Str("addr", addr).Msg("connected to redis")
	return &RedisCache{client: client}, client.Close, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (noopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (noopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func cacheKey(sourceType, url string) string {
	sum := sha256.Sum256([]byte(sourceType + "|" + url))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
