package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"MarketPulse/internal/model"
)

// RedisCache shares fetched bars between instances through Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to the Redis URL and verifies it with a ping.
func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().Str("addr", opts.Addr).Msg("redis candle cache connected")
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (r *RedisCache) Name() string { return "redis" }

func (r *RedisCache) Get(ctx context.Context, key string) ([]model.OHLCV, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis get failed")
		return nil, false
	}
	var bars []model.OHLCV
	if err := json.Unmarshal(data, &bars); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis value is not a bar list")
		return nil, false
	}
	return bars, true
}

func (r *RedisCache) Set(ctx context.Context, key string, bars []model.OHLCV) {
	data, err := json.Marshal(bars)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("encode bars")
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis set failed")
	}
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
