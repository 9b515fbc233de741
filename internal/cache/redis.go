package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/hrms-agent/server/internal/core/error"
	logx "github.com/hrms-agent/server/pkg/logger"
)

// RedisQueryCache persists entries as JSON strings with a server-side TTL,
// so expiry needs no reaper of its own.
type RedisQueryCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisQueryCache(rdb redis.Cmdable, ttl time.Duration) *RedisQueryCache {
	return &RedisQueryCache{rdb: rdb, ttl: ttl}
}

func (c *RedisQueryCache) cacheKey(fingerprint string) string {
	return fmt.Sprintf("querycache:%s", fingerprint)
}

func (c *RedisQueryCache) Get(ctx context.Context, query string) (*Entry, bool, error) {
	key := c.cacheKey(Fingerprint(query))

	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to read query cache entry from redis")
		return nil, false, errx.WrapRedis(err)
	}

	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to unmarshal query cache entry")
		return nil, false, fmt.Errorf("unmarshal cache entry: %w", err)
	}
	return &e, true, nil
}

func (c *RedisQueryCache) Set(ctx context.Context, query, reply, toolUsed string, data any) error {
	fp := Fingerprint(query)
	key := c.cacheKey(fp)
	now := time.Now()

	e := Entry{
		Fingerprint: fp,
		Query:       query,
		Reply:       reply,
		ToolUsed:    toolUsed,
		Data:        data,
		CreatedAt:   now,
		ExpiresAt:   now.Add(c.ttl),
	}

	// keep the surface form of the first query that produced this entry
	if raw, err := c.rdb.Get(ctx, key).Result(); err == nil {
		var prev Entry
		if err := json.Unmarshal([]byte(raw), &prev); err == nil && prev.Query != "" {
			e.Query = prev.Query
		}
	}

	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to write query cache entry to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (c *RedisQueryCache) InvalidateAll(ctx context.Context) (int, error) {
	iter := c.rdb.Scan(ctx, 0, c.cacheKey("*"), 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logx.Error().Err(err).Msg("failed to scan query cache keys")
		return 0, errx.WrapRedis(err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	n, err := c.rdb.Del(ctx, keys...).Result()
	if err != nil {
		logx.Error().Err(err).Int("keys", len(keys)).Msg("failed to delete query cache keys")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

var _ QueryCache = (*RedisQueryCache)(nil)
