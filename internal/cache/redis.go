package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func NewRedisClient(addr, password string, db int, log *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("redis connected", zap.String("addr", addr))
	return rdb, nil
}

// CatalogCache stores catalog reads under a versioned namespace.
// Invalidate bumps the version, orphaning every older entry until its
// TTL runs out. Redis failures degrade to cache misses.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

const catalogVersionKey = "catalog:version"

func NewCatalogCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl, log: log}
}

func (c *CatalogCache) Load(ctx context.Context, key string, dest any) bool {
	full, err := c.key(ctx, key)
	if err != nil {
		return false
	}

	raw, err := c.client.Get(ctx, full).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("catalog cache read failed", zap.String("key", full), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("catalog cache entry corrupt", zap.String("key", full), zap.Error(err))
		return false
	}
	return true
}

func (c *CatalogCache) Store(ctx context.Context, key string, value any) {
	full, err := c.key(ctx, key)
	if err != nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("catalog cache encode failed", zap.String("key", full), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, full, raw, c.ttl).Err(); err != nil {
		c.log.Warn("catalog cache write failed", zap.String("key", full), zap.Error(err))
	}
}

func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, catalogVersionKey).Err(); err != nil {
		c.log.Warn("catalog cache invalidate failed", zap.Error(err))
	}
}

func (c *CatalogCache) key(ctx context.Context, key string) (string, error) {
	version, err := c.client.Get(ctx, catalogVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.Warn("catalog cache version read failed", zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("catalog:v%d:%s", version, key), nil
}

// Noop satisfies the catalog cache port when Redis is not configured.
type Noop struct{}

func (Noop) Load(context.Context, string, any) bool { return false }
func (Noop) Store(context.Context, string, any)      {}
func (Noop) Invalidate(context.Context)              {}
