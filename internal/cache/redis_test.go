package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type entry struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

func newCache(t *testing.T) (*CatalogCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewRedisClient(mr.Addr(), "", 0, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewCatalogCache(client, time.Minute, zap.NewNop()), mr
}

func TestCatalogCacheRoundTrip(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	var got []entry
	assert.False(t, c.Load(ctx, "list:all", &got))

	c.Store(ctx, "list:all", []entry{{Name: "Fries", Price: 50}})

	require.True(t, c.Load(ctx, "list:all", &got))
	assert.Equal(t, []entry{{Name: "Fries", Price: 50}}, got)
}

func TestCatalogCacheInvalidate(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	c.Store(ctx, "categories", []string{"Affordable"})
	c.Invalidate(ctx)

	var got []string
	assert.False(t, c.Load(ctx, "categories", &got))

	v, err := mr.Get(catalogVersionKey)
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestCatalogCacheTTL(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	c.Store(ctx, "list:newest", []entry{{Name: "Burger"}})
	mr.FastForward(2 * time.Minute)

	var got []entry
	assert.False(t, c.Load(ctx, "list:newest", &got))
}

func TestCatalogCacheDegradesWhenDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	c := NewCatalogCache(client, time.Minute, zap.NewNop())
	ctx := context.Background()

	var got []entry
	assert.False(t, c.Load(ctx, "list:all", &got))
	c.Store(ctx, "list:all", []entry{{Name: "x"}})
	c.Invalidate(ctx)
}

func TestNewRedisClientUnreachable(t *testing.T) {
	_, err := NewRedisClient("127.0.0.1:1", "", 0, zap.NewNop())
	assert.Error(t, err)
}

