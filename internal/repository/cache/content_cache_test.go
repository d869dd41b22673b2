package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, ServicesKey, []byte(`[]`), time.Minute))
	require.NoError(t, c.Set(ctx, ServiceKey("Tour-Manager"), []byte(`{}`), 0))

	v, ok, err := c.Get(ctx, ServicesKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(v))

	now = now.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx, ServicesKey)
	assert.False(t, ok, "entry expired")

	_, ok, _ = c.Get(ctx, "service:tour-manager")
	assert.True(t, ok, "zero ttl never expires and keys are lower-cased")

	require.NoError(t, c.Delete(ctx, ServiceKey("tour-manager")))
	assert.Empty(t, c.Keys())
}

func TestMemoryCache_Purge(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	_ = c.Set(ctx, ServicesKey, []byte(`a`), time.Hour)
	_ = c.Set(ctx, SlugsKey, []byte(`b`), time.Hour)

	require.NoError(t, c.Purge(ctx))
	assert.Empty(t, c.Keys())
}

func TestMemoryCache_CopiesValues(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, 0)
	buf[0] = 'x'

	v, _, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(v))
}

func newTestRedisCache(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedisCache(t)
	c := NewRedisCache(client)

	_, ok, err := c.Get(ctx, ServicesKey)
	require.NoError(t, err)
	assert.False(t, ok, "miss is not an error")

	require.NoError(t, c.Set(ctx, ServicesKey, []byte(`[]`), time.Hour))
	require.NoError(t, c.Set(ctx, ServiceKey("tour-manager"), []byte(`{}`), time.Hour))

	stored, err := mr.Get("content:services")
	require.NoError(t, err)
	assert.Equal(t, `[]`, stored)
	assert.Equal(t, time.Hour, mr.TTL("content:services"))

	v, ok, err := c.Get(ctx, ServiceKey("tour-manager"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{}`, string(v))

	require.NoError(t, c.Delete(ctx, ServicesKey))
	assert.False(t, mr.Exists("content:services"))
	assert.True(t, mr.Exists("content:service:tour-manager"))
	require.NoError(t, c.Delete(ctx))
}

func TestRedisCache_PurgeOnlyContentKeys(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedisCache(t)
	c := NewRedisCache(client)

	for i := 0; i < 250; i++ {
		require.NoError(t, c.Set(ctx, ServiceKey(fmt.Sprintf("svc-%d", i)), []byte(`{}`), time.Hour))
	}
	require.NoError(t, mr.Set("rl:content:192.0.2.1", "3"))

	require.NoError(t, c.Purge(ctx))

	assert.Equal(t, []string{"rl:content:192.0.2.1"}, mr.Keys())
}

func TestRedisCache_ErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedisCache(t)
	c := NewRedisCache(client)
	mr.Close()

	_, ok, err := c.Get(ctx, ServicesKey)
	assert.False(t, ok)
	assert.ErrorContains(t, err, "redis get services")
	assert.Error(t, c.Set(ctx, ServicesKey, []byte(`[]`), time.Minute))
	assert.Error(t, c.Purge(ctx))
}
