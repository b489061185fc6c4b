package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedList struct {
	Items []string `json:"items"`
	Count int      `json:"count"`
}

func newTestService(t *testing.T) *GenericCacheService {
	t.Helper()
	config := DefaultCacheConfig()
	config.Prefix = "test:"
	mem := NewMemoryCache(config)
	t.Cleanup(func() { mem.Close() })
	return NewGenericCacheService(mem, config)
}

func TestCacheData_RoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	original := cachedList{Items: []string{"a", "b"}, Count: 2}
	require.NoError(t, svc.CacheData(ctx, "comments:gallery:1:page:1", original))

	var loaded cachedList
	require.NoError(t, svc.GetCached(ctx, "comments:gallery:1:page:1", &loaded))
	assert.Equal(t, original, loaded)
}

func TestGetCached_MissReturnsKeyNotFound(t *testing.T) {
	svc := newTestService(t)

	var loaded cachedList
	err := svc.GetCached(context.Background(), "comments:missing", &loaded)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestInvalidatePattern_RemovesMatchingKeys(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CacheData(ctx, "comments:gallery:1:page:1", cachedList{Count: 1}))
	require.NoError(t, svc.CacheData(ctx, "comments:gallery:1:page:2", cachedList{Count: 2}))
	require.NoError(t, svc.CacheData(ctx, "comments:blog:9:page:1", cachedList{Count: 3}))

	require.NoError(t, svc.InvalidatePattern(ctx, "comments:gallery:1:*"))

	var loaded cachedList
	assert.ErrorIs(t, svc.GetCached(ctx, "comments:gallery:1:page:1", &loaded), ErrKeyNotFound)
	assert.ErrorIs(t, svc.GetCached(ctx, "comments:gallery:1:page:2", &loaded), ErrKeyNotFound)
	assert.NoError(t, svc.GetCached(ctx, "comments:blog:9:page:1", &loaded))
}

func TestDisabledService_ReportsDisabled(t *testing.T) {
	config := DefaultCacheConfig()
	config.Enabled = false
	svc := NewGenericCacheService(nil, config)

	err := svc.CacheData(context.Background(), "k", cachedList{})
	assert.ErrorIs(t, err, ErrCacheDisabled)
	assert.False(t, svc.IsEnabled())
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	mem := NewMemoryCache(DefaultCacheConfig())
	defer mem.Close()
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, err := mem.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
