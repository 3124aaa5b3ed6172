package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T) (*RedisMediaCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewRedisMediaCache(client, "test:"), mr
}

func TestRedisMediaCache_RoundTrip(t *testing.T) {
	cache, mr := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveMedia(ctx, &domain.Media{ID: 12, SourceURL: "http://x/12.jpg"}, time.Minute))
	assert.True(t, mr.Exists("test:media:12"))

	got, err := cache.GetMedia(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, "http://x/12.jpg", got.SourceURL)

	require.NoError(t, cache.DeleteMedia(ctx, 12))
	_, err = cache.GetMedia(ctx, 12)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisMediaCache_Expiry(t *testing.T) {
	cache, mr := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveMedia(ctx, &domain.Media{ID: 3, SourceURL: "a.jpg"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := cache.GetMedia(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisMediaCache_CorruptEntryIsMiss(t *testing.T) {
	cache, mr := setupRedisCache(t)
	require.NoError(t, mr.Set("test:media:5", "{not json"))

	_, err := cache.GetMedia(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
