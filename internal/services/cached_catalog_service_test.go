package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songsync/internal/cache"
	"songsync/internal/models"
)

// countingCatalog is a scripted CatalogService that counts outbound lookups
type countingCatalog struct {
	mu    sync.Mutex
	calls int
	info  *EmbedInfo
	err   error
}

func (c *countingCatalog) GetServiceName() string { return models.ServiceSpotify }

func (c *countingCatalog) Lookup(ctx context.Context, service, refType, id string) (*EmbedInfo, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.info, nil
}

func (c *countingCatalog) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestCachedCatalogService_SecondLookupHitsCache(t *testing.T) {
	ctx := context.Background()
	upstream := &countingCatalog{info: &EmbedInfo{Status: 200}}
	service := NewCachedCatalogService(upstream, cache.NewMemoryCache())

	first, err := service.Lookup(ctx, models.ServiceSpotify, models.TypeTrack, "abc")
	require.NoError(t, err)
	second, err := service.Lookup(ctx, models.ServiceSpotify, models.TypeTrack, "abc")
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, 1, upstream.callCount(), "Second lookup should be served from cache")
}

func TestCachedCatalogService_NotFoundIsCached(t *testing.T) {
	ctx := context.Background()
	upstream := &countingCatalog{info: &EmbedInfo{Status: 404}}
	service := NewCachedCatalogService(upstream, cache.NewMemoryCache())

	info, err := service.Lookup(ctx, models.ServiceSpotify, models.TypeTrack, "gone")
	require.NoError(t, err)
	assert.True(t, info.NotFound())

	info, err = service.Lookup(ctx, models.ServiceSpotify, models.TypeTrack, "gone")
	require.NoError(t, err)
	assert.True(t, info.NotFound())

	// A parsed not-found payload is a successful lookup and memoizes
	assert.Equal(t, 1, upstream.callCount())
}

func TestCachedCatalogService_FailureIsNotCached(t *testing.T) {
	ctx := context.Background()
	upstream := &countingCatalog{err: &CatalogError{Service: models.ServiceSpotify, Operation: "lookup", Message: "request failed"}}
	service := NewCachedCatalogService(upstream, cache.NewMemoryCache())

	_, err := service.Lookup(ctx, models.ServiceSpotify, models.TypeTrack, "abc")
	require.Error(t, err)
	_, err = service.Lookup(ctx, models.ServiceSpotify, models.TypeTrack, "abc")
	require.Error(t, err)

	// Failed lookups re-attempt until a success lands in the cache
	assert.Equal(t, 2, upstream.callCount())
}

func TestCachedCatalogService_KeysAreDistinct(t *testing.T) {
	ctx := context.Background()
	upstream := &countingCatalog{info: &EmbedInfo{Status: 200}}
	service := NewCachedCatalogService(upstream, cache.NewMemoryCache())

	_, err := service.Lookup(ctx, models.ServiceSpotify, models.TypeTrack, "abc")
	require.NoError(t, err)
	_, err = service.Lookup(ctx, models.ServiceSpotify, models.TypeAlbum, "abc")
	require.NoError(t, err)

	assert.Equal(t, 2, upstream.callCount(), "Same id under a different type is a different key")
}
