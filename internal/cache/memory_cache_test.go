package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Close()

	err := cache.Set(ctx, "key1", []byte("value1"), 0)
	require.NoError(t, err)

	value, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value1"), value)

	exists, err := cache.Exists(ctx, "key1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryCache_MissingKey(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Close()

	value, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, value)

	exists, err := cache.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Close()

	require.NoError(t, cache.Set(ctx, "key1", []byte("value1"), 0))
	require.NoError(t, cache.Delete(ctx, "key1"))

	value, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryCache_Overwrite(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Close()

	require.NoError(t, cache.Set(ctx, "key1", []byte("first"), 0))
	require.NoError(t, cache.Set(ctx, "key1", []byte("second"), 0))

	value, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), value)
}

func TestMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Close()

	require.NoError(t, cache.Set(ctx, "short", []byte("value"), 10*time.Millisecond))
	require.NoError(t, cache.Set(ctx, "forever", []byte("value"), 0))

	time.Sleep(30 * time.Millisecond)

	value, err := cache.Get(ctx, "short")
	require.NoError(t, err)
	assert.Nil(t, value, "Expired entry should read as missing")

	value, err = cache.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value, "Zero expiration should persist")
}

func TestMemoryCache_Health(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()

	assert.NoError(t, cache.Health(context.Background()))
}
