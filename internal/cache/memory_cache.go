package cache

import (
	"context"
	"sync"
	"time"
)

// memoryCache is a process-local Cache backed by a plain map. It holds
// entries for the lifetime of the process unless they carry an expiration;
// there is no capacity bound and no eviction. It backs the catalog
// validation memoization, where entries are small and idempotent.
type memoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time // zero value = never expires
}

// NewMemoryCache creates an in-process cache.
func NewMemoryCache() Cache {
	return &memoryCache{
		items: make(map[string]memoryItem),
	}
}

// Get retrieves a value; a missing or expired key yields (nil, nil).
func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return nil, nil
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock before dropping the entry
		if item, exists := c.items[key]; exists && !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, nil
	}

	return item.data, nil
}

// Set stores a value; expiration zero keeps the entry for the process lifetime.
func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	item := memoryItem{data: value}
	if expiration > 0 {
		item.expiresAt = time.Now().Add(expiration)
	}

	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()
	return nil
}

// Delete removes a key
func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}

// Exists checks if a key exists
func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	data, err := c.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

// Close drops all entries
func (c *memoryCache) Close() error {
	c.mu.Lock()
	c.items = make(map[string]memoryItem)
	c.mu.Unlock()
	return nil
}

// Health always succeeds for the in-process cache
func (c *memoryCache) Health(ctx context.Context) error {
	return nil
}
