package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"songsync/internal/cache"
)

// cachedCatalogService wraps a CatalogService with a cache so repeated
// validations of the same reference cost one network call. Entries never
// expire for the lifetime of the backing cache; a not-found payload is a
// successful lookup and is cached like any other, while a CatalogError is
// never cached, so the next request re-attempts the fetch.
type cachedCatalogService struct {
	catalog CatalogService
	cache   cache.Cache
}

// NewCachedCatalogService creates a read-through catalog service.
func NewCachedCatalogService(catalog CatalogService, c cache.Cache) CatalogService {
	return &cachedCatalogService{
		catalog: catalog,
		cache:   c,
	}
}

func embedKey(service, refType, id string) string {
	return "embed:" + service + ":" + refType + ":" + id
}

// GetServiceName returns the wrapped service name
func (s *cachedCatalogService) GetServiceName() string {
	return s.catalog.GetServiceName()
}

// Lookup serves from cache when possible, otherwise delegates and stores the
// result. Two requests racing on the same uncached key may both fetch; the
// second write overwrites the first with an identical value.
func (s *cachedCatalogService) Lookup(ctx context.Context, service, refType, id string) (*EmbedInfo, error) {
	key := embedKey(service, refType, id)

	if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
		var info EmbedInfo
		if err := json.Unmarshal(data, &info); err == nil {
			return &info, nil
		}
		// Undecodable entry: fall through and refetch
		slog.Warn("Dropping undecodable catalog cache entry", "key", key)
	}

	info, err := s.catalog.Lookup(ctx, service, refType, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(info); err == nil {
		if err := s.cache.Set(ctx, key, data, 0); err != nil {
			slog.Warn("Failed to cache catalog lookup", "key", key, "error", err)
		}
	}

	return info, nil
}
