package repositories

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"songsync/internal/cache"
	"songsync/internal/models"
)

// cachedSaveRepository wraps a SaveRepository with caching. Reads go through
// the cache; writes and deletes invalidate, so two instances sharing the
// backing cache stay coherent within the TTL.
type cachedSaveRepository struct {
	repository SaveRepository
	cache      cache.Cache
}

// saveCacheTTL keeps cached saves short-lived; a stale read only persists
// until the next write or expiry.
const saveCacheTTL = 5 * time.Minute

// NewCachedSaveRepository creates a new cached save repository
func NewCachedSaveRepository(repository SaveRepository, c cache.Cache) SaveRepository {
	return &cachedSaveRepository{
		repository: repository,
		cache:      c,
	}
}

func saveKey(userID string) string { return "save:user:" + userID }

// FindByUser checks cache first, then repository
func (r *cachedSaveRepository) FindByUser(ctx context.Context, userID string) (*models.Save, error) {
	key := saveKey(userID)

	if data, err := r.cache.Get(ctx, key); err == nil && data != nil {
		var save models.Save
		if err := json.Unmarshal(data, &save); err == nil {
			return &save, nil
		}
		slog.Warn("Dropping undecodable save cache entry", "key", key)
	}

	save, err := r.repository.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(save); err == nil {
		if err := r.cache.Set(ctx, key, data, saveCacheTTL); err != nil {
			slog.Warn("Failed to cache save", "key", key, "error", err)
		}
	}

	return save, nil
}

// Write writes through to the repository and invalidates the cached save
func (r *cachedSaveRepository) Write(ctx context.Context, userID string, songs []*models.SongRef) error {
	if err := r.repository.Write(ctx, userID, songs); err != nil {
		return err
	}

	r.invalidate(ctx, userID)
	return nil
}

// Delete deletes from the repository and invalidates the cached save
func (r *cachedSaveRepository) Delete(ctx context.Context, userID string) error {
	if err := r.repository.Delete(ctx, userID); err != nil {
		return err
	}

	r.invalidate(ctx, userID)
	return nil
}

func (r *cachedSaveRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Delete(ctx, saveKey(userID)); err != nil {
		slog.Warn("Failed to invalidate cached save", "user", userID, "error", err)
	}
}
