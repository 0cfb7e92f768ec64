package repositories

import (
	"context"

	"songsync/internal/models"
)

// SaveRepository defines the interface for save data operations. A user
// without a stored row reads back as a default all-empty save, not an error.
type SaveRepository interface {
	FindByUser(ctx context.Context, userID string) (*models.Save, error)

	// Write replaces the user's song list wholesale (upsert)
	Write(ctx context.Context, userID string, songs []*models.SongRef) error

	Delete(ctx context.Context, userID string) error
}
