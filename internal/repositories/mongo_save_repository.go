package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"songsync/internal/models"
)

// mongoSaveRepository implements SaveRepository using MongoDB
type mongoSaveRepository struct {
	collection *mongo.Collection
}

// saveDocument is the stored shape of one user's save
type saveDocument struct {
	User      string            `bson:"user"`
	Songs     []*models.SongRef `bson:"songs"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

// NewMongoSaveRepository creates a new MongoDB-backed save repository
func NewMongoSaveRepository(db *models.Database) SaveRepository {
	return &mongoSaveRepository{
		collection: db.DB.Collection("saves"),
	}
}

// FindByUser loads a user's save, defaulting to an all-empty one when no row
// exists. The default is not persisted.
func (r *mongoSaveRepository) FindByUser(ctx context.Context, userID string) (*models.Save, error) {
	var doc saveDocument
	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.NewEmptySave(userID), nil
		}
		return nil, fmt.Errorf("failed to find save: %w", err)
	}

	return &models.Save{
		User:  doc.User,
		Songs: normalizeSlots(doc.Songs),
	}, nil
}

// Write replaces the user's song list wholesale, creating the row if needed.
func (r *mongoSaveRepository) Write(ctx context.Context, userID string, songs []*models.SongRef) error {
	doc := saveDocument{
		User:      userID,
		Songs:     songs,
		UpdatedAt: time.Now(),
	}

	_, err := r.collection.ReplaceOne(ctx, bson.M{"user": userID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	return nil
}

// Delete removes the user's save. Deleting an absent row is not an error.
func (r *mongoSaveRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"user": userID})
	if err != nil {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	return nil
}

// normalizeSlots pads or trims a stored song list to exactly SlotCount
// entries, so the length invariant holds even for rows written by an older
// build.
func normalizeSlots(songs []*models.SongRef) []*models.SongRef {
	if len(songs) == models.SlotCount {
		return songs
	}

	normalized := make([]*models.SongRef, models.SlotCount)
	copy(normalized, songs)
	return normalized
}
