package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"songsync/internal/models"
)

// ErrMalformedBody marks a structural violation in a submitted song list:
// wrong length, a non-object non-null element, or bad field types/values.
// Structural violations reject the whole request.
var ErrMalformedBody = errors.New("malformed song list")

// SongListValidator validates a client-submitted song list against the
// external catalog. Structure is the client's responsibility (hard reject);
// existence is the external world's (a missing reference downgrades its slot
// to empty instead of failing the request).
type SongListValidator struct {
	catalog CatalogService
}

// NewSongListValidator creates a validator backed by the given catalog.
func NewSongListValidator(catalog CatalogService) *SongListValidator {
	return &SongListValidator{catalog: catalog}
}

// rawSongRef decodes one submitted slot. Pointer fields distinguish a
// missing field from a present empty one; extra client fields are dropped.
type rawSongRef struct {
	Service *string `json:"service"`
	Type    *string `json:"type"`
	ID      *string `json:"id"`
}

// Validate checks a raw JSON body against the song list shape and the
// catalog, returning the normalized slots. A structural violation yields
// ErrMalformedBody; a catalog lookup failure propagates as-is.
func (v *SongListValidator) Validate(ctx context.Context, body []byte) ([]*models.SongRef, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(body, &elements); err != nil {
		return nil, ErrMalformedBody
	}
	if len(elements) != models.SlotCount {
		return nil, ErrMalformedBody
	}

	songs := make([]*models.SongRef, 0, models.SlotCount)
	for _, element := range elements {
		element = bytes.TrimSpace(element)

		if bytes.Equal(element, []byte("null")) {
			songs = append(songs, nil)
			continue
		}

		// Each populated slot must be an object; arrays and scalars are
		// structural violations.
		if len(element) == 0 || element[0] != '{' {
			return nil, ErrMalformedBody
		}

		var ref rawSongRef
		if err := json.Unmarshal(element, &ref); err != nil {
			return nil, ErrMalformedBody
		}
		if ref.Service == nil || *ref.Service != models.ServiceSpotify {
			return nil, ErrMalformedBody
		}
		if ref.Type == nil || !models.ValidType(*ref.Type) {
			return nil, ErrMalformedBody
		}
		if ref.ID == nil {
			return nil, ErrMalformedBody
		}

		info, err := v.catalog.Lookup(ctx, *ref.Service, *ref.Type, *ref.ID)
		if err != nil {
			return nil, fmt.Errorf("catalog lookup for %s/%s: %w", *ref.Type, *ref.ID, err)
		}
		if info.NotFound() {
			// Stale or mistyped reference: downgrade the slot, keep the rest.
			songs = append(songs, nil)
			continue
		}

		songs = append(songs, &models.SongRef{
			Service: *ref.Service,
			Type:    *ref.Type,
			ID:      *ref.ID,
		})
	}

	return songs, nil
}
