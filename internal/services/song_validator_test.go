package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songsync/internal/models"
)

func newTestValidator(status int) (*SongListValidator, *countingCatalog) {
	catalog := &countingCatalog{info: &EmbedInfo{Status: status}}
	return NewSongListValidator(catalog), catalog
}

func TestSongListValidator_AllEmpty(t *testing.T) {
	validator, catalog := newTestValidator(200)

	songs, err := validator.Validate(context.Background(), []byte(`[null,null,null,null,null]`))

	require.NoError(t, err)
	require.Len(t, songs, models.SlotCount)
	for _, song := range songs {
		assert.Nil(t, song)
	}
	assert.Equal(t, 0, catalog.callCount(), "Empty slots need no catalog lookups")
}

func TestSongListValidator_ValidReference(t *testing.T) {
	validator, _ := newTestValidator(200)

	body := []byte(`[{"service":"spotify","type":"track","id":"validId"},null,null,null,null]`)
	songs, err := validator.Validate(context.Background(), body)

	require.NoError(t, err)
	require.Len(t, songs, models.SlotCount)
	assert.Equal(t, &models.SongRef{Service: "spotify", Type: "track", ID: "validId"}, songs[0])
	for _, song := range songs[1:] {
		assert.Nil(t, song)
	}
}

func TestSongListValidator_ExtraFieldsDropped(t *testing.T) {
	validator, _ := newTestValidator(200)

	body := []byte(`[{"service":"spotify","type":"album","id":"x","name":"ignored","uri":"spotify:album:x"},null,null,null,null]`)
	songs, err := validator.Validate(context.Background(), body)

	require.NoError(t, err)
	assert.Equal(t, &models.SongRef{Service: "spotify", Type: "album", ID: "x"}, songs[0])
}

func TestSongListValidator_NotFoundDowngradesSlot(t *testing.T) {
	catalog := &countingCatalog{}
	validator := NewSongListValidator(&scriptedCatalog{
		results: map[string]*EmbedInfo{
			"doesNotExist": {Status: 404},
			"validId":      {Status: 200},
		},
		fallback: catalog,
	})

	body := []byte(`[{"service":"spotify","type":"track","id":"doesNotExist"},{"service":"spotify","type":"track","id":"validId"},null,null,null]`)
	songs, err := validator.Validate(context.Background(), body)

	require.NoError(t, err)
	assert.Nil(t, songs[0], "Stale reference downgrades to an empty slot")
	assert.Equal(t, "validId", songs[1].ID, "Sibling valid slots persist unchanged")
}

func TestSongListValidator_MalformedBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not JSON", `not json`},
		{"not an array", `{"service":"spotify"}`},
		{"four elements", `[null,null,null,null]`},
		{"six elements", `[null,null,null,null,null,null]`},
		{"array element", `[[],null,null,null,null]`},
		{"scalar element", `["spotify",null,null,null,null]`},
		{"number element", `[42,null,null,null,null]`},
		{"wrong service", `[{"service":"tidal","type":"track","id":"x"},null,null,null,null]`},
		{"missing service", `[{"type":"track","id":"x"},null,null,null,null]`},
		{"wrong type", `[{"service":"spotify","type":"artist","id":"x"},null,null,null,null]`},
		{"numeric id", `[{"service":"spotify","type":"track","id":42},null,null,null,null]`},
		{"missing id", `[{"service":"spotify","type":"track"},null,null,null,null]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator, catalog := newTestValidator(200)

			_, err := validator.Validate(context.Background(), []byte(tt.body))

			assert.ErrorIs(t, err, ErrMalformedBody)
			assert.Equal(t, 0, catalog.callCount(), "Structural rejects must not reach the catalog")
		})
	}
}

func TestSongListValidator_StructuralCheckShortCircuits(t *testing.T) {
	validator, catalog := newTestValidator(200)

	// First slot is fine, second is malformed: the request dies there
	body := []byte(`[{"service":"spotify","type":"track","id":"ok"},{"service":"tidal","type":"track","id":"x"},{"service":"spotify","type":"track","id":"never"},null,null]`)
	_, err := validator.Validate(context.Background(), body)

	assert.ErrorIs(t, err, ErrMalformedBody)
	assert.Equal(t, 1, catalog.callCount(), "Slots after the violation are never looked up")
}

func TestSongListValidator_CatalogFailurePropagates(t *testing.T) {
	catalog := &countingCatalog{err: &CatalogError{Service: "spotify", Operation: "lookup", Message: "request failed"}}
	validator := NewSongListValidator(catalog)

	body := []byte(`[{"service":"spotify","type":"track","id":"x"},null,null,null,null]`)
	_, err := validator.Validate(context.Background(), body)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedBody, "An unavailable catalog is not the client's fault")
	var catalogErr *CatalogError
	assert.ErrorAs(t, err, &catalogErr)
}

// scriptedCatalog answers per-id, falling back to a countingCatalog
type scriptedCatalog struct {
	results  map[string]*EmbedInfo
	fallback *countingCatalog
}

func (s *scriptedCatalog) GetServiceName() string { return models.ServiceSpotify }

func (s *scriptedCatalog) Lookup(ctx context.Context, service, refType, id string) (*EmbedInfo, error) {
	if info, ok := s.results[id]; ok {
		return info, nil
	}
	return s.fallback.Lookup(ctx, service, refType, id)
}
