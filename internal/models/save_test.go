package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmptySave(t *testing.T) {
	save := NewEmptySave("190160914765316096")

	assert.Equal(t, "190160914765316096", save.User)
	require.Len(t, save.Songs, SlotCount)
	for _, song := range save.Songs {
		assert.Nil(t, song)
	}
	assert.True(t, save.IsEmpty())
}

func TestSave_IsEmpty(t *testing.T) {
	save := NewEmptySave("190160914765316096")
	save.Songs[2] = &SongRef{Service: ServiceSpotify, Type: TypeTrack, ID: "abc"}

	assert.False(t, save.IsEmpty())
}

func TestSave_JSONEmptySlots(t *testing.T) {
	save := NewEmptySave("190160914765316096")
	save.Songs[0] = &SongRef{Service: ServiceSpotify, Type: TypeAlbum, ID: "xyz"}

	data, err := json.Marshal(save)
	require.NoError(t, err)

	// Empty slots serialize as JSON null, populated ones as objects
	assert.JSONEq(t, `{
		"user": "190160914765316096",
		"songs": [{"service":"spotify","type":"album","id":"xyz"}, null, null, null, null]
	}`, string(data))
}

func TestValidType(t *testing.T) {
	assert.True(t, ValidType(TypeTrack))
	assert.True(t, ValidType(TypeAlbum))
	assert.True(t, ValidType(TypePlaylist))
	assert.False(t, ValidType("artist"))
	assert.False(t, ValidType(""))
}

func TestIsSnowflake(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"17 digits", "12345678901234567", true},
		{"20 digits", "12345678901234567890", true},
		{"too short", "1234567890123456", false},
		{"too long", "123456789012345678901", false},
		{"non-numeric", "12345678901234567a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsSnowflake(tt.id))
		})
	}
}
