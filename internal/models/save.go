package models

import "regexp"

// SlotCount is the fixed number of song slots in every save.
const SlotCount = 5

// ServiceSpotify is the only catalog service currently supported.
const ServiceSpotify = "spotify"

// Valid reference types within a catalog service.
const (
	TypeTrack    = "track"
	TypeAlbum    = "album"
	TypePlaylist = "playlist"
)

// SongRef references one track, album or playlist in an external catalog.
// A SongRef is only persisted after it passed an existence check against the
// catalog at write time; it may go stale if removed upstream later.
type SongRef struct {
	Service string `json:"service" bson:"service"`
	Type    string `json:"type" bson:"type"`
	ID      string `json:"id" bson:"id"`
}

// Save is one user's persisted state: a Discord user id and exactly SlotCount
// song slots. A nil slot is empty and serializes as JSON null.
type Save struct {
	User  string     `json:"user" bson:"user"`
	Songs []*SongRef `json:"songs" bson:"songs"`
}

// NewEmptySave returns the default save for a user with no stored row.
func NewEmptySave(userID string) *Save {
	return &Save{
		User:  userID,
		Songs: make([]*SongRef, SlotCount),
	}
}

// IsEmpty reports whether every slot of the save is unpopulated.
func (s *Save) IsEmpty() bool {
	for _, song := range s.Songs {
		if song != nil {
			return false
		}
	}
	return true
}

// ValidType reports whether t is a supported reference type.
func ValidType(t string) bool {
	return t == TypeTrack || t == TypeAlbum || t == TypePlaylist
}

var snowflakePattern = regexp.MustCompile(`^\d{17,20}$`)

// IsSnowflake reports whether id looks like a Discord snowflake.
func IsSnowflake(id string) bool {
	return snowflakePattern.MatchString(id)
}
