package testutil

import "fmt"

// Shared test identifiers
const (
	TestUserID  = "190160914765316096"
	TestTrackID = "4cOdK2wGLETKBW3PvgPWqT"
	TestAlbumID = "6dVIqQ8qmQ5GBnJ9shOYGE"
	TestBearer  = "test-access-token"
)

// EmbedMarkup builds a minimal Spotify embed page whose hydration payload
// reports the given status.
func EmbedMarkup(status int) string {
	return fmt.Sprintf(
		`<html><body><script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{"status":%d}}}</script></body></html>`,
		status,
	)
}

// BrokenEmbedMarkup builds embed markup with no parseable payload.
func BrokenEmbedMarkup() string {
	return `<html><body><p>maintenance</p></body></html>`
}

// SongRefJSON builds the wire form of one submitted slot.
func SongRefJSON(service, refType, id string) map[string]interface{} {
	return map[string]interface{}{
		"service": service,
		"type":    refType,
		"id":      id,
	}
}
