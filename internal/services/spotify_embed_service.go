package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"songsync/internal/models"
)

const spotifyEmbedURL = "https://open.spotify.com/embed"

// Markers delimiting the hydration payload inside the embed markup.
const (
	embedPayloadStart = `{"props"`
	embedPayloadEnd   = `</script>`
)

// spotifyEmbedService implements CatalogService against Spotify's public
// embed pages. The embed page is not a real API: the payload is a JSON blob
// embedded in a script tag, and its status field tells whether the
// referenced entity exists.
type spotifyEmbedService struct {
	client  *resty.Client
	baseURL string
}

// NewSpotifyEmbedService creates a catalog service backed by the Spotify
// embed endpoint. No retries: a failed scrape is an error, not masked.
func NewSpotifyEmbedService() CatalogService {
	return newSpotifyEmbedService(spotifyEmbedURL)
}

func newSpotifyEmbedService(baseURL string) CatalogService {
	client := resty.New().
		SetTimeout(10 * time.Second)

	return &spotifyEmbedService{
		client:  client,
		baseURL: baseURL,
	}
}

// GetServiceName returns the catalog service name
func (s *spotifyEmbedService) GetServiceName() string {
	return models.ServiceSpotify
}

// Lookup fetches the embed page for one reference and extracts the status
// field from the embedded payload.
func (s *spotifyEmbedService) Lookup(ctx context.Context, service, refType, id string) (*EmbedInfo, error) {
	if service != models.ServiceSpotify {
		return nil, &CatalogError{
			Service:   service,
			Operation: "lookup",
			Message:   "unsupported catalog service",
		}
	}

	resp, err := s.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/%s/%s", s.baseURL, refType, id))
	if err != nil {
		return nil, &CatalogError{
			Service:   service,
			Operation: "lookup",
			Message:   "request failed",
			Err:       err,
		}
	}

	// The embed page answers 200 for unknown ids too; existence is reported
	// inside the payload. A non-2xx here means the scrape itself broke.
	if resp.StatusCode() != http.StatusOK {
		return nil, &CatalogError{
			Service:   service,
			Operation: "lookup",
			Message:   fmt.Sprintf("embed endpoint returned status %d", resp.StatusCode()),
		}
	}

	info, err := parseEmbedPayload(resp.String())
	if err != nil {
		slog.Warn("Failed to parse embed payload", "service", service, "type", refType, "id", id, "error", err)
		return nil, &CatalogError{
			Service:   service,
			Operation: "parse",
			Message:   "malformed embed payload",
			Err:       err,
		}
	}

	return info, nil
}

// parseEmbedPayload cuts the hydration JSON out of the embed markup and
// extracts the page status.
func parseEmbedPayload(markup string) (*EmbedInfo, error) {
	_, after, found := strings.Cut(markup, embedPayloadStart)
	if !found {
		return nil, fmt.Errorf("payload start marker not found")
	}

	fragment, _, found := strings.Cut(after, embedPayloadEnd)
	if !found {
		return nil, fmt.Errorf("payload end marker not found")
	}

	raw := embedPayloadStart + fragment

	var payload struct {
		Props struct {
			PageProps struct {
				Status int `json:"status"`
			} `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("invalid payload JSON: %w", err)
	}

	var rawMap map[string]any
	if err := json.Unmarshal([]byte(raw), &rawMap); err != nil {
		return nil, fmt.Errorf("invalid payload JSON: %w", err)
	}

	return &EmbedInfo{
		Status: payload.Props.PageProps.Status,
		Raw:    rawMap,
	}, nil
}
