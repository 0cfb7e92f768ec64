package services

import "context"

// EmbedInfo is the narrow slice of a catalog embed payload the validator
// consumes: the status reported for the referenced entity. The rest of the
// payload is kept raw so a cached entry round-trips unchanged.
type EmbedInfo struct {
	Status int            `json:"status"`
	Raw    map[string]any `json:"raw,omitempty"`
}

// NotFound reports whether the catalog said the referenced entity does not
// exist. This is a successful lookup, not an error.
func (i *EmbedInfo) NotFound() bool {
	return i.Status == 404
}

// CatalogService fetches metadata for one external song/album/playlist
// reference. A failed fetch or an unparseable payload is a CatalogError,
// never a "does not exist" answer.
type CatalogService interface {
	GetServiceName() string
	Lookup(ctx context.Context, service, refType, id string) (*EmbedInfo, error)
}

// CatalogError represents a failed catalog lookup (network or parse).
type CatalogError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

func (e *CatalogError) Error() string {
	msg := e.Service + " catalog " + e.Operation + ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}
