package storage

import "errors"

// ErrNotFound is returned when a handle is unknown or its entry expired.
var ErrNotFound = errors.New("media not found")

// StoredBlob is one committed media item as handed back to callers.
type StoredBlob struct {
	Handle      string
	Filename    string
	ContentType string
	Data        []byte
}

// Store commits fetched media bytes and serves them back by handle. The store
// owns handle lifecycle, including expiry; the pipeline only ever keeps
// handles, never the bytes.
type Store interface {
	// Put commits data and returns an opaque handle. Every call yields an
	// independent handle, even for identical bytes.
	Put(data []byte, contentType, filename string) (string, error)

	// Get resolves a handle. Returns ErrNotFound for unknown or expired
	// handles.
	Get(handle string) (*StoredBlob, error)

	// Close releases any background resources.
	Close()
}
