package storage

import (
	"context"
	"io"
	"time"
)

// Storage is the narrow contract the upload endpoint needs from a media
// store: accept a byte stream, hand back a durable URL later.
type Storage interface {
	// Write stores content from the reader with the given key.
	// The size parameter is the expected content size (-1 if unknown).
	Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Read retrieves content for the given key. The caller is responsible
	// for closing the returned ReadCloser.
	Read(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the content with the given key.
	Delete(ctx context.Context, key string) error

	// GetURL returns a URL for accessing the content.
	// For local storage this is a path, for S3 a public or presigned URL
	// valid for the specified duration.
	GetURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
