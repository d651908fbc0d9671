package storage

import (
	"context"
	"io"
)

// FileStorage is the blob store behind the report archive.
type FileStorage interface {
	// Upload writes a file and returns the stored path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)

	// List returns the stored keys under a prefix, sorted ascending
	List(ctx context.Context, prefix string) ([]string, error)
}
