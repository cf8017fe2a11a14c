// Package fsx abstracts blob storage behind a small filesystem-like API so
// services stay independent of the backing store.
package fsx

import (
	"context"
	"io"
)

// FileReader is the read-only subset used by consumers that never write.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileSystem is the full storage contract.
type FileSystem interface {
	FileReader

	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, reader io.Reader) error
	DeleteFile(ctx context.Context, path string) error

	// Join builds a storage path from components using the backend's
	// separator conventions.
	Join(parts ...string) string
}
