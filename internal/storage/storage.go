package storage

import (
	"context"
	"io"
)

// Storage defines the file storage operations the upload flow needs
type Storage interface {
	// Save stores a file at the given path
	Save(ctx context.Context, path string, reader io.Reader) error

	// Get retrieves a file from the given path
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file at the given path
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists at the given path
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns a public URL for the file
	GetURL(path string) string
}

// Config holds storage configuration
type Config struct {
	BasePath string // filesystem root for stored files
	BaseURL  string // public URL base
}

// NewStorage creates a storage instance
func NewStorage(cfg Config) (Storage, error) {
	return NewLocalStorage(cfg)
}
