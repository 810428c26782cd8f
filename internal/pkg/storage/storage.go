package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

type FileStorage interface {
	// Upload stores the content under path and returns the cleaned key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete is a no-op when the file is already gone.
	Delete(ctx context.Context, path string) error

	// URL returns the public address the API serves path from.
	URL(path string) string

	Exists(ctx context.Context, path string) (bool, error)
}
