// Package storage provides blob storage abstractions.
// It defines a System interface for storage operations with a filesystem
// implementation for single-node deployments and an S3 implementation for
// object stores.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/JaimeStill/portfolio-api/pkg/lifecycle"
)

// System defines the storage operations interface for blob storage.
type System interface {
	// Store writes the stream at key. Parent directories are created as needed.
	// Returns ErrExists if the key already holds data; content is never overwritten.
	// Returns ErrInvalidKey if the key is empty or contains path traversal.
	// Seekable streams are written from their current offset.
	Store(ctx context.Context, key string, r io.Reader) error

	// Open returns a reader over the data stored at key.
	// Returns ErrNotFound if the key does not exist.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the data at key.
	// Returns nil if the key does not exist (idempotent).
	Delete(ctx context.Context, key string) error

	// Validate checks if a key exists and is accessible.
	// Returns (false, nil) if the key does not exist.
	Validate(ctx context.Context, key string) (bool, error)

	// List returns every object stored under prefix.
	List(ctx context.Context, prefix string) ([]Object, error)

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

// Object describes a stored blob.
type Object struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// New creates the storage System selected by cfg.Backend.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendS3:
		return NewS3(context.Background(), &cfg.S3, logger)
	case BackendFilesystem, "":
		return NewFilesystem(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
