package config

import (
	"fmt"
	"os"
	"time"

	"github.com/docker/go-units"

	"github.com/JaimeStill/portfolio-api/pkg/storage"
)

var storageEnv = &storage.Env{
	Backend:       "STORAGE_BACKEND",
	BasePath:      "STORAGE_BASE_PATH",
	MaxUploadSize: "STORAGE_MAX_UPLOAD_SIZE",
	S3Bucket:      "STORAGE_S3_BUCKET",
	S3Region:      "STORAGE_S3_REGION",
	S3Endpoint:    "STORAGE_S3_ENDPOINT",
	S3AccessKey:   "STORAGE_S3_ACCESS_KEY",
	S3SecretKey:   "STORAGE_S3_SECRET_KEY",
	S3PathStyle:   "STORAGE_S3_PATH_STYLE",
}

const (
	EnvDocumentsMaxSize     = "DOCUMENTS_MAX_SIZE"
	EnvDocumentsOrphanGrace = "DOCUMENTS_ORPHAN_GRACE"
)

// DocumentsConfig bounds individual uploaded documents. The limit is
// expressed in binary units ("10MiB").
type DocumentsConfig struct {
	MaxSize    string `toml:"max_size"`
	maxSizeVal int64

	// OrphanGrace is how old an unreferenced file must be before the orphan
	// sweep treats it as abandoned rather than an upload in flight.
	OrphanGrace string `toml:"orphan_grace"`
}

func (c *DocumentsConfig) OrphanGraceDuration() time.Duration {
	d, _ := time.ParseDuration(c.OrphanGrace)
	return d
}

// MaxSizeBytes returns the parsed per-document limit.
func (c *DocumentsConfig) MaxSizeBytes() int64 {
	return c.maxSizeVal
}

func (c *DocumentsConfig) Finalize() error {
	if c.MaxSize == "" {
		c.MaxSize = "10MiB"
	}
	if c.OrphanGrace == "" {
		c.OrphanGrace = "1h"
	}
	if v := os.Getenv(EnvDocumentsMaxSize); v != "" {
		c.MaxSize = v
	}
	if v := os.Getenv(EnvDocumentsOrphanGrace); v != "" {
		c.OrphanGrace = v
	}

	grace, err := time.ParseDuration(c.OrphanGrace)
	if err != nil {
		return fmt.Errorf("invalid orphan_grace: %w", err)
	}
	if grace < 0 {
		return fmt.Errorf("orphan_grace must not be negative")
	}

	size, err := units.RAMInBytes(c.MaxSize)
	if err != nil {
		return fmt.Errorf("invalid max_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_size must be positive")
	}
	c.maxSizeVal = size
	return nil
}

func (c *DocumentsConfig) Merge(overlay *DocumentsConfig) {
	if overlay.MaxSize != "" {
		c.MaxSize = overlay.MaxSize
	}
	if overlay.OrphanGrace != "" {
		c.OrphanGrace = overlay.OrphanGrace
	}
}
