package storage

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docker/go-units"
)

// Backend names a blob storage implementation.
type Backend string

const (
	BackendFilesystem Backend = "filesystem"
	BackendS3         Backend = "s3"
)

// Config contains blob storage configuration.
type Config struct {
	Backend Backend `toml:"backend"`

	// BasePath is the root directory for filesystem storage.
	// Default: ".data/blobs"
	BasePath string `toml:"base_path"`

	// MaxUploadSize bounds a whole multipart request body.
	MaxUploadSize    string `toml:"max_upload_size"`
	maxUploadSizeVal int64

	S3 S3Config `toml:"s3"`
}

// S3Config addresses an S3 compatible bucket. Endpoint and UsePathStyle
// support MinIO, LocalStack, and Cloudflare R2.
type S3Config struct {
	Bucket       string `toml:"bucket"`
	Region       string `toml:"region"`
	Endpoint     string `toml:"endpoint"`
	AccessKey    string `toml:"access_key"`
	SecretKey    string `toml:"secret_key"`
	UsePathStyle bool   `toml:"use_path_style"`
}

// Env maps environment variable names for storage configuration.
type Env struct {
	Backend       string
	BasePath      string
	MaxUploadSize string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string
	S3PathStyle   string
}

func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}

	if size, err := units.FromHumanSize(overlay.MaxUploadSize); err == nil {
		c.MaxUploadSize = overlay.MaxUploadSize
		c.maxUploadSizeVal = size
	}

	if overlay.S3.Bucket != "" {
		c.S3.Bucket = overlay.S3.Bucket
	}
	if overlay.S3.Region != "" {
		c.S3.Region = overlay.S3.Region
	}
	if overlay.S3.Endpoint != "" {
		c.S3.Endpoint = overlay.S3.Endpoint
	}
	if overlay.S3.AccessKey != "" {
		c.S3.AccessKey = overlay.S3.AccessKey
	}
	if overlay.S3.SecretKey != "" {
		c.S3.SecretKey = overlay.S3.SecretKey
	}
	if overlay.S3.UsePathStyle {
		c.S3.UsePathStyle = true
	}
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFilesystem
	}
	if c.BasePath == "" {
		c.BasePath = ".data/blobs"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "25MB"
	}
	if c.S3.Region == "" {
		c.S3.Region = "us-east-1"
	}
}

func (c *Config) loadEnv(env *Env) {
	lookup := func(name string, target *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*target = v
		}
	}

	if env.Backend != "" {
		if v := os.Getenv(env.Backend); v != "" {
			c.Backend = Backend(v)
		}
	}
	lookup(env.BasePath, &c.BasePath)
	lookup(env.MaxUploadSize, &c.MaxUploadSize)
	lookup(env.S3Bucket, &c.S3.Bucket)
	lookup(env.S3Region, &c.S3.Region)
	lookup(env.S3Endpoint, &c.S3.Endpoint)
	lookup(env.S3AccessKey, &c.S3.AccessKey)
	lookup(env.S3SecretKey, &c.S3.SecretKey)

	if env.S3PathStyle != "" {
		if v := os.Getenv(env.S3PathStyle); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.S3.UsePathStyle = b
			}
		}
	}
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendFilesystem:
		if c.BasePath == "" {
			return fmt.Errorf("base_path required")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket required")
		}
	default:
		return fmt.Errorf("invalid backend: %s (must be filesystem or s3)", c.Backend)
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	return nil
}
