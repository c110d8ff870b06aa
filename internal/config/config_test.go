package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/portfolio-api/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

const baseConfig = `
shutdown_timeout = "30s"

[server]
port = 8080

[database]
name = "portfolio"
user = "portfolio"

[api.cors]
enabled = true
origins = ["http://localhost:3000"]
`

func TestLoad_RepositoryConfig(t *testing.T) {
	t.Setenv(config.EnvServiceEnv, "")
	t.Chdir("../..")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
}

func TestLoad_WithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, baseConfig)
	writeFile(t, dir, "config.test.toml", `
shutdown_timeout = "60s"

[server]
port = 9090

[storage]
backend = "s3"

[storage.s3]
bucket = "portfolio-docs"
`)

	t.Setenv(config.EnvServiceEnv, "test")
	t.Chdir(dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.ShutdownTimeoutDuration() != time.Minute {
		t.Errorf("ShutdownTimeout = %q, want 60s", cfg.ShutdownTimeout)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.S3.Bucket != "portfolio-docs" {
		t.Errorf("Storage.S3.Bucket = %q", cfg.Storage.S3.Bucket)
	}
	if len(cfg.API.CORS.Origins) != 1 {
		t.Errorf("CORS.Origins = %v, want base value kept", cfg.API.CORS.Origins)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, baseConfig)
	writeFile(t, dir, config.DotEnvFile, "SERVER_PORT=7070\nAUTH_BOOTSTRAP_EMAIL=admin@example.com\nAUTH_BOOTSTRAP_PASSWORD=secret\n")

	t.Setenv(config.EnvServiceEnv, "")
	t.Setenv(config.EnvServerPort, "")
	t.Setenv(config.EnvAuthBootstrapEmail, "")
	t.Setenv(config.EnvAuthBootstrapPassword, "")
	os.Unsetenv(config.EnvServerPort)
	os.Unsetenv(config.EnvAuthBootstrapEmail)
	os.Unsetenv(config.EnvAuthBootstrapPassword)
	t.Chdir(dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070 from .env", cfg.Server.Port)
	}
	if !cfg.Auth.Bootstrap() {
		t.Error("Auth.Bootstrap() = false, want true from .env")
	}
}

func TestLoad_MissingBaseFile(t *testing.T) {
	t.Setenv(config.EnvServiceEnv, "")
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
}

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Name = "portfolio"
	cfg.Database.User = "portfolio"

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.API.BasePath != "/api" {
		t.Errorf("API.BasePath = %q", cfg.API.BasePath)
	}
	if cfg.Documents.MaxSizeBytes() != 10*1024*1024 {
		t.Errorf("Documents.MaxSizeBytes() = %d, want %d", cfg.Documents.MaxSizeBytes(), 10*1024*1024)
	}
	if cfg.Documents.OrphanGraceDuration() != time.Hour {
		t.Errorf("Documents.OrphanGrace = %q, want 1h", cfg.Documents.OrphanGrace)
	}
	if cfg.Auth.TokenTTLDuration() != 24*time.Hour {
		t.Errorf("Auth.TokenTTL = %q", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.Bootstrap() {
		t.Error("Auth.Bootstrap() = true without credentials")
	}
	if cfg.API.OpenAPI.Title != "Portfolio API" {
		t.Errorf("OpenAPI.Title = %q", cfg.API.OpenAPI.Title)
	}
}

func TestConfig_Finalize_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"shutdown timeout", func(c *config.Config) { c.ShutdownTimeout = "later" }},
		{"server port", func(c *config.Config) { c.Server.Port = 70000 }},
		{"base path", func(c *config.Config) { c.API.BasePath = "/api/v1" }},
		{"document size", func(c *config.Config) { c.Documents.MaxSize = "huge" }},
		{"orphan grace", func(c *config.Config) { c.Documents.OrphanGrace = "-5m" }},
		{"token ttl", func(c *config.Config) { c.Auth.TokenTTL = "-1h" }},
		{"half bootstrap", func(c *config.Config) { c.Auth.BootstrapEmail = "admin@example.com" }},
		{"missing database name", func(c *config.Config) { c.Database.Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Database.Name = "portfolio"
			cfg.Database.User = "portfolio"
			tt.mutate(cfg)

			if err := cfg.Finalize(); err == nil {
				t.Error("Finalize() succeeded, want error")
			}
		})
	}
}

func TestServerConfig(t *testing.T) {
	base := &config.ServerConfig{Host: "localhost", Port: 8080, ReadTimeout: "30s"}
	base.Merge(&config.ServerConfig{Port: 9090, WriteTimeout: "90s"})

	if base.Addr() != "localhost:9090" {
		t.Errorf("Addr() = %q", base.Addr())
	}
	if base.ReadTimeoutDuration() != 30*time.Second {
		t.Errorf("ReadTimeout = %q", base.ReadTimeout)
	}
	if base.WriteTimeoutDuration() != 90*time.Second {
		t.Errorf("WriteTimeout = %q", base.WriteTimeout)
	}
}
