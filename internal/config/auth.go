package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvAuthTokenTTL          = "AUTH_TOKEN_TTL"
	EnvAuthBootstrapName     = "AUTH_BOOTSTRAP_NAME"
	EnvAuthBootstrapEmail    = "AUTH_BOOTSTRAP_EMAIL"
	EnvAuthBootstrapPassword = "AUTH_BOOTSTRAP_PASSWORD"
)

// AuthConfig configures bearer token issuance and the optional bootstrap admin
// ensured at startup.
type AuthConfig struct {
	TokenTTL          string `toml:"token_ttl"`
	BootstrapName     string `toml:"bootstrap_name"`
	BootstrapEmail    string `toml:"bootstrap_email"`
	BootstrapPassword string `toml:"bootstrap_password"`
}

func (c *AuthConfig) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

// Bootstrap reports whether a bootstrap admin is configured.
func (c *AuthConfig) Bootstrap() bool {
	return c.BootstrapEmail != "" && c.BootstrapPassword != ""
}

func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
	if overlay.BootstrapName != "" {
		c.BootstrapName = overlay.BootstrapName
	}
	if overlay.BootstrapEmail != "" {
		c.BootstrapEmail = overlay.BootstrapEmail
	}
	if overlay.BootstrapPassword != "" {
		c.BootstrapPassword = overlay.BootstrapPassword
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.TokenTTL == "" {
		c.TokenTTL = "24h"
	}
	if c.BootstrapName == "" {
		c.BootstrapName = "Admin"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthTokenTTL); v != "" {
		c.TokenTTL = v
	}
	if v := os.Getenv(EnvAuthBootstrapName); v != "" {
		c.BootstrapName = v
	}
	if v := os.Getenv(EnvAuthBootstrapEmail); v != "" {
		c.BootstrapEmail = v
	}
	if v := os.Getenv(EnvAuthBootstrapPassword); v != "" {
		c.BootstrapPassword = v
	}
}

func (c *AuthConfig) validate() error {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return fmt.Errorf("invalid token_ttl: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}
	if (c.BootstrapEmail == "") != (c.BootstrapPassword == "") {
		return fmt.Errorf("bootstrap_email and bootstrap_password must be set together")
	}
	return nil
}
