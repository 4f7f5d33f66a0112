// Package config loads the server configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Storage backend selectors.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// OIDC holds the optional SSO provider settings. SSO is enabled when all
// four fields are set.
type OIDC struct {
	Issuer       string `yaml:"issuer"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// Enabled reports whether the SSO settings are complete.
func (o OIDC) Enabled() bool {
	return o.Issuer != "" && o.ClientID != "" && o.ClientSecret != "" && o.RedirectURL != ""
}

// Config is the full server configuration.
type Config struct {
	Addr        string `yaml:"addr"`
	WebDir      string `yaml:"web_dir"`
	Storage     string `yaml:"storage"`
	DatabaseURL string `yaml:"database_url"`
	OIDC        OIDC   `yaml:"oidc"`
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:    ":8080",
		WebDir:  "web",
		Storage: StoragePostgres,
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database_url (or DATABASE_URL) is required for %s storage", StoragePostgres)
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	setEnv(&cfg.Addr, "ADDR")
	setEnv(&cfg.WebDir, "WEB_DIR")
	setEnv(&cfg.Storage, "STORAGE")
	setEnv(&cfg.DatabaseURL, "DATABASE_URL")
	setEnv(&cfg.OIDC.Issuer, "OIDC_ISSUER")
	setEnv(&cfg.OIDC.ClientID, "OIDC_CLIENT_ID")
	setEnv(&cfg.OIDC.ClientSecret, "OIDC_CLIENT_SECRET")
	setEnv(&cfg.OIDC.RedirectURL, "OIDC_REDIRECT_URL")
}

func setEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
