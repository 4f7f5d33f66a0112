package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"weighttracker/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/wt")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.WebDir != "web" || cfg.Storage != config.StoragePostgres {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, `
addr: ":9000"
storage: memory
oidc:
  issuer: https://accounts.google.com
  client_id: id
  client_secret: secret
  redirect_url: https://example.com/api/auth/sso/callback
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.Storage != config.StorageMemory {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.OIDC.Enabled() {
		t.Error("expected OIDC to be enabled")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "addr: \":9000\"\nstorage: memory\n")
	t.Setenv("ADDR", ":7070")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("addr = %q; want env override :7070", cfg.Addr)
	}
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := config.Load(""); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoad_UnknownStorage(t *testing.T) {
	path := writeConfig(t, "storage: cassandra\n")
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown storage")
	}
}

func TestOIDC_EnabledNeedsAllFields(t *testing.T) {
	o := config.OIDC{Issuer: "https://accounts.google.com", ClientID: "id"}
	if o.Enabled() {
		t.Error("partial OIDC config must not be enabled")
	}
}
