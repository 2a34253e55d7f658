package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Addr != ":8080" {
		t.Fatalf("addr = %q", c.Server.Addr)
	}
	if c.Storage.Driver != "memory" {
		t.Fatalf("driver = %q", c.Storage.Driver)
	}
	if c.JWT.KeySize != 2048 {
		t.Fatalf("key_size = %d", c.JWT.KeySize)
	}
	if c.KeyValidityDuration() != time.Hour {
		t.Fatalf("validity = %v", c.KeyValidityDuration())
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  addr: ":9090"
jwt:
  issuer: "http://issuer.example"
  key_validity: "30m"
storage:
  driver: sqlite
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("KEY_SIZE", "1024")
	t.Setenv("STORAGE_DRIVER", "memory")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Addr != ":9090" {
		t.Fatalf("addr = %q", c.Server.Addr)
	}
	if c.JWT.Issuer != "http://issuer.example" {
		t.Fatalf("issuer = %q", c.JWT.Issuer)
	}
	if c.KeyValidityDuration() != 30*time.Minute {
		t.Fatalf("validity = %v", c.KeyValidityDuration())
	}
	// env gana sobre YAML
	if c.JWT.KeySize != 1024 {
		t.Fatalf("key_size = %d", c.JWT.KeySize)
	}
	if c.Storage.Driver != "memory" {
		t.Fatalf("driver = %q, env debería pisar YAML", c.Storage.Driver)
	}
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("un archivo inexistente no debería ser error: %v", err)
	}
	if c.Server.Addr != ":8080" {
		t.Fatalf("addr = %q", c.Server.Addr)
	}
}
