package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("server.address = %q", cfg.Server.Address)
	}
	if cfg.Catalog.URL != "assets/yoga-poses.json" {
		t.Errorf("catalog.url = %q", cfg.Catalog.URL)
	}
	if cfg.Catalog.Timeout != 10*time.Second {
		t.Errorf("catalog.timeout = %v", cfg.Catalog.Timeout)
	}
	if cfg.Store.Driver != "file" || cfg.Store.Path != "yoga-sessions.json" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Database.URI != "mongodb://localhost:27017" || cfg.Database.Name != "yoga_app" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.JWT.Expiration != 24*time.Hour {
		t.Errorf("jwt.expiration = %v", cfg.JWT.Expiration)
	}
	if cfg.Auth.PasswordHash != "" || cfg.JWT.Secret != "" {
		t.Errorf("auth should be disabled by default: %+v %+v", cfg.Auth, cfg.JWT)
	}
	if cfg.S3.Region != "us-east-1" {
		t.Errorf("s3.region = %q", cfg.S3.Region)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
catalog:
  url: "https://cdn.example.com/poses.json"
  timeout: 3s
store:
  driver: "mongo"
database:
  uri: "mongodb://db.internal:27017"
  name: "yoga_prod"
jwt:
  secret: "topsecret"
  expiration: 1h
auth:
  password_hash: "$2a$10$abcdefghijklmnopqrstuv"
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Address != ":9090" {
		t.Errorf("server.address = %q", cfg.Server.Address)
	}
	if cfg.Catalog.URL != "https://cdn.example.com/poses.json" {
		t.Errorf("catalog.url = %q", cfg.Catalog.URL)
	}
	if cfg.Catalog.Timeout != 3*time.Second {
		t.Errorf("catalog.timeout = %v", cfg.Catalog.Timeout)
	}
	if cfg.Store.Driver != "mongo" {
		t.Errorf("store.driver = %q", cfg.Store.Driver)
	}
	// Unset keys keep their defaults.
	if cfg.Store.Path != "yoga-sessions.json" {
		t.Errorf("store.path = %q, want default", cfg.Store.Path)
	}
	if cfg.Database.Name != "yoga_prod" {
		t.Errorf("database.name = %q", cfg.Database.Name)
	}
	if cfg.JWT.Secret != "topsecret" || cfg.JWT.Expiration != time.Hour {
		t.Errorf("jwt = %+v", cfg.JWT)
	}
	if cfg.Auth.PasswordHash == "" {
		t.Errorf("auth.password_hash not loaded")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":7070")
	t.Setenv("STORE_DRIVER", "mongo")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":7070" {
		t.Errorf("server.address = %q, want env override", cfg.Server.Address)
	}
	if cfg.Store.Driver != "mongo" {
		t.Errorf("store.driver = %q, want env override", cfg.Store.Driver)
	}
}
