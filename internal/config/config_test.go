package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ChunkSize != 8192 {
		t.Fatalf("chunk size default")
	}
	if cfg.MaxFileSize != 4<<30 {
		t.Fatalf("max file size default")
	}
	if cfg.DefaultEntries != 100 || cfg.MaxEntries != 10000 {
		t.Fatalf("entry defaults")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tailscope.json")
	data := []byte(`{"logDir":"/srv/logs","httpAddr":":9000","chunkSize":4096,"maxEntries":500}`)
	if err := os.WriteFile(file, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogDir != "/srv/logs" {
		t.Fatalf("expected /srv/logs")
	}
	if cfg.HTTPAddr != ":9000" {
		t.Fatalf("expected :9000")
	}
	if cfg.ChunkSize != 4096 {
		t.Fatalf("expected 4096")
	}
	// Unset keys keep defaults.
	if cfg.DefaultEntries != 100 {
		t.Fatalf("default entries should survive partial config")
	}
	if cfg.MaxEntries != 500 {
		t.Fatalf("expected 500")
	}
}

func TestLoadBadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(file, []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(file); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	t.Setenv("TAILSCOPE_LOG_DIR", "/tmp/logs")
	t.Setenv("TAILSCOPE_CHUNK_SIZE", "1024")
	t.Setenv("TAILSCOPE_MAX_ENTRIES", "250")
	FromEnv(&cfg)
	if cfg.LogDir != "/tmp/logs" {
		t.Fatalf("env override log dir")
	}
	if cfg.ChunkSize != 1024 {
		t.Fatalf("env override chunk size")
	}
	if cfg.MaxEntries != 250 {
		t.Fatalf("env override max entries")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.ChunkSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("zero chunk size should fail")
	}
	cfg = Default()
	cfg.DefaultEntries = 500
	cfg.MaxEntries = 100
	if err := cfg.Validate(); err == nil {
		t.Fatalf("default > max should fail")
	}
}
