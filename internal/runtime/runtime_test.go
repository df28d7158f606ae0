package runtime

import (
	"context"
	"testing"

	cfgpkg "github.com/tailscope/tailscope/internal/config"
)

func TestOpenAndHealth(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.LogDir = t.TempDir()
	rt, err := Open(Options{Config: cfg})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.ChunkSize = -1
	if _, err := Open(Options{Config: cfg}); err == nil {
		t.Fatalf("invalid config should fail")
	}
}

func TestHealthMissingDir(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.LogDir = t.TempDir() + "/gone"
	rt, err := Open(Options{Config: cfg})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := rt.CheckHealth(context.Background()); err == nil {
		t.Fatalf("missing dir should be unhealthy")
	}
}
