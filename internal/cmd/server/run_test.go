package serverrun

import (
	"context"
	"testing"
	"time"

	cfgpkg "github.com/tailscope/tailscope/internal/config"
)

func TestGetenvDefault(t *testing.T) {
	t.Setenv("TAILSCOPE_TEST_VAR", "from-env")
	if got := getenvDefault("TAILSCOPE_TEST_VAR", "fallback"); got != "from-env" {
		t.Fatalf("set variable: got %q", got)
	}
	if got := getenvDefault("TAILSCOPE_TEST_VAR_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("unset variable: got %q", got)
	}
}

func TestRunOptionOverrides(t *testing.T) {
	opts := Options{LogDir: "/custom/logs", HTTPAddr: ":9999", Config: cfgpkg.Default()}
	if opts.LogDir != "" {
		opts.Config.LogDir = opts.LogDir
	}
	if opts.HTTPAddr != "" {
		opts.Config.HTTPAddr = opts.HTTPAddr
	}
	if opts.Config.LogDir != "/custom/logs" || opts.Config.HTTPAddr != ":9999" {
		t.Fatalf("overrides not applied: %+v", opts.Config)
	}
}

// TestRunIntegration starts a real server on an ephemeral port and lets
// the context deadline shut it down.
func TestRunIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	cfg := cfgpkg.Default()
	cfg.LogDir = t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := Run(ctx, Options{HTTPAddr: ":0", Config: cfg}); err != nil {
		t.Fatalf("run: %v", err)
	}
}
