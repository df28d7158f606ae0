package runtime

import (
	"context"
	"fmt"
	"os"

	cfgpkg "github.com/tailscope/tailscope/internal/config"
	"github.com/tailscope/tailscope/internal/logfs"
	"github.com/tailscope/tailscope/internal/tail"
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
}

// Runtime wires the log directory, the tail engine, and configuration for a
// single-node instance.
type Runtime struct {
	config cfgpkg.Config
	dir    logfs.Dir
	reader *tail.Reader
}

// Open validates the configuration and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	return &Runtime{
		config: opts.Config,
		dir:    logfs.New(opts.Config.LogDir),
		reader: tail.NewReader(tail.Options{
			ChunkSize:          opts.Config.ChunkSize,
			MaxFileSize:        opts.Config.MaxFileSize,
			SmallFileThreshold: opts.Config.SmallFileThreshold,
		}),
	}, nil
}

// Close releases runtime resources. The runtime holds no persistent
// handles; it exists for lifecycle symmetry with Open.
func (r *Runtime) Close() error { return nil }

// CheckHealth verifies the log directory is reachable.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	info, err := os.Stat(r.dir.Base())
	if err != nil {
		return fmt.Errorf("log directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("log directory %s is not a directory", r.dir.Base())
	}
	return nil
}

// Dir returns the log directory root.
func (r *Runtime) Dir() logfs.Dir { return r.dir }

// Reader returns the configured tail engine.
func (r *Runtime) Reader() *tail.Reader { return r.reader }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
