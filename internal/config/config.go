package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// LogDir is the base directory served by the log API.
	LogDir string `json:"logDir"`
	// HTTPAddr is the HTTP listen address.
	HTTPAddr string `json:"httpAddr"`
	// ChunkSize is the number of bytes per backward read.
	ChunkSize int `json:"chunkSize"`
	// MaxFileSize rejects files larger than this.
	MaxFileSize int64 `json:"maxFileSize"`
	// SmallFileThreshold is the whole-file fast-path cutoff. Zero derives
	// ChunkSize*10.
	SmallFileThreshold int64 `json:"smallFileThreshold"`
	// DefaultEntries is the entry count used when a request omits n.
	DefaultEntries int `json:"defaultEntries"`
	// MaxEntries caps the entry count a single request may ask for.
	MaxEntries int `json:"maxEntries"`
	// AggregateTimeoutMs bounds each per-server request during fan-out.
	AggregateTimeoutMs int `json:"aggregateTimeoutMs"`
	// ProbeTimeoutMs bounds health probes of secondary servers.
	ProbeTimeoutMs int `json:"probeTimeoutMs"`
	// SearchFilesPerServer caps how many files fleet-wide search inspects
	// per server.
	SearchFilesPerServer int `json:"searchFilesPerServer"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		LogDir:               DefaultLogDir(),
		HTTPAddr:             ":8080",
		ChunkSize:            8192,
		MaxFileSize:          4 << 30,
		DefaultEntries:       100,
		MaxEntries:           10000,
		AggregateTimeoutMs:   30000,
		ProbeTimeoutMs:       5000,
		SearchFilesPerServer: 5,
	}
}

// Load reads configuration from a JSON file. If path is empty, returns
// defaults. Env overlays are applied separately via FromEnv.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	if c.LogDir == "" {
		return fmt.Errorf("logDir must be set")
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("chunkSize must be >= 1, got %d", c.ChunkSize)
	}
	if c.MaxFileSize < 1 {
		return fmt.Errorf("maxFileSize must be >= 1, got %d", c.MaxFileSize)
	}
	if c.DefaultEntries < 1 || c.MaxEntries < 1 || c.DefaultEntries > c.MaxEntries {
		return fmt.Errorf("entry bounds invalid: default %d, max %d", c.DefaultEntries, c.MaxEntries)
	}
	return nil
}
