package config

import (
	"os"
	"strconv"
)

// FromEnv overlays TAILSCOPE_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("TAILSCOPE_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("TAILSCOPE_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("TAILSCOPE_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ChunkSize = n
		}
	}
	if v := os.Getenv("TAILSCOPE_MAX_FILE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxFileSize = n
		}
	}
	if v := os.Getenv("TAILSCOPE_SMALL_FILE_THRESHOLD"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.SmallFileThreshold = n
		}
	}
	if v := os.Getenv("TAILSCOPE_DEFAULT_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultEntries = n
		}
	}
	if v := os.Getenv("TAILSCOPE_MAX_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxEntries = n
		}
	}
	if v := os.Getenv("TAILSCOPE_AGGREGATE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AggregateTimeoutMs = n
		}
	}
	if v := os.Getenv("TAILSCOPE_PROBE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ProbeTimeoutMs = n
		}
	}
	if v := os.Getenv("TAILSCOPE_SEARCH_FILES_PER_SERVER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SearchFilesPerServer = n
		}
	}
}
