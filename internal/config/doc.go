// Package config loads Tailscope's configuration from built-in defaults, an
// optional JSON file, and TAILSCOPE_* environment variable overlays, in that
// order of precedence.
package config
