package config

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default base log directory. On hosts with a
// standard system log directory that is used; otherwise a relative
// development directory is returned so the server can run unprivileged.
func DefaultLogDir() string {
	if isDir("/var/log") {
		return "/var/log"
	}
	return filepath.Join(".", "var", "log")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
