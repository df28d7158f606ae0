package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/tailscope/tailscope/internal/logfs"
	logsvc "github.com/tailscope/tailscope/internal/services/logs"
	registrysvc "github.com/tailscope/tailscope/internal/services/registry"
	"github.com/tailscope/tailscope/internal/tail"
)

// Helper functions for common HTTP responses

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a JSON response with the given data.
func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError maps service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var sizeErr *tail.SizeLimitError
	switch {
	case errors.Is(err, tail.ErrNotFound), errors.Is(err, logfs.ErrNotFound),
		errors.Is(err, registrysvc.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, tail.ErrInvalidQuery), errors.Is(err, logfs.ErrInvalidPath),
		errors.Is(err, logsvc.ErrBadFilter):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &sizeErr):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, registrysvc.ErrExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// parseN parses the n query parameter. Returns 0 (meaning "use the
// configured default") for an empty string, -1 for garbage so validation
// downstream rejects it.
func parseN(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}
