package controllers

import (
	"net/http"

	"github.com/tailscope/tailscope/internal/runtime"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// GeneralController handles the service info and health endpoints.
type GeneralController struct {
	rt *runtime.Runtime
}

// NewGeneralController creates a new general controller.
func NewGeneralController(rt *runtime.Runtime) *GeneralController {
	return &GeneralController{rt: rt}
}

// RegisterRoutes registers general routes with the given mux.
func (c *GeneralController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", c.handleInfo)
	mux.HandleFunc("/v1/healthz", c.handleHealth)
}

// handleInfo describes the service and its endpoints.
func (c *GeneralController) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, map[string]any{
		"service": "tailscope",
		"version": Version,
		"log_dir": c.rt.Dir().Base(),
		"endpoints": []string{
			"/v1/healthz",
			"/v1/logs/tail",
			"/v1/logs/stream",
			"/v1/logs/follow",
			"/v1/logs/list",
			"/v1/servers",
			"/v1/servers/register",
			"/v1/servers/unregister",
			"/v1/servers/health",
			"/v1/servers/files",
			"/v1/aggregate/logs",
			"/v1/aggregate/search",
		},
	})
}

// handleHealth returns 200 with {"status": "ok"} while the log directory
// is reachable, 503 otherwise.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}
