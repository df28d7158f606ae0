package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/tailscope/tailscope/internal/services/aggregate"
	registrysvc "github.com/tailscope/tailscope/internal/services/registry"
)

// ServersController handles the secondary server registry endpoints.
type ServersController struct {
	reg *registrysvc.Registry
	agg *aggregate.Client
}

// NewServersController creates a new servers controller.
func NewServersController(reg *registrysvc.Registry, agg *aggregate.Client) *ServersController {
	return &ServersController{reg: reg, agg: agg}
}

// RegisterRoutes registers server registry routes with the given mux.
func (c *ServersController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/servers", c.handleList)
	mux.HandleFunc("/v1/servers/register", c.handleRegister)
	mux.HandleFunc("/v1/servers/unregister", c.handleUnregister)
	mux.HandleFunc("/v1/servers/health", c.handleHealth)
	mux.HandleFunc("/v1/servers/files", c.handleFiles)
}

// handleRegister adds a secondary server after probing its health
// endpoint, so unreachable servers are rejected up front.
func (c *ServersController) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	srv := registrysvc.Server{Name: req.Name, URL: req.URL, Description: req.Description}
	if srv.Name == "" || srv.URL == "" {
		writeError(w, http.StatusBadRequest, "name and url are required")
		return
	}
	if err := c.agg.Probe(r.Context(), srv.URL); err != nil {
		writeError(w, http.StatusBadGateway, "server health check failed: "+err.Error())
		return
	}
	if err := c.reg.Add(srv); err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "registered", "name": srv.Name})
}

// handleUnregister removes a server by name.
func (c *ServersController) handleUnregister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req unregisterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := c.reg.Remove(req.Name); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]string{"status": "unregistered", "name": req.Name})
}

// handleList returns the registered servers.
func (c *ServersController) handleList(w http.ResponseWriter, r *http.Request) {
	list := c.reg.List()
	writeJSON(w, map[string]any{"total": len(list), "servers": list})
}

// handleHealth probes every registered server in parallel.
func (c *ServersController) handleHealth(w http.ResponseWriter, r *http.Request) {
	out := c.agg.HealthAll(r.Context(), c.reg.List())
	if out == nil {
		out = []aggregate.Health{}
	}
	writeJSON(w, map[string]any{"servers": out})
}

// handleFiles proxies one server's log file listing.
func (c *ServersController) handleFiles(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("server")
	if name == "" {
		writeError(w, http.StatusBadRequest, "server parameter is required")
		return
	}
	srv, err := c.reg.Get(name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	files, err := c.agg.ListFiles(r.Context(), srv)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if files == nil {
		files = []aggregate.File{}
	}
	writeJSON(w, map[string]any{"server": srv.Name, "total_files": len(files), "files": files})
}
