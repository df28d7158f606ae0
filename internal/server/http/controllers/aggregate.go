package controllers

import (
	"net/http"
	"strings"

	"github.com/tailscope/tailscope/internal/services/aggregate"
	registrysvc "github.com/tailscope/tailscope/internal/services/registry"
)

// AggregateController handles the fleet-wide fan-out endpoints.
type AggregateController struct {
	reg *registrysvc.Registry
	agg *aggregate.Client
}

// NewAggregateController creates a new aggregate controller.
func NewAggregateController(reg *registrysvc.Registry, agg *aggregate.Client) *AggregateController {
	return &AggregateController{reg: reg, agg: agg}
}

// RegisterRoutes registers aggregation routes with the given mux.
func (c *AggregateController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/aggregate/logs", c.handleLogs)
	mux.HandleFunc("/v1/aggregate/search", c.handleSearch)
}

// selected resolves the servers query parameter (comma-separated names,
// empty for all) against the registry.
func (c *AggregateController) selected(raw string) []registrysvc.Server {
	var names []string
	if raw != "" {
		names = strings.Split(raw, ",")
	}
	return c.reg.Select(names)
}

// handleLogs tails the same file on every selected server and merges
// the results, reporting per-server outcomes alongside the entries.
func (c *AggregateController) handleLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	file := q.Get("file")
	if file == "" {
		writeError(w, http.StatusBadRequest, "file parameter is required")
		return
	}
	n := parseN(q.Get("n"))
	if n == 0 {
		n = 100
	}
	if n < 1 {
		writeError(w, http.StatusBadRequest, "n must be a positive integer")
		return
	}
	servers := c.selected(q.Get("servers"))
	if len(servers) == 0 {
		writeError(w, http.StatusBadRequest, "no matching servers registered")
		return
	}
	res := c.agg.TailAll(r.Context(), servers, file, n, q.Get("keyword"))
	if res.Entries == nil {
		res.Entries = []aggregate.Entry{}
	}
	writeJSON(w, map[string]any{
		"file":          file,
		"servers":       res.Statuses,
		"total_entries": len(res.Entries),
		"entries":       res.Entries,
	})
}

// handleSearch searches for a keyword across every selected server's
// files and ranks the hits by how often the keyword occurs.
func (c *AggregateController) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	keyword := q.Get("keyword")
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "keyword parameter is required")
		return
	}
	n := parseN(q.Get("n"))
	if n == 0 {
		n = 100
	}
	if n < 1 {
		writeError(w, http.StatusBadRequest, "n must be a positive integer")
		return
	}
	servers := c.selected(q.Get("servers"))
	if len(servers) == 0 {
		writeError(w, http.StatusBadRequest, "no matching servers registered")
		return
	}
	hits := c.agg.SearchAll(r.Context(), servers, keyword, n)
	if hits == nil {
		hits = []aggregate.SearchHit{}
	}
	writeJSON(w, map[string]any{
		"keyword":    keyword,
		"total_hits": len(hits),
		"results":    hits,
	})
}
