// Package aggregate fans requests out to registered secondary servers and
// collects per-server results. A slow or failing server degrades its own
// slice of the response, never the whole call.
package aggregate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"github.com/tailscope/tailscope/internal/services/registry"
	logpkg "github.com/tailscope/tailscope/pkg/log"
)

// Per-server status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

// Options tunes the fan-out client. Zero values select the defaults.
type Options struct {
	// RequestTimeout bounds each per-server log request.
	RequestTimeout time.Duration
	// ProbeTimeout bounds health probes.
	ProbeTimeout time.Duration
	// FilesPerServer caps how many files SearchAll inspects per server.
	FilesPerServer int
	// Concurrency caps in-flight requests across the fleet.
	Concurrency int
}

// Client performs parallel HTTP calls against secondary tailscope servers.
type Client struct {
	hc     *http.Client
	opts   Options
	logger logpkg.Logger
}

// New builds a Client.
func New(opts Options, logger logpkg.Logger) *Client {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 5 * time.Second
	}
	if opts.FilesPerServer <= 0 {
		opts.FilesPerServer = 5
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	return &Client{
		hc:     &http.Client{},
		opts:   opts,
		logger: logger.WithComponent("aggregate"),
	}
}

// ServerStatus is the per-server outcome of a fan-out call.
type ServerStatus struct {
	Name            string `json:"name"`
	Status          string `json:"status"`
	EntriesReturned int    `json:"entries_returned"`
	Error           string `json:"error,omitempty"`
}

// Entry is one aggregated log line attributed to its origin server.
type Entry struct {
	Server  string `json:"server"`
	Content string `json:"content"`
}

// TailAllResult bundles the aggregated entries with per-server statuses.
type TailAllResult struct {
	Statuses []ServerStatus
	Entries  []Entry
}

// tailResponse mirrors the secondary server's /v1/logs/tail body.
type tailResponse struct {
	File     string   `json:"file"`
	Returned int      `json:"returned"`
	Filtered bool     `json:"filtered"`
	Entries  []string `json:"entries"`
}

// File is one entry of a secondary server's log file listing.
type File struct {
	Name      string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
	Size      string `json:"size_readable"`
}

// listResponse mirrors the secondary server's /v1/logs/list body.
type listResponse struct {
	Files []File `json:"files"`
}

// ListFiles fetches one server's log file listing.
func (c *Client) ListFiles(ctx context.Context, srv registry.Server) ([]File, error) {
	var resp listResponse
	if err := c.getJSON(ctx, srv.URL+"/v1/logs/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// TailAll fetches the same tail from every server in parallel. Statuses are
// reported in server order; entries are merged, sorted descending by
// content, and capped at n.
func (c *Client) TailAll(ctx context.Context, servers []registry.Server, file string, n int, keyword string) TailAllResult {
	statuses := make([]ServerStatus, len(servers))
	perServer := make([][]string, len(servers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)
	for i, srv := range servers {
		i, srv := i, srv
		g.Go(func() error {
			var resp tailResponse
			err := c.getJSON(gctx, srv.URL+"/v1/logs/tail", url.Values{
				"file":    {file},
				"n":       {strconv.Itoa(n)},
				"keyword": {keyword},
			}, &resp)
			statuses[i] = statusFor(srv.Name, err, len(resp.Entries))
			perServer[i] = resp.Entries
			return nil
		})
	}
	_ = g.Wait()

	var entries []Entry
	for i, srv := range servers {
		for _, line := range perServer[i] {
			entries = append(entries, Entry{Server: srv.Name, Content: line})
		}
	}
	// Byte-position order only exists within one file on one server; across
	// servers the best available ordering is content-descending, which puts
	// lexically sortable timestamps newest-first.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Content > entries[j].Content })
	if len(entries) > n {
		entries = entries[:n]
	}
	return TailAllResult{Statuses: statuses, Entries: entries}
}

// SearchHit is one matching line found during a fleet-wide search, ranked
// by how often the keyword occurs in it.
type SearchHit struct {
	Server  string `json:"server"`
	Content string `json:"content"`
	Matches int    `json:"matches"`
}

// SearchAll searches for keyword across every server's files: it lists each
// server's files in parallel, tails the first FilesPerServer of them with
// the keyword filter, and ranks the combined hits by match count.
func (c *Client) SearchAll(ctx context.Context, servers []registry.Server, keyword string, n int) []SearchHit {
	files := make([][]string, len(servers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)
	for i, srv := range servers {
		i, srv := i, srv
		g.Go(func() error {
			var resp listResponse
			if err := c.getJSON(gctx, srv.URL+"/v1/logs/list", nil, &resp); err != nil {
				c.logger.Warn("list failed during search",
					logpkg.Str("server", srv.Name), logpkg.Err(err))
				return nil
			}
			names := make([]string, 0, c.opts.FilesPerServer)
			for _, f := range resp.Files {
				if len(names) == c.opts.FilesPerServer {
					break
				}
				names = append(names, f.Name)
			}
			files[i] = names
			return nil
		})
	}
	_ = g.Wait()

	type task struct {
		server registry.Server
		file   string
	}
	var tasks []task
	for i, srv := range servers {
		for _, f := range files[i] {
			tasks = append(tasks, task{server: srv, file: f})
		}
	}

	results := make([][]SearchHit, len(tasks))
	g2, g2ctx := errgroup.WithContext(ctx)
	g2.SetLimit(c.opts.Concurrency)
	folded := cases.Fold().String(keyword)
	for i, tk := range tasks {
		i, tk := i, tk
		g2.Go(func() error {
			var resp tailResponse
			err := c.getJSON(g2ctx, tk.server.URL+"/v1/logs/tail", url.Values{
				"file":    {tk.file},
				"n":       {strconv.Itoa(n)},
				"keyword": {keyword},
			}, &resp)
			if err != nil {
				return nil
			}
			hits := make([]SearchHit, 0, len(resp.Entries))
			for _, line := range resp.Entries {
				hits = append(hits, SearchHit{
					Server:  tk.server.Name,
					Content: line,
					Matches: strings.Count(cases.Fold().String(line), folded),
				})
			}
			results[i] = hits
			return nil
		})
	}
	_ = g2.Wait()

	var all []SearchHit
	for _, hits := range results {
		all = append(all, hits...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Matches > all[j].Matches })
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// Health is the probe outcome for one server.
type Health struct {
	Name   string `json:"name"`
	Status string `json:"status"` // healthy, unhealthy, or unreachable
}

// HealthAll probes every server in parallel.
func (c *Client) HealthAll(ctx context.Context, servers []registry.Server) []Health {
	out := make([]Health, len(servers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)
	for i, srv := range servers {
		i, srv := i, srv
		g.Go(func() error {
			out[i] = Health{Name: srv.Name, Status: "healthy"}
			switch err := c.Probe(gctx, srv.URL); {
			case err == nil:
			case errors.Is(err, errUnhealthy):
				out[i].Status = "unhealthy"
			default:
				out[i].Status = "unreachable"
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

var errUnhealthy = errors.New("health check returned non-200")

// Probe checks a single server's health endpoint. Used both by HealthAll
// and at registration time to reject unreachable servers.
func (c *Client) Probe(ctx context.Context, baseURL string) error {
	pctx, cancel := context.WithTimeout(ctx, c.opts.ProbeTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(pctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/v1/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", errUnhealthy, resp.StatusCode)
	}
	return nil
}

// getJSON performs one GET with the per-request timeout and decodes the
// JSON body into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	rctx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(rctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, req.URL.Host)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// statusFor classifies a per-server outcome.
func statusFor(name string, err error, count int) ServerStatus {
	st := ServerStatus{Name: name, Status: StatusSuccess, EntriesReturned: count}
	if err == nil {
		return st
	}
	st.EntriesReturned = 0
	st.Error = err.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		st.Status = StatusTimeout
	} else {
		st.Status = StatusError
	}
	return st
}
