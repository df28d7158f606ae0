package controllers

import (
	"net/http"

	"github.com/tailscope/tailscope/internal/logfs"
	"github.com/tailscope/tailscope/internal/runtime"
	logsvc "github.com/tailscope/tailscope/internal/services/logs"
	logpkg "github.com/tailscope/tailscope/pkg/log"
)

// LogsController handles the log reading endpoints: bounded tail,
// incremental streaming, live follow, and directory listing.
type LogsController struct {
	rt     *runtime.Runtime
	svc    *logsvc.Service
	logger logpkg.Logger
}

// NewLogsController creates a new logs controller.
func NewLogsController(rt *runtime.Runtime, svc *logsvc.Service, logger logpkg.Logger) *LogsController {
	return &LogsController{rt: rt, svc: svc, logger: logger.WithComponent("logs-api")}
}

// RegisterRoutes registers log routes with the given mux.
func (c *LogsController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/logs/tail", c.handleTail)
	mux.HandleFunc("/v1/logs/stream", c.handleStream)
	mux.HandleFunc("/v1/logs/follow", c.handleFollowSSE)
	mux.HandleFunc("/v1/logs/list", c.handleList)
}

// tailParams reads the shared tail query parameters off a request.
func tailParams(r *http.Request) (file string, p logsvc.Params) {
	q := r.URL.Query()
	return q.Get("file"), logsvc.Params{
		N:       parseN(q.Get("n")),
		Keyword: q.Get("keyword"),
		Filter:  q.Get("filter"),
	}
}

// handleTail returns the last n matching lines of a file, newest first,
// as one JSON document.
func (c *LogsController) handleTail(w http.ResponseWriter, r *http.Request) {
	file, p := tailParams(r)
	if file == "" {
		writeError(w, http.StatusBadRequest, "file parameter is required")
		return
	}
	lines, err := c.svc.Tail(r.Context(), file, p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if lines == nil {
		lines = []string{}
	}
	writeJSON(w, tailResp{
		File:     file,
		Returned: len(lines),
		Filtered: p.Keyword != "" || p.Filter != "",
		Entries:  lines,
	})
}

// handleStream serves the same result as handleTail but writes each line
// as it is found and flushes after every one, so very large scans start
// producing output immediately.
func (c *LogsController) handleStream(w http.ResponseWriter, r *http.Request) {
	file, p := tailParams(r)
	if file == "" {
		writeError(w, http.StatusBadRequest, "file parameter is required")
		return
	}
	sink := &jsonStreamSink{w: w, file: file}
	if err := c.svc.TailStream(r.Context(), file, p, sink); err != nil {
		if !sink.started {
			writeServiceError(w, err)
			return
		}
		// The body is already partially written; all we can do is stop.
		c.logger.Warn("stream aborted", logpkg.Str("file", file), logpkg.Err(err))
		return
	}
	sink.end()
}

// handleFollowSSE streams lines appended to a file as server-sent
// events until the client disconnects.
func (c *LogsController) handleFollowSSE(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	file := q.Get("file")
	if file == "" {
		writeError(w, http.StatusBadRequest, "file parameter is required")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	if err := c.svc.Follow(r.Context(), file, q.Get("keyword"), sseSink{w: w}); err != nil {
		writeServiceError(w, err)
		return
	}
}

// handleList lists the log files under the configured directory.
func (c *LogsController) handleList(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("dir")
	entries, err := c.svc.List(r.Context(), dir)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []logfs.Entry{}
	}
	shown := c.rt.Dir().Base()
	if dir != "" {
		shown = dir
	}
	writeJSON(w, listResp{Directory: shown, TotalFiles: len(entries), Files: entries})
}
