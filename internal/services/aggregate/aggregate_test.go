package aggregate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tailscope/tailscope/internal/services/registry"
	logpkg "github.com/tailscope/tailscope/pkg/log"
)

func newTestClient() *Client {
	return New(Options{
		RequestTimeout: 500 * time.Millisecond,
		ProbeTimeout:   500 * time.Millisecond,
	}, logpkg.NewLogger())
}

// fakeSecondary serves a minimal tailscope log API returning the given
// entries for every tail request.
func fakeSecondary(t *testing.T, entries []string, files []string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/healthz", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/v1/logs/tail", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"file":     r.URL.Query().Get("file"),
			"returned": len(entries),
			"filtered": r.URL.Query().Get("keyword") != "",
			"entries":  entries,
		})
	})
	mux.HandleFunc("/v1/logs/list", func(w http.ResponseWriter, r *http.Request) {
		type f struct {
			Name string `json:"filename"`
		}
		out := make([]f, 0, len(files))
		for _, name := range files {
			out = append(out, f{Name: name})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"files": out})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestTailAllMergesAndRanks(t *testing.T) {
	s1 := fakeSecondary(t, []string{"2026-08-26 c", "2026-08-26 a"}, nil)
	s2 := fakeSecondary(t, []string{"2026-08-26 b"}, nil)
	servers := []registry.Server{
		{Name: "one", URL: s1.URL},
		{Name: "two", URL: s2.URL},
	}

	res := newTestClient().TailAll(context.Background(), servers, "syslog", 10, "")
	if len(res.Statuses) != 2 {
		t.Fatalf("want 2 statuses, got %+v", res.Statuses)
	}
	for _, st := range res.Statuses {
		if st.Status != StatusSuccess {
			t.Fatalf("unexpected status: %+v", st)
		}
	}
	if len(res.Entries) != 3 {
		t.Fatalf("want 3 entries, got %+v", res.Entries)
	}
	// Content-descending merge.
	if res.Entries[0].Content != "2026-08-26 c" || res.Entries[2].Content != "2026-08-26 a" {
		t.Fatalf("unexpected order: %+v", res.Entries)
	}
	if res.Entries[1].Server != "two" {
		t.Fatalf("entry attribution lost: %+v", res.Entries[1])
	}
}

func TestTailAllCapsEntries(t *testing.T) {
	s1 := fakeSecondary(t, []string{"e", "d", "c", "b", "a"}, nil)
	servers := []registry.Server{{Name: "one", URL: s1.URL}}
	res := newTestClient().TailAll(context.Background(), servers, "syslog", 2, "")
	if len(res.Entries) != 2 {
		t.Fatalf("want entries capped at 2, got %+v", res.Entries)
	}
}

func TestTailAllPartialFailure(t *testing.T) {
	good := fakeSecondary(t, []string{"line"}, nil)
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(bad.Close)
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	t.Cleanup(slow.Close)

	servers := []registry.Server{
		{Name: "good", URL: good.URL},
		{Name: "bad", URL: bad.URL},
		{Name: "slow", URL: slow.URL},
	}
	res := newTestClient().TailAll(context.Background(), servers, "syslog", 10, "")

	if res.Statuses[0].Status != StatusSuccess || res.Statuses[0].EntriesReturned != 1 {
		t.Fatalf("good server: %+v", res.Statuses[0])
	}
	if res.Statuses[1].Status != StatusError {
		t.Fatalf("bad server: %+v", res.Statuses[1])
	}
	if res.Statuses[2].Status != StatusTimeout {
		t.Fatalf("slow server: %+v", res.Statuses[2])
	}
	if len(res.Entries) != 1 {
		t.Fatalf("only the good server should contribute: %+v", res.Entries)
	}
}

func TestSearchAllRanksByMatches(t *testing.T) {
	s1 := fakeSecondary(t, []string{"error error error", "clean line"}, []string{"a.log"})
	s2 := fakeSecondary(t, []string{"one error here"}, []string{"b.log"})
	servers := []registry.Server{
		{Name: "one", URL: s1.URL},
		{Name: "two", URL: s2.URL},
	}

	hits := newTestClient().SearchAll(context.Background(), servers, "ERROR", 10)
	if len(hits) != 3 {
		t.Fatalf("want 3 hits, got %+v", hits)
	}
	if hits[0].Matches != 3 || hits[0].Server != "one" {
		t.Fatalf("best hit should rank first: %+v", hits[0])
	}
	if hits[len(hits)-1].Matches != 0 {
		t.Fatalf("unexpected ranking: %+v", hits)
	}
}

func TestSearchAllHonorsFilesPerServer(t *testing.T) {
	var tailCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/logs/list", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"files": []map[string]string{
			{"filename": "a"}, {"filename": "b"}, {"filename": "c"},
		}})
	})
	mux.HandleFunc("/v1/logs/tail", func(w http.ResponseWriter, r *http.Request) {
		tailCalls++
		_ = json.NewEncoder(w).Encode(map[string]any{"entries": []string{}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := New(Options{FilesPerServer: 2, Concurrency: 1}, logpkg.NewLogger())
	c.SearchAll(context.Background(), []registry.Server{{Name: "one", URL: srv.URL}}, "x", 5)
	if tailCalls != 2 {
		t.Fatalf("want 2 tail calls, got %d", tailCalls)
	}
}

func TestHealthAll(t *testing.T) {
	healthy := fakeSecondary(t, nil, nil)
	unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(unhealthy.Close)

	servers := []registry.Server{
		{Name: "up", URL: healthy.URL},
		{Name: "down", URL: unhealthy.URL},
		{Name: "gone", URL: "http://127.0.0.1:1"},
	}
	out := newTestClient().HealthAll(context.Background(), servers)
	if out[0].Status != "healthy" {
		t.Fatalf("up: %+v", out[0])
	}
	if out[1].Status != "unhealthy" {
		t.Fatalf("down: %+v", out[1])
	}
	if out[2].Status != "unreachable" {
		t.Fatalf("gone: %+v", out[2])
	}
}

func TestProbe(t *testing.T) {
	srv := fakeSecondary(t, nil, nil)
	c := newTestClient()
	if err := c.Probe(context.Background(), srv.URL); err != nil {
		t.Fatalf("probe healthy: %v", err)
	}
	if err := c.Probe(context.Background(), "http://127.0.0.1:1"); err == nil {
		t.Fatalf("probe unreachable should fail")
	}
}
