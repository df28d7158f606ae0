package client

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestTailQueryEncoding(t *testing.T) {
	cmd := newLogsTailCommand(func() string { return "" })
	if err := cmd.Flags().Set("file", "apache/access.log"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := cmd.Flags().Set("lines", "25"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := cmd.Flags().Set("keyword", "ERROR 500"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	q, err := url.ParseQuery(tailQuery(cmd))
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	if q.Get("file") != "apache/access.log" || q.Get("n") != "25" || q.Get("keyword") != "ERROR 500" {
		t.Fatalf("unexpected query: %v", q)
	}
	if q.Has("filter") {
		t.Fatalf("unset flags should be omitted: %v", q)
	}
}

func TestGetPretty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	cmd := newServersListCommand(func() string { return srv.URL })
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `"status": "ok"`) {
		t.Fatalf("output not pretty-printed: %q", out.String())
	}
}

func TestGetPrettyErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}))
	t.Cleanup(srv.Close)

	cmd := newServersListCommand(func() string { return srv.URL })
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.RunE(cmd, nil); err == nil {
		t.Fatalf("4xx should surface as an error")
	}
}
