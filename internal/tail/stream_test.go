package tail

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func collect(t *testing.T, it *Iter) []string {
	t.Helper()
	var lines []string
	for it.Next() {
		lines = append(lines, it.Line())
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iterate: %v", err)
	}
	return lines
}

func TestStreamMatchesEager(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&b, "worker %d finished batch %d\n", i%7, i)
	}
	path := writeLog(t, b.String())
	r := NewReader(Options{ChunkSize: 32, SmallFileThreshold: 1})

	eager, err := r.Tail(path, Query{N: 25, Keyword: "worker 3"})
	if err != nil {
		t.Fatalf("eager: %v", err)
	}
	it, err := r.Stream(path, Query{N: 25, Keyword: "worker 3"})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	defer it.Close()
	lazy := collect(t, it)

	if len(eager) != len(lazy) {
		t.Fatalf("eager %d lines, lazy %d", len(eager), len(lazy))
	}
	for i := range eager {
		if eager[i] != lazy[i] {
			t.Fatalf("line %d: eager %q, lazy %q", i, eager[i], lazy[i])
		}
	}
}

func TestStreamStopsAtBudget(t *testing.T) {
	path := numberedLog(t, 100)
	r := NewReader(Options{ChunkSize: 16})
	it, err := r.Stream(path, Query{N: 4})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	lines := collect(t, it)
	if len(lines) != 4 {
		t.Fatalf("want 4 lines, got %d", len(lines))
	}
	if lines[0] != "L100" || lines[3] != "L97" {
		t.Fatalf("unexpected lines: %v", lines)
	}
	// Exhausted iterators stay exhausted.
	if it.Next() {
		t.Fatalf("Next after budget should be false")
	}
}

func TestStreamEarlyClose(t *testing.T) {
	path := numberedLog(t, 50)
	r := NewReader(Options{ChunkSize: 8})
	it, err := r.Stream(path, Query{N: 50})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if !it.Next() {
		t.Fatalf("want at least one line")
	}
	if err := it.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if it.Next() {
		t.Fatalf("Next after Close should be false")
	}
	// Close is idempotent.
	if err := it.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestStreamEmptyFile(t *testing.T) {
	path := writeLog(t, "")
	r := NewReader(Options{})
	it, err := r.Stream(path, Query{N: 5})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	defer it.Close()
	if it.Next() {
		t.Fatalf("empty file should yield nothing")
	}
	if it.Err() != nil {
		t.Fatalf("empty file should not error: %v", it.Err())
	}
}

func TestStreamValidationErrors(t *testing.T) {
	r := NewReader(Options{MaxFileSize: 4})
	if _, err := r.Stream(filepath.Join(t.TempDir(), "nope.log"), Query{N: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	path := writeLog(t, "0123456789\n")
	var sle *SizeLimitError
	if _, err := r.Stream(path, Query{N: 1}); !errors.As(err, &sle) {
		t.Fatalf("want SizeLimitError, got %v", err)
	}
	if _, err := NewReader(Options{}).Stream(path, Query{N: 0}); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("want ErrInvalidQuery, got %v", err)
	}
}
