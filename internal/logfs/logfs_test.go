package logfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func seedDir(t *testing.T) Dir {
	t.Helper()
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "apache"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files := map[string]string{
		"syslog":            "a\nb\n",
		"auth.log":          "c\n",
		"apache/access.log": "GET /\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(base, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return New(base)
}

func TestResolve(t *testing.T) {
	d := seedDir(t)
	p, err := d.Resolve("apache/access.log")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p != filepath.Join(d.Base(), "apache", "access.log") {
		t.Fatalf("unexpected path: %s", p)
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	d := seedDir(t)
	for _, name := range []string{"../etc/passwd", "a/../../etc/passwd", "/etc/passwd", ".."} {
		if _, err := d.Resolve(name); !errors.Is(err, ErrInvalidPath) {
			t.Fatalf("resolve %q: want ErrInvalidPath, got %v", name, err)
		}
	}
}

func TestResolveRejectsEmpty(t *testing.T) {
	d := seedDir(t)
	if _, err := d.Resolve(""); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("want ErrInvalidPath for empty name")
	}
}

func TestList(t *testing.T) {
	d := seedDir(t)
	entries, err := d.List("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("want 3 files, got %d", len(entries))
	}
	// Sorted by name.
	if entries[0].Name != "apache/access.log" || entries[1].Name != "auth.log" || entries[2].Name != "syslog" {
		t.Fatalf("unexpected order: %+v", entries)
	}
	if entries[2].SizeBytes != 4 {
		t.Fatalf("syslog size: want 4, got %d", entries[2].SizeBytes)
	}
	if entries[2].Size == "" {
		t.Fatalf("readable size should be set")
	}
}

func TestListSubdirectory(t *testing.T) {
	d := seedDir(t)
	entries, err := d.List("apache")
	if err != nil {
		t.Fatalf("list sub: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "apache/access.log" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestListMissingDirectory(t *testing.T) {
	d := seedDir(t)
	if _, err := d.List("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListRejectsTraversal(t *testing.T) {
	d := seedDir(t)
	if _, err := d.List("../.."); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("want ErrInvalidPath, got %v", err)
	}
}
