// Package logfs resolves and lists log files under a single base directory.
// It is the only component that turns request-supplied names into filesystem
// paths, so traversal validation lives here.
package logfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// ErrInvalidPath reports a name that tries to escape the base directory.
var ErrInvalidPath = errors.New("invalid path")

// ErrNotFound reports a missing directory in List.
var ErrNotFound = errors.New("directory not found")

// Entry describes one log file in a listing.
type Entry struct {
	// Name is the path relative to the base directory, slash-separated.
	Name string `json:"filename"`
	// SizeBytes is the raw size.
	SizeBytes int64 `json:"size_bytes"`
	// Size is a human-readable rendering of SizeBytes.
	Size string `json:"size_readable"`
}

// Dir is a log directory root. All request-supplied names are resolved
// relative to it and may never escape it.
type Dir struct {
	base string
}

// New builds a Dir rooted at base. The directory itself is not required to
// exist yet; resolution and listing report that per call.
func New(base string) Dir {
	return Dir{base: filepath.Clean(base)}
}

// Base returns the root path.
func (d Dir) Base() string { return d.base }

// Resolve turns a request-supplied name into an absolute path under the
// base directory. Absolute names and names with ".." components are
// rejected with ErrInvalidPath.
func (d Dir) Resolve(name string) (string, error) {
	if err := validate(name); err != nil {
		return "", err
	}
	return filepath.Join(d.base, filepath.FromSlash(name)), nil
}

// List walks sub (or the whole base when sub is empty) and returns every
// regular file, sorted by name.
func (d Dir) List(sub string) ([]Entry, error) {
	root := d.base
	if sub != "" {
		resolved, err := d.Resolve(sub)
		if err != nil {
			return nil, err
		}
		root = resolved
	}
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, sub)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, sub)
	}

	var entries []Entry
	err = filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal for the listing.
			if de != nil && de.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if de.IsDir() || !de.Type().IsRegular() {
			return nil
		}
		fi, err := de.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(d.base, path)
		if err != nil {
			return nil
		}
		entries = append(entries, Entry{
			Name:      filepath.ToSlash(rel),
			SizeBytes: fi.Size(),
			Size:      humanize.IBytes(uint64(fi.Size())),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func validate(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPath)
	}
	if strings.HasPrefix(name, "/") || filepath.IsAbs(name) {
		return fmt.Errorf("%w: %s is absolute", ErrInvalidPath, name)
	}
	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if part == ".." {
			return fmt.Errorf("%w: %s escapes the log directory", ErrInvalidPath, name)
		}
	}
	return nil
}
