package tail

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"syscall"
)

const (
	// DefaultChunkSize is the number of bytes read per backward step.
	DefaultChunkSize = 8192
	// DefaultMaxFileSize is the largest file the engine will open.
	DefaultMaxFileSize = 4 << 30
)

// Options tunes a Reader. Zero values select the defaults.
type Options struct {
	// ChunkSize is the size in bytes of each backward read.
	ChunkSize int
	// MaxFileSize rejects files larger than this before any read.
	MaxFileSize int64
	// SmallFileThreshold is the size at or below which the eager reader
	// takes the whole-file fast path. Defaults to ChunkSize*10.
	SmallFileThreshold int64
}

// Query describes one tail request.
type Query struct {
	// N is the maximum number of lines to return. Must be >= 1.
	N int
	// Keyword optionally restricts output to lines containing it,
	// case-insensitively. Empty means every line passes.
	Keyword string
	// Accept is an optional extra predicate applied after the keyword
	// match. Lines it rejects do not count against N.
	Accept func(line string) bool
}

func (q Query) pass(m *matcher, line string) bool {
	if !m.match(line) {
		return false
	}
	return q.Accept == nil || q.Accept(line)
}

// Reader computes bounded tails of log files. A Reader is stateless and
// safe for concurrent use; every call opens and owns its own file handle.
type Reader struct {
	opts Options
}

// NewReader builds a Reader, filling unset options with defaults.
func NewReader(opts Options) *Reader {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.SmallFileThreshold <= 0 {
		opts.SmallFileThreshold = int64(opts.ChunkSize) * 10
	}
	return &Reader{opts: opts}
}

// open validates the target and the query, returning an open handle and the
// size observed at open time. All failures leave nothing open.
func (r *Reader) open(path string, q Query) (*os.File, int64, error) {
	if q.N < 1 {
		return nil, 0, fmt.Errorf("%w: n must be >= 1, got %d", ErrInvalidQuery, q.N)
	}
	info, err := os.Stat(path)
	if err != nil {
		if notExist(err) {
			return nil, 0, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, 0, err
	}
	if !info.Mode().IsRegular() {
		return nil, 0, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, path)
	}
	size := info.Size()
	if size > r.opts.MaxFileSize {
		return nil, 0, &SizeLimitError{Path: path, Size: size, Limit: r.opts.MaxFileSize}
	}
	f, err := os.Open(path)
	if err != nil {
		if notExist(err) {
			return nil, 0, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, 0, err
	}
	return f, size, nil
}

// notExist treats a missing path component that is actually a file
// (ENOTDIR) the same as a missing file.
func notExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// Tail returns up to q.N matching lines from the end of the file,
// newest-first. Fewer than q.N matches is not an error. The scan is bounded:
// it reads backward only as far as needed to satisfy the budget.
func (r *Reader) Tail(path string, q Query) ([]string, error) {
	f, size, err := r.open(path, q)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if size == 0 {
		return nil, nil
	}
	if size <= r.opts.SmallFileThreshold {
		return r.tailSmall(f, q)
	}

	lines := make([]string, 0, q.N)
	sc := newScanner(f, size, r.opts.ChunkSize)
	m := newMatcher(q.Keyword)
	for len(lines) < q.N {
		frag, ok, err := sc.next()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if !ok {
			break
		}
		line := normalize(frag)
		if line == "" {
			continue
		}
		if q.pass(m, line) {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// tailSmall reads the whole file at once. Below the threshold this trades a
// bounded extra read for simplicity; the result is identical to the chunked
// path.
func (r *Reader) tailSmall(f *os.File, q Query) ([]string, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	m := newMatcher(q.Keyword)
	lines := make([]string, 0, q.N)
	raw := strings.Split(string(data), "\n")
	for i := len(raw) - 1; i >= 0 && len(lines) < q.N; i-- {
		line := normalize([]byte(raw[i]))
		if line == "" {
			continue
		}
		if q.pass(m, line) {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
