package tail

import (
	"fmt"
	"os"
)

// Iter is a lazy, finite, non-restartable tail. It yields the same lines in
// the same order as Reader.Tail for the same query, one at a time, so a
// consumer can start emitting output before the scan finishes. The iterator
// owns its file handle; it is released when the sequence is exhausted, when
// an error occurs, or when the consumer abandons it via Close.
type Iter struct {
	f         *os.File
	path      string
	sc        *scanner
	m         *matcher
	q         Query
	remaining int
	line      string
	err       error
}

// Stream opens path and returns an iterator over up to q.N matching lines,
// newest-first. Validation failures (NotFound, SizeLimitError, bad query)
// are returned immediately with nothing held open.
func (r *Reader) Stream(path string, q Query) (*Iter, error) {
	f, size, err := r.open(path, q)
	if err != nil {
		return nil, err
	}
	return &Iter{
		f:         f,
		path:      path,
		sc:        newScanner(f, size, r.opts.ChunkSize),
		m:         newMatcher(q.Keyword),
		q:         q,
		remaining: q.N,
	}, nil
}

// Next advances to the next matching line. It returns false when the budget
// is spent, the file is exhausted, or a read error occurred; the handle is
// closed before false is returned.
func (it *Iter) Next() bool {
	if it.f == nil || it.remaining == 0 {
		it.release()
		return false
	}
	for {
		frag, ok, err := it.sc.next()
		if err != nil {
			it.err = fmt.Errorf("reading %s: %w", it.path, err)
			it.release()
			return false
		}
		if !ok {
			it.release()
			return false
		}
		line := normalize(frag)
		if line == "" {
			continue
		}
		if it.q.pass(it.m, line) {
			it.line = line
			it.remaining--
			return true
		}
	}
}

// Line returns the line produced by the last successful Next.
func (it *Iter) Line() string { return it.line }

// Err returns the first read error encountered, if any.
func (it *Iter) Err() error { return it.err }

// Close releases the underlying file. It is idempotent and safe to call at
// any point, including before the iterator is exhausted.
func (it *Iter) Close() error { return it.release() }

func (it *Iter) release() error {
	if it.f == nil {
		return nil
	}
	f := it.f
	it.f = nil
	return f.Close()
}
