package logsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tailscope/tailscope/internal/logfs"
	"github.com/tailscope/tailscope/internal/runtime"
	"github.com/tailscope/tailscope/internal/tail"
	logpkg "github.com/tailscope/tailscope/pkg/log"
)

// ErrBadFilter reports a filter expression that failed to compile.
var ErrBadFilter = errors.New("invalid filter expression")

// Params describes one tail request at the service level.
type Params struct {
	// N is the maximum number of lines to return. Zero selects the
	// configured default.
	N int
	// Keyword optionally restricts output to lines containing it,
	// case-insensitively.
	Keyword string
	// Filter is an optional CEL expression evaluated per line after the
	// keyword match. Lines it rejects do not count against N.
	Filter string
}

// TailSink receives streamed lines. Implemented by transports.
type TailSink interface {
	Send(line string) error
	Flush() error
}

// Service exposes tail, stream, follow, and list operations over the
// runtime's log directory.
type Service struct {
	rt     *runtime.Runtime
	logger logpkg.Logger
}

// New creates a Service with a default logger.
func New(rt *runtime.Runtime) *Service {
	return NewWithLogger(rt, logpkg.NewLogger())
}

// NewWithLogger creates a Service using the provided logger.
func NewWithLogger(rt *runtime.Runtime, logger logpkg.Logger) *Service {
	return &Service{rt: rt, logger: logger.WithComponent("logs")}
}

// query validates params and builds the engine query.
func (s *Service) query(p Params) (tail.Query, error) {
	n := p.N
	if n == 0 {
		n = s.rt.Config().DefaultEntries
	}
	if n < 1 || n > s.rt.Config().MaxEntries {
		return tail.Query{}, fmt.Errorf("%w: n must be between 1 and %d, got %d",
			tail.ErrInvalidQuery, s.rt.Config().MaxEntries, p.N)
	}
	q := tail.Query{N: n, Keyword: p.Keyword}
	if p.Filter != "" {
		f, err := newCELFilter(p.Filter)
		if err != nil {
			return tail.Query{}, fmt.Errorf("%w: %v", ErrBadFilter, err)
		}
		q.Accept = f.Eval
	}
	return q, nil
}

// Tail returns up to the requested number of matching lines from the end of
// file, newest-first.
func (s *Service) Tail(ctx context.Context, file string, p Params) ([]string, error) {
	q, err := s.query(p)
	if err != nil {
		return nil, err
	}
	path, err := s.rt.Dir().Resolve(file)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	lines, err := s.rt.Reader().Tail(path, q)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("tail served",
		logpkg.Str("file", file),
		logpkg.Int("n", q.N),
		logpkg.Int("returned", len(lines)),
		logpkg.Bool("filtered", p.Keyword != "" || p.Filter != ""),
		logpkg.Dur("took", time.Since(start)),
	)
	return lines, nil
}

// TailStream sends matching lines to sink one at a time, newest-first, with
// the same ordering and filtering contract as Tail. The scan stops early
// when ctx is cancelled or the sink errors; the file handle is released on
// every exit path.
func (s *Service) TailStream(ctx context.Context, file string, p Params, sink TailSink) error {
	q, err := s.query(p)
	if err != nil {
		return err
	}
	path, err := s.rt.Dir().Resolve(file)
	if err != nil {
		return err
	}
	it, err := s.rt.Reader().Stream(path, q)
	if err != nil {
		return err
	}
	defer it.Close()

	sent := 0
	for it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sink.Send(it.Line()); err != nil {
			return err
		}
		if err := sink.Flush(); err != nil {
			return err
		}
		sent++
	}
	if err := it.Err(); err != nil {
		return err
	}
	s.logger.Debug("tail stream finished", logpkg.Str("file", file), logpkg.Int("sent", sent))
	return nil
}

// List returns the log files under dir (the whole base when dir is empty).
func (s *Service) List(ctx context.Context, dir string) ([]logfs.Entry, error) {
	return s.rt.Dir().List(dir)
}
