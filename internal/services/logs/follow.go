package logsvc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tailscope/tailscope/internal/tail"
	logpkg "github.com/tailscope/tailscope/pkg/log"
)

// followPollInterval is the fallback poll cadence for writes the watcher
// misses and for truncation detection.
const followPollInterval = time.Second

// Follow streams lines appended to file after the call starts, filtered by
// keyword, until ctx is cancelled or the sink errors. Truncation restarts
// reading from the beginning of the file. Only cancellation returns nil.
func (s *Service) Follow(ctx context.Context, file, keyword string, sink TailSink) error {
	path, err := s.rt.Dir().Resolve(file)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", tail.ErrNotFound, file)
		}
		return err
	}
	defer func() { _ = f.Close() }()

	// Start at the current end: a follow delivers new lines only.
	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	s.logger.Debug("follow started", logpkg.Str("file", file), logpkg.Int64("offset", offset))

	match := tail.NewMatcher(keyword)
	ticker := time.NewTicker(followPollInterval)
	defer ticker.Stop()

	emit := func() error {
		next, err := emitNewLines(f, offset, match, sink)
		if err != nil {
			return err
		}
		offset = next
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path || !event.Has(fsnotify.Write) {
				continue
			}
			if offset, err = truncationCheck(f, path, offset); err != nil {
				return err
			}
			if err := emit(); err != nil {
				return err
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("follow watcher error", logpkg.Err(werr))

		case <-ticker.C:
			if offset, err = truncationCheck(f, path, offset); err != nil {
				return err
			}
			if err := emit(); err != nil {
				return err
			}
		}
	}
}

// truncationCheck rewinds to the start when the file shrank below the
// current offset.
func truncationCheck(f *os.File, path string, offset int64) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		// Rotated away; keep the old handle and current offset.
		return offset, nil
	}
	if info.Size() >= offset {
		return offset, nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return 0, nil
}

// emitNewLines reads complete lines between offset and the current end of
// file, sending matches to the sink. A trailing fragment without a
// delimiter stays unread until the writer finishes it.
func emitNewLines(f *os.File, offset int64, match func(string) bool, sink TailSink) (int64, error) {
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return offset, err
	}
	r := bufio.NewReader(f)
	next := offset
	for {
		raw, err := r.ReadBytes('\n')
		if err == io.EOF {
			// Partial line: re-read it on the next round.
			return next, nil
		}
		if err != nil {
			return next, err
		}
		next += int64(len(raw))
		line := tail.Normalize(raw)
		if line == "" || !match(line) {
			continue
		}
		if err := sink.Send(line); err != nil {
			return next, err
		}
		if err := sink.Flush(); err != nil {
			return next, err
		}
	}
}
