package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// jsonStreamSink writes a /v1/logs/stream response incrementally. The
// body is a single JSON document whose entries array grows one element
// per flush, so clients see lines as the scan finds them.
type jsonStreamSink struct {
	w       http.ResponseWriter
	file    string
	started bool
	count   int
}

func (s *jsonStreamSink) Send(line string) error {
	if !s.started {
		s.w.Header().Set("Content-Type", "application/json")
		if _, err := s.w.Write([]byte(`{"file":` + encode(s.file) + `,"entries":[`)); err != nil {
			return err
		}
		s.started = true
	}
	if s.count > 0 {
		if _, err := s.w.Write([]byte(",")); err != nil {
			return err
		}
	}
	if _, err := s.w.Write([]byte(encode(line))); err != nil {
		return err
	}
	s.count++
	return nil
}

func (s *jsonStreamSink) Flush() error {
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}

// end terminates the document. Safe to call when nothing was sent.
func (s *jsonStreamSink) end() {
	if !s.started {
		s.w.Header().Set("Content-Type", "application/json")
		if _, err := s.w.Write([]byte(`{"file":` + encode(s.file) + `,"entries":[`)); err != nil {
			return
		}
	}
	_, _ = s.w.Write([]byte(`],"returned":` + strconv.Itoa(s.count) + `}`))
	_ = s.Flush()
}

// sseSink formats followed lines as Server-Sent Events.
//
// Each line is JSON-encoded and sent with the "data: " prefix followed
// by a blank line as required by the SSE wire format, then flushed so
// the client sees it immediately.
type sseSink struct {
	w http.ResponseWriter
}

func (s sseSink) Send(line string) error {
	b, _ := json.Marshal(map[string]string{"entry": line})
	if _, err := s.w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := s.w.Write(b); err != nil {
		return err
	}
	if _, err := s.w.Write([]byte("\n\n")); err != nil {
		return err
	}
	return s.Flush()
}

func (s sseSink) Flush() error {
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}

func encode(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
