package log

import (
	stdlog "log"
)

// Config declaratively describes a logger.
type Config struct {
	// Level is one of debug|info|warn|error|fatal. Empty means info.
	Level string `json:"level"`
	// Format is text or json. Empty means text.
	Format string `json:"format"`
	// File, when set, appends output to the given path in addition to the
	// console.
	File string `json:"file"`
}

// ApplyConfig builds a Logger from a Config.
func ApplyConfig(cfg *Config) (Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	var formatter Formatter
	switch cfg.Format {
	case "", "text":
		formatter = &TextFormatter{}
	case "json":
		formatter = &JSONFormatter{}
	default:
		return nil, errUnknownFormat(cfg.Format)
	}
	opts := []LoggerOption{
		WithLevel(level),
		WithFormatter(formatter),
		WithOutput(NewConsoleOutput()),
	}
	if cfg.File != "" {
		fo, err := NewFileOutput(cfg.File)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithOutput(fo))
	}
	return NewLogger(opts...), nil
}

type errUnknownFormat string

func (e errUnknownFormat) Error() string { return "unknown log format " + string(e) }

// RedirectStdLog routes standard library log output through logger at
// InfoLevel. Libraries that only know *log.Logger end up in the same
// pipeline as everything else.
func RedirectStdLog(logger Logger) {
	stdlog.SetFlags(0)
	stdlog.SetOutput(stdWriter{logger: logger})
}

type stdWriter struct {
	logger Logger
}

func (w stdWriter) Write(p []byte) (int, error) {
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	w.logger.Info(msg)
	return len(p), nil
}
