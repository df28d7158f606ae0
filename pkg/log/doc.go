// Package log provides Tailscope's structured logging facade.
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Internally it is backed by the standard
// library's slog via a bridge handler that feeds a formatter/output
// pipeline, so output stays consistent across the codebase while remaining
// compatible with the slog ecosystem.
//
// Quick start:
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("server"))
//	l.Info("listening", log.Str("addr", ":8080"))
//
// ApplyConfig builds a logger from a declarative Config (level and format),
// and RedirectStdLog routes standard library log output through a Logger.
package log
