package serverrun

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	cfgpkg "github.com/tailscope/tailscope/internal/config"
	"github.com/tailscope/tailscope/internal/runtime"
	httpserver "github.com/tailscope/tailscope/internal/server/http"
	"github.com/tailscope/tailscope/internal/services/aggregate"
	logsvc "github.com/tailscope/tailscope/internal/services/logs"
	registrysvc "github.com/tailscope/tailscope/internal/services/registry"
	logpkg "github.com/tailscope/tailscope/pkg/log"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

type Options struct {
	LogDir   string
	HTTPAddr string
	Config   cfgpkg.Config
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	// Be robust to callers that don't pass a signal-aware context. We
	// layer a local signal context over the provided one.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.LogDir != "" {
		opts.Config.LogDir = opts.LogDir
	}
	if opts.Config.LogDir == "" {
		opts.Config.LogDir = cfgpkg.DefaultLogDir()
	}
	if opts.HTTPAddr != "" {
		opts.Config.HTTPAddr = opts.HTTPAddr
	}

	// Build the process-wide logger from the environment; defaults:
	// level=info, format=text.
	logCfg := &logpkg.Config{
		Level:  getenvDefault("TAILSCOPE_LOG_LEVEL", "info"),
		Format: getenvDefault("TAILSCOPE_LOG_FORMAT", "text"),
	}
	procLogger, err := logpkg.ApplyConfig(logCfg)
	if err != nil {
		procLogger = logpkg.NewLogger(
			logpkg.WithLevel(logpkg.InfoLevel),
			logpkg.WithFormatter(&logpkg.TextFormatter{}),
		)
	}
	logpkg.RedirectStdLog(procLogger)

	rt, err := runtime.Open(runtime.Options{Config: opts.Config})
	if err != nil {
		return err
	}
	defer rt.Close()

	procLogger.Info("Starting tailscope server",
		logpkg.Str("http", opts.Config.HTTPAddr),
		logpkg.Str("log_dir", opts.Config.LogDir),
		logpkg.Str("level", logCfg.Level),
		logpkg.Str("format", logCfg.Format),
	)

	deps := httpserver.Deps{
		Logs:    logsvc.NewWithLogger(rt, procLogger),
		Servers: registrysvc.New(),
		Aggregate: aggregate.New(aggregate.Options{
			RequestTimeout: time.Duration(opts.Config.AggregateTimeoutMs) * time.Millisecond,
			ProbeTimeout:   time.Duration(opts.Config.ProbeTimeoutMs) * time.Millisecond,
			FilesPerServer: opts.Config.SearchFilesPerServer,
		}, procLogger),
	}
	hsrv := httpserver.New(rt, deps, procLogger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, opts.Config.HTTPAddr); err != nil && sctx.Err() == nil {
			log.Printf("http error: %v", err)
		}
	}()

	<-sctx.Done()
	hsrv.Close()
	wg.Wait()
	return nil
}
