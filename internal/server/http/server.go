package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tailscope/tailscope/internal/runtime"
	"github.com/tailscope/tailscope/internal/server/http/controllers"
	"github.com/tailscope/tailscope/internal/services/aggregate"
	logsvc "github.com/tailscope/tailscope/internal/services/logs"
	"github.com/tailscope/tailscope/internal/services/registry"
	logpkg "github.com/tailscope/tailscope/pkg/log"
)

// Deps are the services the HTTP surface exposes.
type Deps struct {
	Logs      *logsvc.Service
	Servers   *registry.Registry
	Aggregate *aggregate.Client
}

type Server struct {
	rt     *runtime.Runtime
	srv    *http.Server
	lis    net.Listener
	logger logpkg.Logger
}

func New(rt *runtime.Runtime, deps Deps, logger logpkg.Logger) *Server {
	logger = logger.WithComponent("http")
	mux := http.NewServeMux()
	controllers.NewControllerRegistry(rt, deps.Logs, deps.Servers, deps.Aggregate, logger).RegisterAllRoutes(mux)
	return &Server{
		rt:     rt,
		srv:    &http.Server{Handler: cors(requestID(logger, mux))},
		logger: logger,
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	s.logger.Info("http server listening", logpkg.Str("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Addr returns the bound listen address, or "" before ListenAndServe.
func (s *Server) Addr() string {
	if s.lis == nil {
		return ""
	}
	return s.lis.Addr().String()
}

func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestID tags every request with an id, echoed in X-Request-ID and
// attached to the access log line. Client-supplied ids are kept.
func requestID(logger logpkg.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request",
			logpkg.Str("id", id),
			logpkg.Str("method", r.Method),
			logpkg.Str("path", r.URL.Path),
			logpkg.Dur("took", time.Since(start)),
		)
	})
}
