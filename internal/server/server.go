// Package server exposes a resolver over a small JSON HTTP API, suitable
// for running a shared resolution service in front of a repository mirror.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/depstack/resolvekit/pkg/resolver"
)

// Server serves resolution requests against a single resolver.
type Server struct {
	res    resolver.Resolver
	logger *log.Logger
}

// New creates a Server. A nil logger disables request logging.
func New(res resolver.Resolver, logger *log.Logger) *Server {
	return &Server{res: res, logger: logger}
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.logger != nil {
		r.Use(s.logRequests)
	}
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/locate", s.handleLocate)
		r.Get("/exists", s.handleExists)
		r.Get("/resolve", s.handleResolve)
		r.Get("/modules", s.handleModules)
		r.Get("/revisions", s.handleRevisions)
		r.Post("/publish", s.handlePublish)
	})

	return r
}

// ListenAndServe runs the server at addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
