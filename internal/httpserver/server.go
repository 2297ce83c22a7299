package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"NavyNewsWatch/internal/config"
)

// Server wraps the HTTP server around the trigger and read endpoints.
type Server struct {
	http   *http.Server
	logger *slog.Logger
}

// New builds the router and registers all routes.
func New(cfg config.ServerConfig, logger *slog.Logger, h *Handlers) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLog(logger))

	r.Get("/healthz", h.Healthz())
	r.Route("/api", func(r chi.Router) {
		r.Post("/ingest", h.Ingest())
		r.Get("/articles", h.Articles())
	})

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// The trigger endpoint runs the whole ingestion synchronously; the
		// write timeout must cover one paced pass over the full catalog.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{http: s, logger: logger}
}

// Start runs the HTTP server and blocks until error or shutdown.
func (s *Server) Start() error {
	if s.logger != nil {
		s.logger.Info("http server listening", "addr", s.http.Addr)
	}
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server within the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("http server shutting down")
	}
	return s.http.Shutdown(ctx)
}
