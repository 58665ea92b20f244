package api

import (
	"log/slog"
	"net/http"

	"answerforge/internal/config"
	"answerforge/internal/history"
	"answerforge/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for answerforge.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	jobs   *pipeline.JobStore
	hist   *history.Log
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(runner *pipeline.Runner, jobs *pipeline.JobStore, hist *history.Log, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		runner: runner,
		jobs:   jobs,
		hist:   hist,
		log:    log,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints. Auth is a no-op when no key is configured.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/extract", s.handleExtract)
		r.Post("/api/generate", s.handleGenerate)
		r.Get("/api/runs/{runID}/status", s.handleRunStatus)
		r.Get("/api/runs/{runID}/document", s.handleRunDocument)

		r.Get("/api/history", s.handleListHistory)
		r.Delete("/api/history/{entryID}", s.handleDeleteHistory)
		r.Delete("/api/history", s.handleClearHistory)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
