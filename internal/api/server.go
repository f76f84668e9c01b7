package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jskoglund/lottrace/internal/config"
	"github.com/jskoglund/lottrace/internal/report"
	"github.com/jskoglund/lottrace/internal/session"
)

// Server is the HTTP API server for lottrace.
type Server struct {
	router   chi.Router
	sessions *session.Store
	builder  *report.Builder
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(sessions *session.Store, builder *report.Builder, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		sessions: sessions,
		builder:  builder,
		log:      log,
		cfg:      cfg,
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

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/reports", s.handleBuildReport)
		r.Get("/api/reports/{sessionID}", s.handleGetReport)
		r.Get("/api/reports/{sessionID}/tree", s.handleGetTree)
		r.Get("/api/reports/{sessionID}/batches/{batchNumber}", s.handleBatchLookup)
		r.Get("/api/reports/{sessionID}/articles/{articleNumber}", s.handleArticleLookup)
		r.Delete("/api/reports/{sessionID}", s.handleDeleteReport)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
