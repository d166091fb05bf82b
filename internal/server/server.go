package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/replan/internal/adjust"
	"github.com/claude/replan/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	adjust *adjust.Service
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, adjustSvc *adjust.Service, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		adjust: adjustSvc,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/plans", s.handleCreatePlan)
		r.Delete("/api/v1/plans/{id}", s.handleDeletePlan)
		r.Post("/api/v1/plans/{id}/adjust", s.handleAdjustPlan)
		r.Put("/api/v1/profiles/{userID}", s.handlePutProfile)
	})

	// Read and dry-run endpoints (no auth, access is handled upstream)
	s.router.Get("/api/v1/plans", s.handleListPlans)
	s.router.Get("/api/v1/plans/{id}", s.handleGetPlan)
	s.router.Get("/api/v1/plans/{id}/history", s.handlePlanHistory)
	s.router.Post("/api/v1/plans/{id}/validate", s.handleValidatePlan)
	s.router.Post("/api/v1/plans/{id}/preview", s.handlePreviewPlan)
	s.router.Post("/api/v1/feedback/interpret", s.handleInterpretFeedback)
	s.router.Get("/api/v1/profiles/{userID}", s.handleGetProfile)
	s.router.Get("/api/v1/health", s.handleHealth)
}
