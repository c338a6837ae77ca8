// Package server exposes the matching core and its surrounding CRUD over
// HTTP. All responses are JSON.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/wildcast/wildcast/internal/auth"
	"github.com/wildcast/wildcast/internal/config"
	"github.com/wildcast/wildcast/internal/matcher"
	"github.com/wildcast/wildcast/internal/outreach"
	"github.com/wildcast/wildcast/internal/store"
)

// FreeMatchLimit is the number of ranked matches a free-plan caller may see.
const FreeMatchLimit = 13

// Server holds the handler dependencies. Everything is injected; there are
// no package-level singletons.
type Server struct {
	store      store.Store
	matcher    *matcher.ContactMatcher
	signer     *auth.Signer
	drafter    *outreach.AIDrafter
	adminEmail string
	cfg        config.ServerConfig
}

// New creates a Server. drafter may be nil; AI draft requests then fall back
// to the deterministic templates.
func New(st store.Store, m *matcher.ContactMatcher, signer *auth.Signer, drafter *outreach.AIDrafter, adminEmail string, cfg config.ServerConfig) *Server {
	return &Server{
		store:      st,
		matcher:    m,
		signer:     signer,
		drafter:    drafter,
		adminEmail: adminEmail,
		cfg:        cfg,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(requestLogger)
	r.Use(s.withAuth)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.With(s.rateLimit()).Post("/matches", s.handleMatchContacts)
		r.Post("/sponsors/match", s.handleMatchSponsors)
		r.Post("/growth-plan", s.handleGrowthPlan)

		r.Post("/survey", s.handleCreateSubmission)
		r.Get("/survey/{id}", s.handleGetSubmission)

		r.Post("/outreach/templates", s.handleOutreachTemplates)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/outreach", s.handleCreateOutreach)
			r.Get("/outreach", s.handleListOutreach)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Get("/contacts", s.handleAdminContacts)
			r.Patch("/contacts/{id}/assign", s.handleAdminAssignContact)
			r.Get("/users", s.handleAdminUsers)
			r.Patch("/users/{id}/plan", s.handleAdminUpdatePlan)
			r.Get("/submissions", s.handleAdminSubmissions)
			r.Get("/outreach", s.handleAdminOutreach)
			r.Get("/stats", s.handleAdminStats)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
