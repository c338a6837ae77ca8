package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wildcast/wildcast/internal/growth"
	"github.com/wildcast/wildcast/internal/matcher"
	"github.com/wildcast/wildcast/internal/model"
)

type matchResponse struct {
	Matches []model.ContactMatch `json:"matches"`
	Total   int                  `json:"total"`
	Limited bool                 `json:"limited"`
}

// handleMatchContacts ranks the contact pool against the caller's quiz
// answers. The request body is the answers object itself, every field
// optional. Free-plan callers see the first FreeMatchLimit matches; the
// total always reports the full ranked count.
func (s *Server) handleMatchContacts(w http.ResponseWriter, r *http.Request) {
	var answers model.SurveyAnswers
	if err := decodeJSON(r, &answers); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contacts, err := s.store.ListContacts(r.Context())
	if err != nil {
		zap.L().Error("server: list contacts", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load contacts")
		return
	}

	matches := s.matcher.Match(r.Context(), answers, contacts)
	total := len(matches)

	limited := false
	if claims := claimsFrom(r.Context()); claims == nil || (claims.Plan != model.PlanPro && claims.Role != model.RoleAdmin) {
		if total > FreeMatchLimit {
			matches = matches[:FreeMatchLimit]
		}
		limited = true
	}

	if matches == nil {
		matches = []model.ContactMatch{}
	}
	writeJSON(w, http.StatusOK, matchResponse{Matches: matches, Total: total, Limited: limited})
}

type sponsorMatchRequest struct {
	Answers  model.SurveyAnswers `json:"answers"`
	Sponsors []model.Sponsor     `json:"sponsors"`
}

// handleMatchSponsors ranks a caller-supplied sponsor list against quiz
// answers. Sponsor pools are curated client-side, so the pool travels in the
// request.
func (s *Server) handleMatchSponsors(w http.ResponseWriter, r *http.Request) {
	var req sponsorMatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	matches := matcher.MatchSponsors(req.Answers, req.Sponsors)
	if matches == nil {
		matches = []model.SponsorMatch{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches, "total": len(matches)})
}

type growthPlanRequest struct {
	Answers model.SurveyAnswers `json:"answers"`
}

// handleGrowthPlan generates audience-growth advice from quiz answers.
func (s *Server) handleGrowthPlan(w http.ResponseWriter, r *http.Request) {
	var req growthPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, growth.Plan(req.Answers))
}
