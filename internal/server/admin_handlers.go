package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/wildcast/wildcast/internal/model"
	"github.com/wildcast/wildcast/internal/store"
)

// handleAdminContacts lists the full contact pool.
func (s *Server) handleAdminContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.store.ListContacts(r.Context())
	if err != nil {
		zap.L().Error("server: list contacts", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load contacts")
		return
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

type assignContactRequest struct {
	AssignedUserID string `json:"assignedUserId"`
}

// handleAdminAssignContact assigns a contact to a user for follow-up.
func (s *Server) handleAdminAssignContact(w http.ResponseWriter, r *http.Request) {
	var req assignContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.AssignContact(r.Context(), id, req.AssignedUserID); err != nil {
		if eris.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		zap.L().Error("server: assign contact", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to assign contact")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

type updatePlanRequest struct {
	Plan model.Plan `json:"plan"`
}

// handleAdminUpdatePlan changes a user's subscription plan.
func (s *Server) handleAdminUpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req updatePlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Plan != model.PlanFree && req.Plan != model.PlanPro {
		writeError(w, http.StatusBadRequest, "plan must be free or pro")
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.UpdateUserPlan(r.Context(), id, req.Plan); err != nil {
		if eris.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		zap.L().Error("server: update plan", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update plan")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleAdminUsers lists all registered users.
func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		zap.L().Error("server: list users", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// handleAdminSubmissions lists all quiz submissions.
func (s *Server) handleAdminSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.store.ListSubmissions(r.Context())
	if err != nil {
		zap.L().Error("server: list submissions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load submissions")
		return
	}
	if subs == nil {
		subs = []model.SurveySubmission{}
	}
	writeJSON(w, http.StatusOK, subs)
}

// handleAdminOutreach lists outreach history across all users.
func (s *Server) handleAdminOutreach(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListOutreach(r.Context())
	if err != nil {
		zap.L().Error("server: list outreach", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load outreach history")
		return
	}
	if records == nil {
		records = []model.OutreachRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// handleAdminStats returns table counts for the dashboard.
func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetStats(r.Context())
	if err != nil {
		zap.L().Error("server: get stats", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
