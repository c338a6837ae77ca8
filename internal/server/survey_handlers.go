package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/wildcast/wildcast/internal/model"
	"github.com/wildcast/wildcast/internal/store"
)

// surveyRequest carries the quiz answers together with the show metadata, all
// at the top level as the quiz client sends them.
type surveyRequest struct {
	model.SurveyAnswers
	Email       string `json:"email"`
	PodcastName string `json:"podcastName"`
	PodcastURL  string `json:"podcastUrl"`
	Description string `json:"description"`
	HasMediaKit bool   `json:"hasMediaKit"`
}

// handleCreateSubmission persists one quiz run. Logged-in callers get the
// submission linked to their account.
func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req surveyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub := model.SurveySubmission{
		ID:          uuid.New().String(),
		Answers:     req.SurveyAnswers,
		Email:       req.Email,
		PodcastName: req.PodcastName,
		PodcastURL:  req.PodcastURL,
		Description: req.Description,
		HasMediaKit: req.HasMediaKit,
	}
	if claims := claimsFrom(r.Context()); claims != nil {
		sub.UserID = claims.UserID
	}

	created, err := s.store.CreateSubmission(r.Context(), sub)
	if err != nil {
		zap.L().Error("server: create submission", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save submission")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleGetSubmission returns one quiz run by id.
func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sub, err := s.store.GetSubmission(r.Context(), id)
	if err != nil {
		if eris.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "submission not found")
			return
		}
		zap.L().Error("server: get submission", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load submission")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
