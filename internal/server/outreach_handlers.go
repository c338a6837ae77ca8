package server

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wildcast/wildcast/internal/model"
	"github.com/wildcast/wildcast/internal/outreach"
)

type createOutreachRequest struct {
	ContactID    string `json:"contactId"`
	BrandName    string `json:"brandName"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	ContactRole  string `json:"contactRole"`
	TemplateUsed string `json:"templateUsed"`
}

// handleCreateOutreach records that the caller sent an outreach email.
func (s *Server) handleCreateOutreach(w http.ResponseWriter, r *http.Request) {
	var req createOutreachRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ContactID == "" || req.BrandName == "" {
		writeError(w, http.StatusBadRequest, "contactId and brandName are required")
		return
	}

	claims := claimsFrom(r.Context())
	record, err := s.store.CreateOutreach(r.Context(), model.OutreachRecord{
		ID:           uuid.New().String(),
		UserID:       claims.UserID,
		ContactID:    req.ContactID,
		BrandName:    req.BrandName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactRole:  req.ContactRole,
		TemplateUsed: req.TemplateUsed,
	})
	if err != nil {
		zap.L().Error("server: create outreach", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to record outreach")
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// handleListOutreach lists the caller's outreach history, newest first.
func (s *Server) handleListOutreach(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	records, err := s.store.ListOutreachByUser(r.Context(), claims.UserID)
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

type templatesRequest struct {
	Match   model.ContactMatch  `json:"match"`
	Answers model.SurveyAnswers `json:"answers"`
	Podcast model.PodcastInfo   `json:"podcast"`
	AI      bool                `json:"ai"`
}

type templatesResponse struct {
	Subject string                `json:"subject"`
	Drafts  []outreach.EmailDraft `json:"drafts"`
}

// handleOutreachTemplates renders email drafts for one matched contact. With
// ai set and a drafter configured, each draft is additionally rewritten by
// the model; otherwise the deterministic drafts are returned as-is.
func (s *Server) handleOutreachTemplates(w http.ResponseWriter, r *http.Request) {
	var req templatesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Match.Company == "" {
		writeError(w, http.StatusBadRequest, "match.company is required")
		return
	}

	drafts := outreach.Drafts(req.Match, req.Answers, req.Podcast)
	if req.AI && s.drafter != nil {
		for i, d := range drafts {
			drafts[i] = s.drafter.Polish(r.Context(), d, req.Match, req.Podcast)
		}
	}

	writeJSON(w, http.StatusOK, templatesResponse{
		Subject: outreach.Subject(req.Answers, req.Podcast),
		Drafts:  drafts,
	})
}
