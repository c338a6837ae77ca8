package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wildcast/wildcast/internal/auth"
	"github.com/wildcast/wildcast/internal/model"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	// SubmissionID optionally claims a quiz run taken before signing up.
	SubmissionID string `json:"submissionId"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// handleRegister creates an account and issues a session token. The address
// configured as admin email registers with the admin role.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	existing, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		zap.L().Error("server: lookup user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		zap.L().Error("server: hash password", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	role := model.RoleUser
	if s.adminEmail != "" && req.Email == strings.ToLower(s.adminEmail) {
		role = model.RoleAdmin
	}

	user, err := s.store.CreateUser(r.Context(), model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         role,
		Plan:         model.PlanFree,
	})
	if err != nil {
		zap.L().Error("server: create user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	if req.SubmissionID != "" {
		if err := s.store.LinkSubmissionToUser(r.Context(), req.SubmissionID, user.ID); err != nil {
			// Registration already succeeded; a stale submission id is not fatal.
			zap.L().Warn("server: link submission",
				zap.String("submission", req.SubmissionID),
				zap.Error(err),
			)
		}
	}

	s.respondWithToken(w, user)
}

// handleLogin verifies credentials and issues a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		zap.L().Error("server: lookup user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	s.respondWithToken(w, user)
}

func (s *Server) respondWithToken(w http.ResponseWriter, user *model.User) {
	token, err := s.signer.Sign(user)
	if err != nil {
		zap.L().Error("server: sign token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to issue session")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
