package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"streamhound/internal/models"
	"streamhound/internal/store"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload", err)
		return
	}

	if _, err := s.users.Register(r.Context(), req); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{
				Message: "username already taken",
				Error:   "UserExists",
				Details: err.Error(),
			})
			return
		}
		writeError(w, http.StatusBadRequest, "registration failed", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload", err)
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid username or password", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed", err)
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}

// handleLogout exists for API symmetry. Session tokens are stateless, so the
// client simply discards its token.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
