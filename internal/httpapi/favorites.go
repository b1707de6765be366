package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"streamhound/internal/app/favorites"
	"streamhound/internal/models"
	"streamhound/internal/store"
)

func (s *Server) handleGetFavorites(w http.ResponseWriter, r *http.Request, user models.User) {
	grouped, err := s.favorites.GetGroupedFavoriteItems(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list favorites failed", err)
		return
	}
	writeJSON(w, http.StatusOK, grouped)
}

func (s *Server) handleSetFavorite(w http.ResponseWriter, r *http.Request, user models.User) {
	var req models.FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload", err)
		return
	}
	if req.Favorite.TwitchID == "" {
		writeError(w, http.StatusBadRequest, "favorite item requires a twitch_id", nil)
		return
	}

	if err := s.favorites.SetFavoriteItem(r.Context(), user, req.Favorite); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateFavorite):
			// Client-facing conflict, not a server fault.
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Message: "Duplicate entry error.",
				Error:   "DuplicateFavorite",
				Details: err.Error(),
			})
		case errors.Is(err, favorites.ErrInvalidItemType):
			writeError(w, http.StatusBadRequest, "invalid item type", err)
		default:
			writeError(w, http.StatusInternalServerError, "save favorite failed", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleUnsetFavorite(w http.ResponseWriter, r *http.Request, user models.User) {
	var req models.FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload", err)
		return
	}
	if req.Favorite.TwitchID == "" {
		writeError(w, http.StatusBadRequest, "favorite item requires a twitch_id", nil)
		return
	}

	if err := s.favorites.UnsetFavoriteItem(r.Context(), user, req.Favorite.TwitchID); err != nil {
		writeError(w, http.StatusInternalServerError, "remove favorite failed", err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
