package httpapi

import (
	"errors"
	"net/http"

	"streamhound/internal/logging"
	"streamhound/internal/twitchapi"
)

// handleSearch serves GET /search?game_id=... with the videos and streams for
// a game, grouped by item type.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		writeError(w, http.StatusBadRequest, "missing game_id parameter", nil)
		return
	}

	grouped, err := s.items.GetItems(r.Context(), gameID)
	if err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, grouped)
}

// handleGames serves GET /game. With game_name it searches by name; without
// it lists the top games.
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	var (
		games []twitchapi.Game
		err   error
	)

	if name := r.URL.Query().Get("game_name"); name != "" {
		games, err = s.items.SearchGames(r.Context(), name)
	} else {
		games, err = s.items.TopGames(r.Context())
	}
	if err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}

	if games == nil {
		games = []twitchapi.Game{}
	}
	writeJSON(w, http.StatusOK, games)
}

// writeUpstreamError maps catalog failures onto a generic failure status with
// the diagnostics preserved in the body.
func (s *Server) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	reqLogger := logging.WithRequestID(r.Context(), s.logger)
	logger := reqLogger.Error().Err(err).Str("path", r.URL.Path)

	var upstream *twitchapi.UpstreamError
	switch {
	case errors.Is(err, twitchapi.ErrAuthUnavailable):
		logger.Msg("twitch auth unavailable")
		writeError(w, http.StatusInternalServerError, "catalog authentication unavailable", err)
	case errors.Is(err, twitchapi.ErrTimeout):
		logger.Msg("twitch request timed out")
		writeError(w, http.StatusInternalServerError, "catalog request timed out", err)
	case errors.As(err, &upstream):
		logger.Int("upstream_status", upstream.StatusCode).Msg("twitch upstream error")
		writeError(w, http.StatusInternalServerError, "catalog request failed", err)
	default:
		logger.Msg("catalog request failed")
		writeError(w, http.StatusInternalServerError, "catalog request failed", err)
	}
}
