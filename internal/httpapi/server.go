package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"streamhound/internal/app/favorites"
	"streamhound/internal/app/items"
	"streamhound/internal/app/users"
	"streamhound/internal/models"
)

// HTTPRecorder receives a measurement for every served request.
type HTTPRecorder interface {
	RecordHTTPRequest(method string, statusCode int, duration time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) RecordHTTPRequest(string, int, time.Duration) {}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users     users.Service
	items     items.Service
	favorites favorites.Service
	logger    zerolog.Logger
	recorder  HTTPRecorder
	metrics   http.Handler
}

// New configures a Server with the given services. metricsHandler serves
// GET /metrics; pass nil to disable the endpoint. A nil recorder disables
// request measurements.
func New(
	userSvc users.Service,
	itemSvc items.Service,
	favoriteSvc favorites.Service,
	logger zerolog.Logger,
	recorder HTTPRecorder,
	metricsHandler http.Handler,
) *Server {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Server{
		users:     userSvc,
		items:     itemSvc,
		favorites: favoriteSvc,
		logger:    logger,
		recorder:  recorder,
		metrics:   metricsHandler,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}

	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /game", s.handleGames)

	mux.HandleFunc("GET /favorite", s.requireUser(s.handleGetFavorites))
	mux.HandleFunc("POST /favorite", s.requireUser(s.handleSetFavorite))
	mux.HandleFunc("DELETE /favorite", s.requireUser(s.handleUnsetFavorite))

	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	return s.withRequestLogging(mux)
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := models.ErrorResponse{Message: message}
	if err != nil {
		body.Details = err.Error()
	}
	switch status {
	case http.StatusBadRequest:
		body.Error = "BadRequest"
	case http.StatusUnauthorized:
		body.Error = "Unauthorized"
	default:
		body.Error = "InternalError"
	}
	writeJSON(w, status, body)
}
