package main

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"streamhound/internal/app/favorites"
	"streamhound/internal/app/items"
	"streamhound/internal/app/users"
	"streamhound/internal/httpapi"
	"streamhound/internal/metrics"
	"streamhound/internal/store"
	"streamhound/internal/twitchapi"
)

func newHTTPHandler(cfg Config, db *sql.DB, logger zerolog.Logger) http.Handler {
	collector := metrics.NewCollector()
	dataStore := store.New(db)

	tokens := twitchapi.NewTokenManager(cfg.TwitchClientID, cfg.TwitchClientSecret, cfg.TwitchOAuthURL, collector)
	helix := twitchapi.NewHelixClient(cfg.TwitchClientID, cfg.TwitchAPIURL, tokens, logger, collector)

	userSvc := users.New(dataStore, []byte(cfg.JWTSecret))
	itemSvc := items.New(helix)
	favoriteSvc := favorites.New(dataStore)

	server := httpapi.New(userSvc, itemSvc, favoriteSvc, logger, collector, collector.Handler())

	limiter := httpapi.NewRateLimiter(rate.Limit(2), 60)

	return withCORS(cfg.AllowedOrigins, limiter.Middleware(server.Routes()))
}

func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	originAllowed := func(origin string) bool {
		if len(allowedOrigins) == 0 || origin == "" {
			return false
		}
		for _, o := range allowedOrigins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
