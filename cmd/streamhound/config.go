package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	DatabaseURL        string
	Addr               string
	TwitchClientID     string
	TwitchClientSecret string
	TwitchAPIURL       string
	TwitchOAuthURL     string
	JWTSecret          string
	AllowedOrigins     []string
	LogLevel           string
	LogFormat          string
}

func loadConfig() (Config, error) {
	_ = godotenv.Load("config/local.env")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return Config{}, errors.New("DATABASE_URL env var is required")
	}

	clientID := os.Getenv("TWITCH_CLIENT_ID")
	clientSecret := os.Getenv("TWITCH_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return Config{}, errors.New("TWITCH_CLIENT_ID and TWITCH_CLIENT_SECRET env vars are required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return Config{}, errors.New("JWT_SECRET env var is required")
	}

	addr := fmt.Sprintf(":%s", envOrDefault("PORT", "8080"))
	origins := parseAllowedOrigins(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))

	return Config{
		DatabaseURL:        dsn,
		Addr:               addr,
		TwitchClientID:     clientID,
		TwitchClientSecret: clientSecret,
		TwitchAPIURL:       envOrDefault("TWITCH_API_URL", "https://api.twitch.tv/helix"),
		TwitchOAuthURL:     envOrDefault("TWITCH_OAUTH_URL", "https://id.twitch.tv/oauth2/token"),
		JWTSecret:          jwtSecret,
		AllowedOrigins:     origins,
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseAllowedOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	var origins []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
