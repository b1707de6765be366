package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"streamhound/internal/models"
)

// ErrInvalidToken indicates a session token that failed verification.
var ErrInvalidToken = errors.New("invalid session token")

const tokenTTL = 24 * time.Hour

// Store describes the persistence operations required by the user service.
type Store interface {
	CreateUser(ctx context.Context, username, password, firstName, lastName string) (models.User, error)
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	ByUsername(ctx context.Context, username string) (models.User, error)
}

// Service exposes account workflows and session token handling.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	ResolveUser(ctx context.Context, username string) (models.User, error)
	VerifyToken(token string) (string, error)
}

type service struct {
	store     Store
	jwtSecret []byte
}

// New wires a Service backed by the provided Store. jwtSecret signs session
// tokens with HS256.
func New(store Store, jwtSecret []byte) Service {
	return &service{store: store, jwtSecret: jwtSecret}
}

func (s *service) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return s.store.CreateUser(ctx, req.Username, req.Password, req.FirstName, req.LastName)
}

// Login validates credentials and issues a signed session token carrying the
// username as subject.
func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// ResolveUser maps the authenticated principal's username to the persisted
// user record.
func (s *service) ResolveUser(ctx context.Context, username string) (models.User, error) {
	return s.store.ByUsername(ctx, username)
}

// VerifyToken checks the token signature and expiry and returns the username
// it was issued for.
func (s *service) VerifyToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
