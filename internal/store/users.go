package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"streamhound/internal/models"
)

// CreateUser registers a new user with a bcrypt-hashed password.
func (s *Store) CreateUser(ctx context.Context, username, password, firstName, lastName string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Username: username, FirstName: firstName, LastName: lastName}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, first_name, last_name, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, username, firstName, lastName, hash).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrUserExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// Authenticate validates credentials and returns the matching user.
func (s *Store) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	var (
		user models.User
		hash []byte
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, first_name, last_name, password
		FROM users
		WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Burn comparable time so missing users are indistinguishable.
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// ByUsername resolves a username to the persisted user. A missing user is
// reported as ErrUserNotFound, never as a zero-value user.
func (s *Store) ByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, first_name, last_name
		FROM users
		WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}
