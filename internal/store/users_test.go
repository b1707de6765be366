package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

var insertUserQuery = regexp.QuoteMeta(`
		INSERT INTO users (username, first_name, last_name, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`)

func TestCreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(insertUserQuery).
		WithArgs("alice", "Alice", "Smith", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	user, err := s.CreateUser(context.Background(), " alice ", "secret", "Alice", "Smith")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID != 7 || user.Username != "alice" {
		t.Fatalf("unexpected user %+v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(insertUserQuery).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = s.CreateUser(context.Background(), "alice", "secret", "", "")
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestCreateUserRequiresCredentials(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	if _, err := s.CreateUser(context.Background(), "", "secret", "", ""); err == nil {
		t.Fatal("expected error for empty username")
	}
	if _, err := s.CreateUser(context.Background(), "alice", "", "", ""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	selectUser := regexp.QuoteMeta(`
		SELECT id, username, first_name, last_name, password
		FROM users
		WHERE username = $1
	`)

	t.Run("valid credentials", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		s := New(db)

		mock.ExpectQuery(selectUser).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "password"}).
				AddRow(int64(7), "alice", "Alice", "Smith", hash))

		user, err := s.Authenticate(context.Background(), "alice", "secret")
		if err != nil {
			t.Fatalf("Authenticate: %v", err)
		}
		if user.ID != 7 {
			t.Fatalf("unexpected user %+v", user)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		s := New(db)

		mock.ExpectQuery(selectUser).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "password"}).
				AddRow(int64(7), "alice", "Alice", "Smith", hash))

		_, err = s.Authenticate(context.Background(), "alice", "nope")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		s := New(db)

		mock.ExpectQuery(selectUser).
			WithArgs("bob").
			WillReturnError(sql.ErrNoRows)

		_, err = s.Authenticate(context.Background(), "bob", "secret")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestByUsernameNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, username, first_name, last_name
		FROM users
		WHERE username = $1
	`)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err = s.ByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
