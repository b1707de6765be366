package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"streamhound/internal/models"
)

var insertFavoriteQuery = regexp.QuoteMeta(`
		INSERT INTO favorites (user_id, twitch_id, item_type, title, url, thumbnail_url, broadcaster_name, game_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)

func TestAddFavorite(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(insertFavoriteQuery).
		WithArgs(int64(42), "g1", "GAME", "Chess", "https://www.twitch.tv/directory/game/Chess", "chess.jpg", "", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	item := models.Item{
		TwitchID:     "g1",
		Type:         models.ItemTypeGame,
		Title:        "Chess",
		URL:          "https://www.twitch.tv/directory/game/Chess",
		ThumbnailURL: "chess.jpg",
	}
	if err := s.AddFavorite(context.Background(), 42, item); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddFavoriteDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(insertFavoriteQuery).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "favorites_user_item_unique"})

	item := models.Item{TwitchID: "g1", Type: models.ItemTypeGame, Title: "Chess"}
	err = s.AddFavorite(context.Background(), 42, item)
	if !errors.Is(err, ErrDuplicateFavorite) {
		t.Fatalf("expected ErrDuplicateFavorite, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRemoveFavoriteIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	deleteQuery := regexp.QuoteMeta(`
		DELETE FROM favorites
		WHERE user_id = $1 AND twitch_id = $2
	`)

	// Nothing to delete: still success.
	mock.ExpectExec(deleteQuery).
		WithArgs(int64(42), "g1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.RemoveFavorite(context.Background(), 42, "g1"); err != nil {
		t.Fatalf("expected idempotent remove, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListFavoritesByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "twitch_id", "item_type", "title", "url", "thumbnail_url", "broadcaster_name", "game_id", "created_at",
	}).
		AddRow(int64(1), int64(42), "g1", "GAME", "Chess", "https://www.twitch.tv/directory/game/Chess", "chess.jpg", "", "", created).
		AddRow(int64(2), int64(42), "v1", "VIDEO", "Chess opening", "https://www.twitch.tv/videos/v1", "v1.jpg", "streamer", "g1", created)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, user_id, twitch_id, item_type, title, url, thumbnail_url, broadcaster_name, game_id, created_at
		FROM favorites
		WHERE user_id = $1
	`)).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	favorites, err := s.ListFavoritesByUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListFavoritesByUser: %v", err)
	}

	if len(favorites) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(favorites))
	}
	if favorites[0].Item.Type != models.ItemTypeGame || favorites[0].Item.TwitchID != "g1" {
		t.Fatalf("unexpected first favorite %+v", favorites[0])
	}
	if favorites[1].Item.Type != models.ItemTypeVideo || favorites[1].Item.BroadcasterName != "streamer" {
		t.Fatalf("unexpected second favorite %+v", favorites[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
