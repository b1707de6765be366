package store

import (
	"context"
	"fmt"
	"time"

	"streamhound/internal/models"
)

// AddFavorite persists a favorite with a snapshot of the item fields taken
// now. Uniqueness of (user_id, twitch_id, item_type) is enforced by the
// database constraint, which closes the race between concurrent duplicate
// requests; a violation surfaces as ErrDuplicateFavorite.
func (s *Store) AddFavorite(ctx context.Context, userID int64, item models.Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, twitch_id, item_type, title, url, thumbnail_url, broadcaster_name, game_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, userID, item.TwitchID, string(item.Type), item.Title, item.URL, item.ThumbnailURL, item.BroadcasterName, item.GameID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateFavorite
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

// RemoveFavorite deletes the user's favorites for the given twitch id.
// Removing a favorite that does not exist is not an error; already-absent is
// the desired end state.
func (s *Store) RemoveFavorite(ctx context.Context, userID int64, twitchID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM favorites
		WHERE user_id = $1 AND twitch_id = $2
	`, userID, twitchID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}

// ListFavoritesByUser returns all favorites for a user. No ordering is
// guaranteed; callers impose one if they need it.
func (s *Store) ListFavoritesByUser(ctx context.Context, userID int64) ([]models.Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, twitch_id, item_type, title, url, thumbnail_url, broadcaster_name, game_id, created_at
		FROM favorites
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		var (
			fav      models.Favorite
			itemType string
		)
		if err := rows.Scan(
			&fav.ID, &fav.UserID,
			&fav.Item.TwitchID, &itemType, &fav.Item.Title, &fav.Item.URL,
			&fav.Item.ThumbnailURL, &fav.Item.BroadcasterName, &fav.Item.GameID,
			&fav.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		fav.Item.Type = models.ItemType(itemType)
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}

	return favorites, nil
}
