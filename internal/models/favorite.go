package models

import "time"

// Favorite is a persisted user-to-item association. It stores a snapshot of
// the item fields taken at favorite time, so the favorite list stays stable
// even if the upstream catalog entry later changes or disappears.
// Unique per (UserID, TwitchID, Type).
type Favorite struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Item      Item      `json:"favorite"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FavoriteRequest is the request body for favoriting or unfavoriting an item.
// For DELETE only Favorite.TwitchID is consulted.
type FavoriteRequest struct {
	Favorite Item `json:"favorite"`
}
