package favorites

import (
	"context"
	"errors"

	"streamhound/internal/models"
)

// ErrInvalidItemType rejects a favorite whose declared type is not a known
// item type.
var ErrInvalidItemType = errors.New("invalid item type")

// Store defines the persistence operations required for favorites workflows.
type Store interface {
	AddFavorite(ctx context.Context, userID int64, item models.Item) error
	RemoveFavorite(ctx context.Context, userID int64, twitchID string) error
	ListFavoritesByUser(ctx context.Context, userID int64) ([]models.Favorite, error)
}

// Service describes the favorites operations used by the HTTP handlers.
type Service interface {
	GetGroupedFavoriteItems(ctx context.Context, user models.User) (models.TypeGroupedItemList, error)
	SetFavoriteItem(ctx context.Context, user models.User, item models.Item) error
	UnsetFavoriteItem(ctx context.Context, user models.User, twitchID string) error
}

type service struct {
	store Store
}

// New constructs a favorites Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

// GetGroupedFavoriteItems loads the user's favorites and groups the persisted
// item snapshots by type. The upstream catalog is never consulted, so the
// favorite list stays stable even if the catalog entry changed or disappeared.
func (s *service) GetGroupedFavoriteItems(ctx context.Context, user models.User) (models.TypeGroupedItemList, error) {
	favorites, err := s.store.ListFavoritesByUser(ctx, user.ID)
	if err != nil {
		return models.TypeGroupedItemList{}, err
	}

	var grouped models.TypeGroupedItemList
	for _, fav := range favorites {
		grouped.Add(fav.Item)
	}
	return grouped, nil
}

// SetFavoriteItem persists the favorite. A duplicate surfaces as
// store.ErrDuplicateFavorite, unchanged; it is a client-facing condition the
// boundary layer translates, not an internal fault.
func (s *service) SetFavoriteItem(ctx context.Context, user models.User, item models.Item) error {
	switch item.Type {
	case models.ItemTypeGame, models.ItemTypeVideo, models.ItemTypeStream:
	default:
		return ErrInvalidItemType
	}
	return s.store.AddFavorite(ctx, user.ID, item)
}

// UnsetFavoriteItem removes the favorite. Removal is idempotent; unfavoriting
// an item that was never favorited succeeds.
func (s *service) UnsetFavoriteItem(ctx context.Context, user models.User, twitchID string) error {
	return s.store.RemoveFavorite(ctx, user.ID, twitchID)
}
