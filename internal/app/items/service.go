package items

import (
	"context"
	"strings"

	"streamhound/internal/models"
	"streamhound/internal/twitchapi"
)

const twitchBaseURL = "https://www.twitch.tv/"

// Service aggregates Twitch catalog resources into the unified item shape.
type Service interface {
	GetItems(ctx context.Context, gameID string) (models.TypeGroupedItemList, error)
	SearchGames(ctx context.Context, name string) ([]twitchapi.Game, error)
	TopGames(ctx context.Context) ([]twitchapi.Game, error)
}

type service struct {
	catalog twitchapi.Client
}

// New wires a Service backed by the given Twitch client.
func New(catalog twitchapi.Client) Service {
	return &service{catalog: catalog}
}

// GetItems fetches the videos and live streams for a game and groups the
// mapped items by type, preserving the source API order within each group.
// Upstream failures propagate unchanged; no partial result is returned.
func (s *service) GetItems(ctx context.Context, gameID string) (models.TypeGroupedItemList, error) {
	var grouped models.TypeGroupedItemList

	videos, err := s.catalog.ListVideos(ctx, gameID)
	if err != nil {
		return models.TypeGroupedItemList{}, err
	}
	for _, v := range videos {
		grouped.Add(VideoItem(v, gameID))
	}

	streams, err := s.catalog.ListStreams(ctx, gameID)
	if err != nil {
		return models.TypeGroupedItemList{}, err
	}
	for _, st := range streams {
		grouped.Add(StreamItem(st))
	}

	return grouped, nil
}

func (s *service) SearchGames(ctx context.Context, name string) ([]twitchapi.Game, error) {
	return s.catalog.SearchGames(ctx, name)
}

func (s *service) TopGames(ctx context.Context) ([]twitchapi.Game, error) {
	return s.catalog.TopGames(ctx)
}

// gameItem maps a Twitch game into the unified item shape. Mapping is pure
// and total: absent upstream fields come through as empty strings.
func gameItem(g twitchapi.Game) models.Item {
	return models.Item{
		TwitchID:     g.ID,
		Type:         models.ItemTypeGame,
		Title:        g.Name,
		URL:          twitchBaseURL + "directory/game/" + g.Name,
		ThumbnailURL: g.BoxArtURL,
	}
}

// VideoItem maps a Twitch video into the unified item shape. The Helix video
// payload does not carry the game id, so the catalog key it was fetched under
// is attached here.
func VideoItem(v twitchapi.Video, gameID string) models.Item {
	url := v.URL
	if url == "" && v.ID != "" {
		url = twitchBaseURL + "videos/" + v.ID
	}
	return models.Item{
		TwitchID:        v.ID,
		Type:            models.ItemTypeVideo,
		Title:           v.Title,
		URL:             url,
		ThumbnailURL:    v.ThumbnailURL,
		BroadcasterName: v.UserName,
		GameID:          gameID,
	}
}

// StreamItem maps a Twitch live stream into the unified item shape.
func StreamItem(st twitchapi.Stream) models.Item {
	return models.Item{
		TwitchID:        st.ID,
		Type:            models.ItemTypeStream,
		Title:           st.Title,
		URL:             twitchBaseURL + strings.ToLower(st.UserLogin),
		ThumbnailURL:    st.ThumbnailURL,
		BroadcasterName: st.UserName,
		GameID:          st.GameID,
	}
}
