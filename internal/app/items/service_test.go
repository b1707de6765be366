package items

import (
	"context"
	"errors"
	"testing"

	"streamhound/internal/models"
	"streamhound/internal/twitchapi"
)

type stubCatalog struct {
	games   []twitchapi.Game
	videos  []twitchapi.Video
	streams []twitchapi.Stream

	videosErr  error
	streamsErr error
}

func (s *stubCatalog) SearchGames(ctx context.Context, name string) ([]twitchapi.Game, error) {
	return s.games, nil
}

func (s *stubCatalog) TopGames(ctx context.Context) ([]twitchapi.Game, error) {
	return s.games, nil
}

func (s *stubCatalog) ListVideos(ctx context.Context, gameID string) ([]twitchapi.Video, error) {
	return s.videos, s.videosErr
}

func (s *stubCatalog) ListStreams(ctx context.Context, gameID string) ([]twitchapi.Stream, error) {
	return s.streams, s.streamsErr
}

func TestGetItemsGroupsByDeclaredType(t *testing.T) {
	catalog := &stubCatalog{
		videos: []twitchapi.Video{
			{ID: "v1", Title: "first", URL: "https://example.com/v1", UserName: "anna"},
			{ID: "v2", Title: "second", URL: "https://example.com/v2", UserName: "bob"},
		},
		streams: []twitchapi.Stream{
			{ID: "s1", Title: "live", UserLogin: "Anna", UserName: "anna", GameID: "g1"},
		},
	}

	grouped, err := New(catalog).GetItems(context.Background(), "g1")
	if err != nil {
		t.Fatalf("GetItems: %v", err)
	}

	videoGroup := grouped.Group(models.ItemTypeVideo)
	streamGroup := grouped.Group(models.ItemTypeStream)
	if len(videoGroup) != 2 || len(streamGroup) != 1 || len(grouped.Group(models.ItemTypeGame)) != 0 {
		t.Fatalf("unexpected grouping %+v", grouped)
	}

	for _, item := range videoGroup {
		if item.Type != models.ItemTypeVideo {
			t.Fatalf("video group contains %v item", item.Type)
		}
	}
	for _, item := range streamGroup {
		if item.Type != models.ItemTypeStream {
			t.Fatalf("stream group contains %v item", item.Type)
		}
	}

	// Source order is preserved within a group.
	if videoGroup[0].TwitchID != "v1" || videoGroup[1].TwitchID != "v2" {
		t.Fatalf("expected source order v1,v2, got %+v", videoGroup)
	}
}

func TestGetItemsPropagatesUpstreamFailure(t *testing.T) {
	wantErr := &twitchapi.UpstreamError{StatusCode: 500, Body: "boom"}
	catalog := &stubCatalog{videosErr: wantErr}

	_, err := New(catalog).GetItems(context.Background(), "g1")

	var upstream *twitchapi.UpstreamError
	if !errors.As(err, &upstream) || upstream.StatusCode != 500 {
		t.Fatalf("expected upstream error to propagate unchanged, got %v", err)
	}
}

func TestVideoItemMapping(t *testing.T) {
	v := twitchapi.Video{
		ID:           "v1",
		Title:        "speedrun",
		URL:          "https://www.twitch.tv/videos/v1",
		ThumbnailURL: "thumb.jpg",
		UserName:     "anna",
	}

	item := VideoItem(v, "g9")
	if item.Type != models.ItemTypeVideo {
		t.Fatalf("expected VIDEO type, got %v", item.Type)
	}
	if item.TwitchID != "v1" || item.GameID != "g9" || item.BroadcasterName != "anna" {
		t.Fatalf("unexpected mapping %+v", item)
	}
}

func TestVideoItemMapsAbsentFieldsToEmpty(t *testing.T) {
	item := VideoItem(twitchapi.Video{ID: "v1"}, "")
	if item.Title != "" || item.ThumbnailURL != "" || item.BroadcasterName != "" || item.GameID != "" {
		t.Fatalf("expected absent fields to map to empty values, got %+v", item)
	}
	if item.URL == "" {
		t.Fatal("expected a fallback video URL")
	}
}

func TestStreamItemMapping(t *testing.T) {
	st := twitchapi.Stream{
		ID:           "s1",
		Title:        "live chess",
		UserLogin:    "Anna",
		UserName:     "Anna",
		GameID:       "g1",
		ThumbnailURL: "live.jpg",
	}

	item := StreamItem(st)
	if item.Type != models.ItemTypeStream {
		t.Fatalf("expected STREAM type, got %v", item.Type)
	}
	if item.URL != "https://www.twitch.tv/anna" {
		t.Fatalf("unexpected stream URL %q", item.URL)
	}
}

func TestGameItemMapping(t *testing.T) {
	item := gameItem(twitchapi.Game{ID: "g1", Name: "Chess", BoxArtURL: "chess.jpg"})
	if item.Type != models.ItemTypeGame || item.TwitchID != "g1" || item.ThumbnailURL != "chess.jpg" {
		t.Fatalf("unexpected mapping %+v", item)
	}
}
