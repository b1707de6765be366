package models

// ItemType classifies a catalog entity. The grouping key for display is the
// declared type, never inferred from which fields happen to be set.
type ItemType string

const (
	ItemTypeGame   ItemType = "GAME"
	ItemTypeVideo  ItemType = "VIDEO"
	ItemTypeStream ItemType = "STREAM"
)

// Item is the unified representation of a Twitch catalog entity (game, video
// or stream). Identity is (TwitchID, Type). Items are immutable once mapped.
type Item struct {
	TwitchID        string   `json:"twitch_id"`
	Type            ItemType `json:"item_type"`
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	ThumbnailURL    string   `json:"thumbnail_url"`
	BroadcasterName string   `json:"broadcaster_name,omitempty"`
	GameID          string   `json:"game_id,omitempty"`
}

// TypeGroupedItemList partitions items by type for display. Order within a
// group follows the source API order. Empty groups are omitted from the JSON
// payload entirely.
type TypeGroupedItemList struct {
	Games   []Item `json:"GAME,omitempty"`
	Videos  []Item `json:"VIDEO,omitempty"`
	Streams []Item `json:"STREAM,omitempty"`
}

// Add appends an item to the group matching its declared type.
func (l *TypeGroupedItemList) Add(item Item) {
	switch item.Type {
	case ItemTypeGame:
		l.Games = append(l.Games, item)
	case ItemTypeVideo:
		l.Videos = append(l.Videos, item)
	case ItemTypeStream:
		l.Streams = append(l.Streams, item)
	}
}

// Group returns the ordered items of the given type.
func (l *TypeGroupedItemList) Group(t ItemType) []Item {
	switch t {
	case ItemTypeGame:
		return l.Games
	case ItemTypeVideo:
		return l.Videos
	case ItemTypeStream:
		return l.Streams
	}
	return nil
}
