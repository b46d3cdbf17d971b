package domain

import "time"

// StreamQuery filters the live streams returned for a set of games.
// Nil numeric bounds are unset. BroadcasterType is one of the Broadcaster*
// constants or empty for any tier; follower bounds only match streamers whose
// follower count is known.
type StreamQuery struct {
	GameIDs         []string
	BroadcasterType string
	MinViewers      *int
	MaxViewers      *int
	MinFollowers    *int
	MaxFollowers    *int
	IgnoredUserIDs  []string
}

// GameStreams is one result entry: a game plus its matching live streams
// ordered by viewer count descending. Games with no matches keep an empty
// (non-nil) Streams slice.
type GameStreams struct {
	Game    Game
	Streams []LiveStream
}

type LiveStream struct {
	ID              string
	UserID          string
	UserName        string
	Title           string
	ViewerCount     int
	StartedAt       time.Time
	Language        string
	ThumbnailURL    string
	BroadcasterType string
	FollowerCount   *int64
}
