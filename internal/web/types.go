package web

import (
	"time"

	"streamwatch/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type searchResponse struct {
	Games []gameResponse `json:"games"`
}

type gameResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BoxArtURL *string `json:"box_art_url,omitempty"`
}

type trackRequest struct {
	GameIDs []string `json:"game_ids"`
}

type trackResponse struct {
	Tracked int `json:"tracked"`
}

type streamsResponse struct {
	Games []gameStreamsResponse `json:"games"`
}

type gameStreamsResponse struct {
	Game    gameResponse     `json:"game"`
	Streams []streamResponse `json:"streams"`
}

type streamResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	UserName        string `json:"user_name"`
	Title           string `json:"title"`
	ViewerCount     int    `json:"viewer_count"`
	StartedAt       string `json:"started_at"`
	Language        string `json:"language,omitempty"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	BroadcasterType string `json:"broadcaster_type,omitempty"`
	FollowerCount   *int64 `json:"follower_count,omitempty"`
}

type statusResponse struct {
	ServerTime          string           `json:"server_time"`
	PollIntervalSeconds int              `json:"poll_interval_seconds"`
	SchedulerState      string           `json:"scheduler_state"`
	LastRunAt           *string          `json:"last_run_at,omitempty"`
	LastRun             *lastRunResponse `json:"last_run,omitempty"`
	Subscribers         int              `json:"subscribers"`
}

type lastRunResponse struct {
	Tracked  int    `json:"tracked"`
	Streams  int    `json:"streams"`
	Profiles int    `json:"profiles"`
	Purged   int64  `json:"purged"`
	Errors   int    `json:"errors"`
	Duration string `json:"duration"`
}

func toGameResponse(g domain.Game) gameResponse {
	return gameResponse{
		ID:        g.ID,
		Name:      g.Name,
		BoxArtURL: g.BoxArtURL,
	}
}

func toGameStreamsResponse(l domain.GameStreams) gameStreamsResponse {
	streams := make([]streamResponse, 0, len(l.Streams))
	for _, s := range l.Streams {
		streams = append(streams, streamResponse{
			ID:              s.ID,
			UserID:          s.UserID,
			UserName:        s.UserName,
			Title:           s.Title,
			ViewerCount:     s.ViewerCount,
			StartedAt:       s.StartedAt.UTC().Format(time.RFC3339),
			Language:        s.Language,
			ThumbnailURL:    s.ThumbnailURL,
			BroadcasterType: s.BroadcasterType,
			FollowerCount:   s.FollowerCount,
		})
	}
	return gameStreamsResponse{
		Game:    toGameResponse(l.Game),
		Streams: streams,
	}
}
