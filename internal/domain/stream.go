package domain

import "time"

type Stream struct {
	ID           string
	GameID       string
	UserID       string
	UserName     string
	Title        string
	ViewerCount  int
	StartedAt    time.Time
	Language     string
	ThumbnailURL string
	IsLive       bool
	LastSeenAt   time.Time
	EndedAt      *time.Time
}
