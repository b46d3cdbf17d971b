package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"streamwatch/internal/domain"
)

type CatalogClient interface {
	GetGames(ctx context.Context, ids []string) ([]domain.Game, error)
	StreamsForGame(ctx context.Context, gameID string, maxStreams int, languages []string) ([]domain.Stream, error)
	GetUsers(ctx context.Context, ids []string) ([]domain.StreamerProfile, error)
	FollowerCount(ctx context.Context, broadcasterID string) (*int64, error)
}

type GameStore interface {
	UpsertGames(ctx context.Context, games []domain.Game) error
	ListTrackedGames(ctx context.Context) ([]string, error)
}

type StreamStore interface {
	UpsertStreams(ctx context.Context, gameID string, streams []domain.Stream) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type ProfileStore interface {
	UpsertProfiles(ctx context.Context, profiles []domain.StreamerProfile) error
	ProfilesNeedingFollowerRefresh(ctx context.Context, limit int) ([]string, error)
}

type Notifier interface {
	PublishGameUpdated(gameID string)
}

type EventPublisher interface {
	PublishGameUpdated(ctx context.Context, gameID string) error
	Close() error
}
