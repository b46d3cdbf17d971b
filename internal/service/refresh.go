package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"streamwatch/internal/config"
	"streamwatch/internal/domain"
)

type RefreshService struct {
	catalog  CatalogClient
	games    GameStore
	streams  StreamStore
	profiles ProfileStore
	notifier Notifier
	events   EventPublisher
	logger   *slog.Logger
	config   config.FetchConfig
}

func NewRefreshService(
	catalog CatalogClient,
	games GameStore,
	streams StreamStore,
	profiles ProfileStore,
	notifier Notifier,
	events EventPublisher,
	logger *slog.Logger,
	cfg config.FetchConfig,
) *RefreshService {
	return &RefreshService{
		catalog:  catalog,
		games:    games,
		streams:  streams,
		profiles: profiles,
		notifier: notifier,
		events:   events,
		logger:   logger.With("component", "refresh"),
		config:   cfg,
	}
}

// Refresh runs one full pass: tracked games are re-fetched from the catalog,
// their live streams and streamer profiles mirrored into the store, a batch
// of stale follower counts topped up, and expired streams purged. Failures
// on a single game are counted and skipped; only listing tracked games or
// refreshing the shared metadata aborts the pass.
func (s *RefreshService) Refresh(ctx context.Context) (*domain.RefreshStats, error) {
	startTime := time.Now()

	tracked, err := s.games.ListTrackedGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tracked games: %w", err)
	}

	stats := &domain.RefreshStats{Tracked: len(tracked)}
	if len(tracked) == 0 {
		stats.Duration = time.Since(startTime)
		s.logger.Debug("no tracked games, skipping refresh")
		return stats, nil
	}

	s.logger.Info("starting refresh",
		"tracked", len(tracked),
		"max_streams_per_game", s.config.MaxStreamsPerGame,
		"languages", s.config.Languages,
	)

	// Refresh catalog metadata for every tracked game in one pass.
	games, err := s.catalog.GetGames(ctx, tracked)
	if err != nil {
		return nil, fmt.Errorf("refresh game metadata: %w", err)
	}
	if err := s.games.UpsertGames(ctx, games); err != nil {
		return nil, fmt.Errorf("store game metadata: %w", err)
	}

	for _, gameID := range tracked {
		if err := s.refreshGame(ctx, gameID, stats); err != nil {
			stats.Errors++
			s.logger.Error("failed to refresh game", "game_id", gameID, "error", err)
			continue
		}

		s.notifier.PublishGameUpdated(gameID)

		if s.events != nil {
			if err := s.events.PublishGameUpdated(ctx, gameID); err != nil {
				stats.Errors++
				s.logger.Error("failed to publish game event", "game_id", gameID, "error", err)
			} else {
				stats.Published++
			}
		}
	}

	s.refreshFollowers(ctx, stats)

	purged, err := s.streams.PurgeExpired(ctx)
	if err != nil {
		stats.Errors++
		s.logger.Error("failed to purge expired streams", "error", err)
	} else {
		stats.Purged = purged
	}

	stats.Duration = time.Since(startTime)

	s.logger.Info("refresh completed",
		"tracked", stats.Tracked,
		"streams", stats.Streams,
		"profiles", stats.Profiles,
		"followers_refreshed", stats.FollowersRefreshed,
		"followers_deferred", stats.FollowersDeferred,
		"published", stats.Published,
		"purged", stats.Purged,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (s *RefreshService) refreshGame(ctx context.Context, gameID string, stats *domain.RefreshStats) error {
	streams, err := s.catalog.StreamsForGame(ctx, gameID, s.config.MaxStreamsPerGame, s.config.Languages)
	if err != nil {
		return fmt.Errorf("fetch streams: %w", err)
	}

	// An empty result still goes through: it flips the game's remaining
	// live rows to offline.
	if err := s.streams.UpsertStreams(ctx, gameID, streams); err != nil {
		return fmt.Errorf("store streams: %w", err)
	}
	stats.Streams += len(streams)

	userIDs := distinctUserIDs(streams)
	if len(userIDs) == 0 {
		return nil
	}

	profiles, err := s.catalog.GetUsers(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("fetch streamer profiles: %w", err)
	}

	if err := s.profiles.UpsertProfiles(ctx, profiles); err != nil {
		return fmt.Errorf("store streamer profiles: %w", err)
	}
	stats.Profiles += len(profiles)

	return nil
}

// refreshFollowers tops up follower counts for the stalest profiles, one
// bounded batch per pass. A refused lookup records a shorter retry window
// instead of a count so later passes move on to other profiles.
func (s *RefreshService) refreshFollowers(ctx context.Context, stats *domain.RefreshStats) {
	userIDs, err := s.profiles.ProfilesNeedingFollowerRefresh(ctx, s.config.FollowerBatchSize)
	if err != nil {
		stats.Errors++
		s.logger.Error("failed to list profiles needing follower refresh", "error", err)
		return
	}
	if len(userIDs) == 0 {
		return
	}

	now := time.Now()
	updates := make([]domain.StreamerProfile, 0, len(userIDs))
	for _, userID := range userIDs {
		count, err := s.catalog.FollowerCount(ctx, userID)
		if err != nil {
			stats.Errors++
			s.logger.Error("failed to fetch follower count", "user_id", userID, "error", err)
			continue
		}

		if count == nil {
			expires := now.Add(s.config.FollowerRetry())
			updates = append(updates, domain.StreamerProfile{
				UserID:            userID,
				FollowerExpiresAt: &expires,
			})
			stats.FollowersDeferred++
			continue
		}

		expires := now.Add(domain.RetentionTTL)
		updates = append(updates, domain.StreamerProfile{
			UserID:            userID,
			FollowerCount:     count,
			FollowerExpiresAt: &expires,
		})
		stats.FollowersRefreshed++
	}

	if len(updates) == 0 {
		return
	}
	if err := s.profiles.UpsertProfiles(ctx, updates); err != nil {
		stats.Errors++
		s.logger.Error("failed to store follower counts", "error", err)
	}
}

func distinctUserIDs(streams []domain.Stream) []string {
	seen := make(map[string]struct{}, len(streams))
	ids := make([]string, 0, len(streams))
	for _, st := range streams {
		if st.UserID == "" {
			continue
		}
		if _, ok := seen[st.UserID]; ok {
			continue
		}
		seen[st.UserID] = struct{}{}
		ids = append(ids, st.UserID)
	}
	return ids
}
