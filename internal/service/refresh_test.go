package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"streamwatch/internal/config"
	"streamwatch/internal/domain"
	"streamwatch/internal/service/mocks"
)

type RefreshServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	catalog  *mocks.MockCatalogClient
	games    *mocks.MockGameStore
	streams  *mocks.MockStreamStore
	profiles *mocks.MockProfileStore
	notifier *mocks.MockNotifier
	events   *mocks.MockEventPublisher

	service *RefreshService
	cfg     config.FetchConfig
	logger  *slog.Logger
}

func (s *RefreshServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.catalog = mocks.NewMockCatalogClient(s.ctrl)
	s.games = mocks.NewMockGameStore(s.ctrl)
	s.streams = mocks.NewMockStreamStore(s.ctrl)
	s.profiles = mocks.NewMockProfileStore(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)
	s.events = mocks.NewMockEventPublisher(s.ctrl)

	s.cfg = config.FetchConfig{
		IntervalSeconds:      300,
		MaxStreamsPerGame:    100,
		Languages:            []string{"en"},
		FollowerBatchSize:    25,
		FollowerRetrySeconds: 6 * 60 * 60,
	}

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = NewRefreshService(
		s.catalog,
		s.games,
		s.streams,
		s.profiles,
		s.notifier,
		s.events,
		s.logger,
		s.cfg,
	)
}

func (s *RefreshServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRefreshServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RefreshServiceTestSuite))
}

func (s *RefreshServiceTestSuite) TestRefresh_NoTrackedGames() {
	ctx := context.Background()

	s.games.EXPECT().ListTrackedGames(ctx).Return(nil, nil)

	stats, err := s.service.Refresh(ctx)

	s.NoError(err)
	s.Equal(0, stats.Tracked)
	s.Equal(0, stats.Streams)
	s.Equal(0, stats.Errors)
}

func (s *RefreshServiceTestSuite) TestRefresh_ListError() {
	ctx := context.Background()

	s.games.EXPECT().ListTrackedGames(ctx).Return(nil, errors.New("db down"))

	stats, err := s.service.Refresh(ctx)

	s.Error(err)
	s.Nil(stats)
	s.Contains(err.Error(), "list tracked games")
}

func (s *RefreshServiceTestSuite) TestRefresh_HappyPath() {
	ctx := context.Background()
	tracked := []string{"g1", "g2"}

	meta := []domain.Game{
		{ID: "g1", Name: "Game One"},
		{ID: "g2", Name: "Game Two"},
	}
	g1Streams := []domain.Stream{
		{ID: "s1", GameID: "g1", UserID: "u1", ViewerCount: 100, IsLive: true},
		{ID: "s2", GameID: "g1", UserID: "u2", ViewerCount: 20, IsLive: true},
		{ID: "s3", GameID: "g1", UserID: "u1", ViewerCount: 5, IsLive: true},
	}
	g1Profiles := []domain.StreamerProfile{
		{UserID: "u1"},
		{UserID: "u2"},
	}

	s.games.EXPECT().ListTrackedGames(ctx).Return(tracked, nil)
	s.catalog.EXPECT().GetGames(ctx, tracked).Return(meta, nil)
	s.games.EXPECT().UpsertGames(ctx, meta).Return(nil)

	s.catalog.EXPECT().StreamsForGame(ctx, "g1", 100, []string{"en"}).Return(g1Streams, nil)
	s.streams.EXPECT().UpsertStreams(ctx, "g1", g1Streams).Return(nil)
	s.catalog.EXPECT().GetUsers(ctx, []string{"u1", "u2"}).Return(g1Profiles, nil)
	s.profiles.EXPECT().UpsertProfiles(ctx, g1Profiles).Return(nil)
	s.notifier.EXPECT().PublishGameUpdated("g1")
	s.events.EXPECT().PublishGameUpdated(ctx, "g1").Return(nil)

	// A game with no live streams still flips its rows and notifies.
	s.catalog.EXPECT().StreamsForGame(ctx, "g2", 100, []string{"en"}).Return([]domain.Stream{}, nil)
	s.streams.EXPECT().UpsertStreams(ctx, "g2", []domain.Stream{}).Return(nil)
	s.notifier.EXPECT().PublishGameUpdated("g2")
	s.events.EXPECT().PublishGameUpdated(ctx, "g2").Return(nil)

	s.profiles.EXPECT().ProfilesNeedingFollowerRefresh(ctx, 25).Return([]string{"u1"}, nil)
	count := int64(500)
	s.catalog.EXPECT().FollowerCount(ctx, "u1").Return(&count, nil)
	s.profiles.EXPECT().UpsertProfiles(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, updates []domain.StreamerProfile) error {
			s.Require().Len(updates, 1)
			s.Equal("u1", updates[0].UserID)
			s.Require().NotNil(updates[0].FollowerCount)
			s.Equal(int64(500), *updates[0].FollowerCount)
			s.Require().NotNil(updates[0].FollowerExpiresAt)
			s.WithinDuration(time.Now().Add(domain.RetentionTTL), *updates[0].FollowerExpiresAt, time.Minute)
			return nil
		},
	)

	s.streams.EXPECT().PurgeExpired(ctx).Return(int64(3), nil)

	stats, err := s.service.Refresh(ctx)

	s.NoError(err)
	s.Equal(2, stats.Tracked)
	s.Equal(3, stats.Streams)
	s.Equal(2, stats.Profiles)
	s.Equal(1, stats.FollowersRefreshed)
	s.Equal(0, stats.FollowersDeferred)
	s.Equal(2, stats.Published)
	s.Equal(int64(3), stats.Purged)
	s.Equal(0, stats.Errors)
}

func (s *RefreshServiceTestSuite) TestRefresh_MetadataErrorAbortsPass() {
	ctx := context.Background()

	s.games.EXPECT().ListTrackedGames(ctx).Return([]string{"g1"}, nil)
	s.catalog.EXPECT().GetGames(ctx, []string{"g1"}).Return(nil, errors.New("api error"))

	stats, err := s.service.Refresh(ctx)

	s.Error(err)
	s.Nil(stats)
	s.Contains(err.Error(), "refresh game metadata")
}

func (s *RefreshServiceTestSuite) TestRefresh_GameFailureIsIsolated() {
	ctx := context.Background()
	tracked := []string{"g1", "g2"}

	meta := []domain.Game{
		{ID: "g1", Name: "Game One"},
		{ID: "g2", Name: "Game Two"},
	}
	g2Streams := []domain.Stream{
		{ID: "s9", GameID: "g2", UserID: "u5", ViewerCount: 7, IsLive: true},
	}
	g2Profiles := []domain.StreamerProfile{{UserID: "u5"}}

	s.games.EXPECT().ListTrackedGames(ctx).Return(tracked, nil)
	s.catalog.EXPECT().GetGames(ctx, tracked).Return(meta, nil)
	s.games.EXPECT().UpsertGames(ctx, meta).Return(nil)

	s.catalog.EXPECT().StreamsForGame(ctx, "g1", 100, []string{"en"}).Return(nil, errors.New("api error"))

	s.catalog.EXPECT().StreamsForGame(ctx, "g2", 100, []string{"en"}).Return(g2Streams, nil)
	s.streams.EXPECT().UpsertStreams(ctx, "g2", g2Streams).Return(nil)
	s.catalog.EXPECT().GetUsers(ctx, []string{"u5"}).Return(g2Profiles, nil)
	s.profiles.EXPECT().UpsertProfiles(ctx, g2Profiles).Return(nil)
	s.notifier.EXPECT().PublishGameUpdated("g2")
	s.events.EXPECT().PublishGameUpdated(ctx, "g2").Return(nil)

	s.profiles.EXPECT().ProfilesNeedingFollowerRefresh(ctx, 25).Return(nil, nil)
	s.streams.EXPECT().PurgeExpired(ctx).Return(int64(0), nil)

	stats, err := s.service.Refresh(ctx)

	s.NoError(err)
	s.Equal(2, stats.Tracked)
	s.Equal(1, stats.Streams)
	s.Equal(1, stats.Profiles)
	s.Equal(1, stats.Published)
	s.Equal(1, stats.Errors)
}

func (s *RefreshServiceTestSuite) TestRefresh_FollowerRefusalDefersRetry() {
	ctx := context.Background()

	s.games.EXPECT().ListTrackedGames(ctx).Return([]string{"g1"}, nil)
	s.catalog.EXPECT().GetGames(ctx, []string{"g1"}).Return([]domain.Game{{ID: "g1"}}, nil)
	s.games.EXPECT().UpsertGames(ctx, gomock.Any()).Return(nil)
	s.catalog.EXPECT().StreamsForGame(ctx, "g1", 100, []string{"en"}).Return([]domain.Stream{}, nil)
	s.streams.EXPECT().UpsertStreams(ctx, "g1", []domain.Stream{}).Return(nil)
	s.notifier.EXPECT().PublishGameUpdated("g1")
	s.events.EXPECT().PublishGameUpdated(ctx, "g1").Return(nil)

	s.profiles.EXPECT().ProfilesNeedingFollowerRefresh(ctx, 25).Return([]string{"u9"}, nil)
	s.catalog.EXPECT().FollowerCount(ctx, "u9").Return(nil, nil)
	s.profiles.EXPECT().UpsertProfiles(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, updates []domain.StreamerProfile) error {
			s.Require().Len(updates, 1)
			s.Equal("u9", updates[0].UserID)
			s.Nil(updates[0].FollowerCount)
			s.Require().NotNil(updates[0].FollowerExpiresAt)
			s.WithinDuration(time.Now().Add(6*time.Hour), *updates[0].FollowerExpiresAt, time.Minute)
			return nil
		},
	)

	s.streams.EXPECT().PurgeExpired(ctx).Return(int64(0), nil)

	stats, err := s.service.Refresh(ctx)

	s.NoError(err)
	s.Equal(0, stats.FollowersRefreshed)
	s.Equal(1, stats.FollowersDeferred)
	s.Equal(0, stats.Errors)
}

func (s *RefreshServiceTestSuite) TestRefresh_FollowerErrorSkipsProfile() {
	ctx := context.Background()

	s.games.EXPECT().ListTrackedGames(ctx).Return([]string{"g1"}, nil)
	s.catalog.EXPECT().GetGames(ctx, []string{"g1"}).Return([]domain.Game{{ID: "g1"}}, nil)
	s.games.EXPECT().UpsertGames(ctx, gomock.Any()).Return(nil)
	s.catalog.EXPECT().StreamsForGame(ctx, "g1", 100, []string{"en"}).Return([]domain.Stream{}, nil)
	s.streams.EXPECT().UpsertStreams(ctx, "g1", []domain.Stream{}).Return(nil)
	s.notifier.EXPECT().PublishGameUpdated("g1")
	s.events.EXPECT().PublishGameUpdated(ctx, "g1").Return(nil)

	s.profiles.EXPECT().ProfilesNeedingFollowerRefresh(ctx, 25).Return([]string{"u1", "u2"}, nil)
	s.catalog.EXPECT().FollowerCount(ctx, "u1").Return(nil, errors.New("api error"))
	count := int64(100)
	s.catalog.EXPECT().FollowerCount(ctx, "u2").Return(&count, nil)
	s.profiles.EXPECT().UpsertProfiles(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, updates []domain.StreamerProfile) error {
			s.Require().Len(updates, 1)
			s.Equal("u2", updates[0].UserID)
			return nil
		},
	)

	s.streams.EXPECT().PurgeExpired(ctx).Return(int64(0), nil)

	stats, err := s.service.Refresh(ctx)

	s.NoError(err)
	s.Equal(1, stats.FollowersRefreshed)
	s.Equal(0, stats.FollowersDeferred)
	s.Equal(1, stats.Errors)
}

func (s *RefreshServiceTestSuite) TestRefresh_NilEventPublisher() {
	ctx := context.Background()

	service := NewRefreshService(
		s.catalog,
		s.games,
		s.streams,
		s.profiles,
		s.notifier,
		nil,
		s.logger,
		s.cfg,
	)

	s.games.EXPECT().ListTrackedGames(ctx).Return([]string{"g1"}, nil)
	s.catalog.EXPECT().GetGames(ctx, []string{"g1"}).Return([]domain.Game{{ID: "g1"}}, nil)
	s.games.EXPECT().UpsertGames(ctx, gomock.Any()).Return(nil)
	s.catalog.EXPECT().StreamsForGame(ctx, "g1", 100, []string{"en"}).Return([]domain.Stream{}, nil)
	s.streams.EXPECT().UpsertStreams(ctx, "g1", []domain.Stream{}).Return(nil)
	s.notifier.EXPECT().PublishGameUpdated("g1")

	s.profiles.EXPECT().ProfilesNeedingFollowerRefresh(ctx, 25).Return(nil, nil)
	s.streams.EXPECT().PurgeExpired(ctx).Return(int64(0), nil)

	stats, err := service.Refresh(ctx)

	s.NoError(err)
	s.Equal(0, stats.Published)
	s.Equal(0, stats.Errors)
}

func (s *RefreshServiceTestSuite) TestRefresh_PurgeFailureCounted() {
	ctx := context.Background()

	s.games.EXPECT().ListTrackedGames(ctx).Return([]string{"g1"}, nil)
	s.catalog.EXPECT().GetGames(ctx, []string{"g1"}).Return([]domain.Game{{ID: "g1"}}, nil)
	s.games.EXPECT().UpsertGames(ctx, gomock.Any()).Return(nil)
	s.catalog.EXPECT().StreamsForGame(ctx, "g1", 100, []string{"en"}).Return([]domain.Stream{}, nil)
	s.streams.EXPECT().UpsertStreams(ctx, "g1", []domain.Stream{}).Return(nil)
	s.notifier.EXPECT().PublishGameUpdated("g1")
	s.events.EXPECT().PublishGameUpdated(ctx, "g1").Return(nil)

	s.profiles.EXPECT().ProfilesNeedingFollowerRefresh(ctx, 25).Return(nil, nil)
	s.streams.EXPECT().PurgeExpired(ctx).Return(int64(0), errors.New("db down"))

	stats, err := s.service.Refresh(ctx)

	s.NoError(err)
	s.Equal(int64(0), stats.Purged)
	s.Equal(1, stats.Errors)
}
