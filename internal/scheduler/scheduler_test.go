package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"streamwatch/internal/domain"
)

type fakeRefresher struct {
	mu    sync.Mutex
	calls int

	// refresh runs with the call number (1-based); nil means instant success.
	refresh func(n int) (*domain.RefreshStats, error)
}

func (f *fakeRefresher) Refresh(ctx context.Context) (*domain.RefreshStats, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	fn := f.refresh
	f.mu.Unlock()

	if fn == nil {
		return &domain.RefreshStats{}, nil
	}
	return fn(n)
}

func (f *fakeRefresher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type SchedulerTestSuite struct {
	suite.Suite
	logger *slog.Logger
}

func (s *SchedulerTestSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func (s *SchedulerTestSuite) newScheduler(r Refresher, interval time.Duration) *Scheduler {
	sched := NewScheduler(r, interval, s.logger)
	sched.startDelay = time.Millisecond
	sched.tickTimeout = time.Second
	return sched
}

func (s *SchedulerTestSuite) start(sched *Scheduler) (cancel func(), done chan error) {
	ctx, cancelCtx := context.WithCancel(context.Background())
	done = make(chan error, 1)
	go func() {
		done <- sched.Start(ctx)
	}()
	return cancelCtx, done
}

func (s *SchedulerTestSuite) TestRunsPeriodically() {
	refresher := &fakeRefresher{}
	sched := s.newScheduler(refresher, 10*time.Millisecond)

	cancel, done := s.start(sched)

	s.Require().Eventually(func() bool { return refresher.callCount() >= 3 }, time.Second, time.Millisecond)

	cancel()
	s.ErrorIs(<-done, context.Canceled)
}

func (s *SchedulerTestSuite) TestCancelBeforeFirstTick() {
	refresher := &fakeRefresher{}
	sched := NewScheduler(refresher, time.Minute, s.logger)
	sched.startDelay = time.Hour

	cancel, done := s.start(sched)
	cancel()

	s.ErrorIs(<-done, context.Canceled)
	s.Equal(0, refresher.callCount())
}

func (s *SchedulerTestSuite) TestErrorDoesNotStopLoop() {
	refresher := &fakeRefresher{
		refresh: func(int) (*domain.RefreshStats, error) {
			return nil, errors.New("remote service down")
		},
	}
	sched := s.newScheduler(refresher, 10*time.Millisecond)

	cancel, done := s.start(sched)
	defer func() { cancel(); <-done }()

	s.Require().Eventually(func() bool { return refresher.callCount() >= 2 }, time.Second, time.Millisecond)
}

func (s *SchedulerTestSuite) TestPanicIsSwallowed() {
	refresher := &fakeRefresher{
		refresh: func(int) (*domain.RefreshStats, error) {
			panic("boom")
		},
	}
	sched := s.newScheduler(refresher, 10*time.Millisecond)

	cancel, done := s.start(sched)
	defer func() { cancel(); <-done }()

	s.Require().Eventually(func() bool { return refresher.callCount() >= 2 }, time.Second, time.Millisecond)
	s.Equal(StateIdle, sched.State())
}

func (s *SchedulerTestSuite) TestStateReflectsRunningTick() {
	release := make(chan struct{})
	refresher := &fakeRefresher{
		refresh: func(n int) (*domain.RefreshStats, error) {
			if n == 1 {
				<-release
			}
			return &domain.RefreshStats{}, nil
		},
	}
	sched := s.newScheduler(refresher, time.Minute)

	cancel, done := s.start(sched)
	defer func() { cancel(); <-done }()

	s.Require().Eventually(func() bool { return sched.State() == StateTicking }, time.Second, time.Millisecond)

	close(release)
	s.Require().Eventually(func() bool { return sched.State() == StateIdle }, time.Second, time.Millisecond)
}

func (s *SchedulerTestSuite) TestLastRunRecorded() {
	stats := &domain.RefreshStats{Tracked: 2, Streams: 7}
	refresher := &fakeRefresher{
		refresh: func(int) (*domain.RefreshStats, error) {
			return stats, nil
		},
	}
	sched := s.newScheduler(refresher, time.Minute)

	before := time.Now()
	cancel, done := s.start(sched)
	defer func() { cancel(); <-done }()

	s.Require().Eventually(func() bool { return refresher.callCount() >= 1 }, time.Second, time.Millisecond)
	s.Require().Eventually(func() bool {
		at, got := sched.LastRun()
		return !at.IsZero() && got != nil
	}, time.Second, time.Millisecond)

	at, got := sched.LastRun()
	s.False(at.Before(before))
	s.Equal(stats, got)
}

func (s *SchedulerTestSuite) TestSlowTickSkipsSleep() {
	refresher := &fakeRefresher{
		refresh: func(int) (*domain.RefreshStats, error) {
			time.Sleep(25 * time.Millisecond)
			return &domain.RefreshStats{}, nil
		},
	}
	// Each tick outlasts the interval, so passes should run back to back.
	sched := s.newScheduler(refresher, 10*time.Millisecond)

	cancel, done := s.start(sched)
	defer func() { cancel(); <-done }()

	s.Require().Eventually(func() bool { return refresher.callCount() >= 3 }, time.Second, time.Millisecond)
}
