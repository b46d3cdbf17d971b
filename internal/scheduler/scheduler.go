package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"streamwatch/internal/domain"
)

// Refresher defines the interface for refresh operations.
type Refresher interface {
	Refresh(ctx context.Context) (*domain.RefreshStats, error)
}

const (
	StateIdle    = "idle"
	StateTicking = "ticking"
)

type Scheduler struct {
	refresher Refresher
	interval  time.Duration
	logger    *slog.Logger

	// Overridden in tests.
	startDelay  time.Duration
	tickTimeout time.Duration

	mu        sync.Mutex
	state     string
	lastRunAt time.Time
	lastStats *domain.RefreshStats
}

func NewScheduler(refresher Refresher, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		refresher:   refresher,
		interval:    interval,
		logger:      logger,
		startDelay:  time.Second,
		tickTimeout: 10 * time.Minute,
		state:       StateIdle,
	}
}

// Start runs refresh passes every interval, measured start to start, until
// ctx is canceled. A pass that outlasts the interval is followed by the next
// one immediately. Cancellation is observed between passes, never mid-pass.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	select {
	case <-ctx.Done():
		s.logger.Info("scheduler stopped")
		return ctx.Err()
	case <-time.After(s.startDelay):
	}

	for {
		started := time.Now()
		s.runRefresh()

		sleep := s.interval - time.Since(started)
		if sleep < 0 {
			sleep = 0
		}

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-time.After(sleep):
		}
	}
}

// runRefresh executes one pass on its own timeout, so a canceled loop
// context never interrupts in-flight work.
func (s *Scheduler) runRefresh() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("refresh panicked", "panic", r)
		}
		s.setState(StateIdle)
	}()
	s.setState(StateTicking)

	ctx, cancel := context.WithTimeout(context.Background(), s.tickTimeout)
	defer cancel()

	stats, err := s.refresher.Refresh(ctx)

	s.mu.Lock()
	s.lastRunAt = time.Now()
	if stats != nil {
		s.lastStats = stats
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("refresh failed", "error", err)
	}
}

func (s *Scheduler) setState(state string) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// State reports whether a refresh pass is currently running.
func (s *Scheduler) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastRun returns when the latest pass finished and its stats; zero values
// before the first pass completes.
func (s *Scheduler) LastRun() (time.Time, *domain.RefreshStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunAt, s.lastStats
}
