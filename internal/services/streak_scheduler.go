package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StreakRefresher recomputes the user's streak from task history.
type StreakRefresher interface {
	RefreshStreak(ctx context.Context) (int, error)
}

// StreakScheduler refreshes the streak on a cron schedule so a day without
// completions resets it even when no task is toggled.
type StreakScheduler struct {
	refresher StreakRefresher
	logger    *zap.Logger
	cron      *cron.Cron
	timeout   time.Duration
}

// NewStreakScheduler parses schedule (standard cron syntax or descriptors such as @daily).
func NewStreakScheduler(refresher StreakRefresher, schedule string, timeout time.Duration, logger *zap.Logger) (*StreakScheduler, error) {
	if schedule == "" {
		schedule = "@daily"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &StreakScheduler{
		refresher: refresher,
		logger:    logger,
		cron:      cron.New(),
		timeout:   timeout,
	}
	if _, err := s.cron.AddFunc(schedule, s.Run); err != nil {
		return nil, err
	}
	return s, nil
}

// Run performs one refresh.
func (s *StreakScheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	streak, err := s.refresher.RefreshStreak(ctx)
	if err != nil {
		s.logger.Error("streak refresh failed", zap.Error(err))
		return
	}
	s.logger.Debug("streak refreshed", zap.Int("streak", streak))
}

// Start launches the cron scheduler.
func (s *StreakScheduler) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("streak scheduler started")
}

// Stop waits for a running refresh or for ctx, whichever ends first.
func (s *StreakScheduler) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("streak scheduler stopped")
}
