// Package scheduler runs the housekeeping jobs: idle game sessions are
// dropped and, when configured, old attempts are pruned.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

type SessionPruner interface {
	PruneIdle(ctx context.Context, ttl time.Duration) int
}

type AttemptPruner interface {
	PruneBefore(ctx context.Context, cutoff int64) (int, error)
}

type Config struct {
	SessionTTL    time.Duration
	RetentionDays int // 0 keeps attempts forever
}

type Scheduler struct {
	scheduler *gocron.Scheduler
	sessions  SessionPruner
	attempts  AttemptPruner
	cfg       Config
	log       *slog.Logger
	now       func() time.Time
}

func New(sessions SessionPruner, attempts AttemptPruner, cfg Config, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sessions:  sessions,
		attempts:  attempts,
		cfg:       cfg,
		log:       logger,
		now:       time.Now,
	}
}

// Start registers the jobs and runs them in the background.
func (s *Scheduler) Start() error {
	if s.cfg.SessionTTL > 0 {
		if _, err := s.scheduler.Every(1).Hour().Do(s.pruneSessions); err != nil {
			return err
		}
	}
	if s.cfg.RetentionDays > 0 && s.attempts != nil {
		if _, err := s.scheduler.Every(1).Day().At("03:00").Do(s.pruneAttempts); err != nil {
			return err
		}
	}
	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) pruneSessions() {
	if n := s.sessions.PruneIdle(context.Background(), s.cfg.SessionTTL); n > 0 {
		s.log.Info("pruned idle sessions", "count", n)
	}
}

func (s *Scheduler) pruneAttempts() {
	cutoff := s.now().AddDate(0, 0, -s.cfg.RetentionDays).UnixMilli()
	n, err := s.attempts.PruneBefore(context.Background(), cutoff)
	if err != nil {
		s.log.Error("prune attempts", "err", err)
		return
	}
	if n > 0 {
		s.log.Info("pruned old attempts", "count", n, "retention_days", s.cfg.RetentionDays)
	}
}
