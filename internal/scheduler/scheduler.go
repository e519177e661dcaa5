package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"SectorFlow/internal/model"
)

// Runner performs one dashboard build.
type Runner interface {
	Run(ctx context.Context) (*model.DashboardSnapshot, error)
}

// Scheduler triggers dashboard builds on a cron schedule. Builds never
// overlap: a trigger that fires while one is in flight is dropped.
type Scheduler struct {
	Cron   *cron.Cron
	Runner Runner
	Ctx    context.Context
	Log    *slog.Logger

	mu sync.Mutex
}

// NewScheduler creates a Scheduler with a seconds-field cron parser.
func NewScheduler(ctx context.Context, r Runner, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "scheduler")
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds(), cron.WithLogger(cronLogger{logger})),
		Runner: r,
		Ctx:    ctx,
		Log:    logger,
	}
}

// Register adds the update task under expr, a six-field cron expression.
func (s *Scheduler) Register(expr string) error {
	if _, err := s.Cron.AddFunc(expr, s.update); err != nil {
		return fmt.Errorf("register update task: %w", err)
	}
	s.Log.Info("update task registered", "cron", expr)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started")
}

// Stop stops the scheduler and waits for a running build to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info("scheduler stopped")
}

// RunNow executes a build immediately (manual trigger / RUN_ON_START). It
// reports false when another build was already in flight.
func (s *Scheduler) RunNow() bool {
	return s.update()
}

func (s *Scheduler) update() bool {
	if !s.mu.TryLock() {
		s.Log.Warn("update already running, skipping trigger")
		return false
	}
	defer s.mu.Unlock()

	s.Log.Info("running update task")
	if _, err := s.Runner.Run(s.Ctx); err != nil {
		s.Log.Error("update task failed", "error", err)
	}
	return true
}

// cronLogger routes cron's internal logging through slog.
type cronLogger struct{ l *slog.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, append(keysAndValues, "error", err)...)
}
