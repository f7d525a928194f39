package engine

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ghatak0982/fleetcare/pkg/logger"
)

const defaultTickSpec = "@hourly"

// Scheduler drives the Runner from a cron tick. The tick fires more often
// than daily; the per-owner watermark inside the runner guarantees each owner
// is still evaluated at most once per calendar day.
type Scheduler struct {
	runner *Runner
	cron   *cron.Cron
	spec   string
	log    *zap.Logger
}

// SchedulerOption customises the Scheduler.
type SchedulerOption func(*Scheduler)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) SchedulerOption {
	return func(s *Scheduler) {
		if c != nil {
			s.cron = c
		}
	}
}

// WithTickSpec overrides the cron specification for evaluation ticks.
func WithTickSpec(spec string) SchedulerOption {
	return func(s *Scheduler) {
		if spec != "" {
			s.spec = spec
		}
	}
}

// NewScheduler constructs a Scheduler around the supplied runner.
func NewScheduler(runner *Runner, opts ...SchedulerOption) (*Scheduler, error) {
	if runner == nil {
		return nil, errors.New("scheduler: runner is required")
	}

	s := &Scheduler{
		runner: runner,
		spec:   defaultTickSpec,
		log:    logger.WithModule("scheduler"),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cron == nil {
		s.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return s, nil
}

// Start registers the evaluation job and launches the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		summary, err := s.runner.RunPass(context.Background())
		if err != nil {
			s.log.Warn("evaluation pass completed with failures",
				zap.Int("owners_due", summary.OwnersDue),
				zap.Int("owners_processed", summary.OwnersProcessed),
				zap.Int("notifications_created", summary.NotificationsCreated),
				zap.Int("failures", summary.Failures),
				zap.Error(err),
			)
			return
		}

		s.log.Info("evaluation pass completed",
			zap.Int("owners_due", summary.OwnersDue),
			zap.Int("owners_processed", summary.OwnersProcessed),
			zap.Int("notifications_created", summary.NotificationsCreated),
		)
	}); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts the cron loop, waiting for any running pass to complete.
func (s *Scheduler) Stop() context.Context {
	if s.cron == nil {
		return context.Background()
	}
	return s.cron.Stop()
}

// RunOnce executes a single evaluation pass outside the cron loop. Used by
// the admin trigger endpoint and in tests.
func (s *Scheduler) RunOnce(ctx context.Context) (Summary, error) {
	return s.runner.RunPass(ctx)
}
