package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron     *cron.Cron
	jobs     *Jobs
	schedule string
	logger   zerolog.Logger
}

// NewScheduler wraps every job with panic recovery and skips a run while the
// previous one is still going.
func NewScheduler(jobs *Jobs, schedule string, logger zerolog.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(&logger)
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))
	return &Scheduler{cron: c, jobs: jobs, schedule: schedule, logger: logger}
}

// Register adds the jobs without starting the scheduler.
func (s *Scheduler) Register() error {
	if _, err := s.cron.AddFunc(s.schedule, s.jobs.ExpireCampaigns); err != nil {
		return fmt.Errorf("schedule campaign expiry %q: %w", s.schedule, err)
	}
	if _, err := s.cron.AddFunc(s.schedule, s.jobs.ExpirePendingDonations); err != nil {
		return fmt.Errorf("schedule pending donation expiry %q: %w", s.schedule, err)
	}
	s.logger.Info().Str("schedule", s.schedule).Int("jobs", len(s.cron.Entries())).Msg("jobs scheduled")
	return nil
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() error {
	if err := s.Register(); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the scheduler; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
