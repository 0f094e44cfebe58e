// Package scheduler drives recurring scan cycles off a cron spec.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs the screener on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

// Register schedules fn under the given cron spec. Standard five-field
// specs and descriptors like "@every 1m" are accepted.
func (s *Scheduler) Register(spec string, fn func(context.Context)) error {
	_, err := s.cron.AddFunc(spec, func() {
		fn(context.Background())
	})
	return err
}

// Start begins firing registered jobs in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}
