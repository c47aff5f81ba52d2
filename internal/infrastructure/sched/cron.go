// Package sched wraps robfig/cron behind the small scheduling capability the
// alert engine composes.
package sched

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Scheduler registers cron-style callbacks and owns the shared cron runner
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates a started scheduler
func NewScheduler() *Scheduler {
	c := cron.New()
	c.Start()
	return &Scheduler{cron: c}
}

// Register adds a callback under a cron expression and returns its handle
func (s *Scheduler) Register(expr string, fn func()) (int, error) {
	id, err := s.cron.AddFunc(expr, fn)
	if err != nil {
		return 0, fmt.Errorf("cron.AddFunc: %w", err)
	}
	return int(id), nil
}

// Cancel removes a registered schedule
func (s *Scheduler) Cancel(id int) {
	s.cron.Remove(cron.EntryID(id))
}

// Stop stops the underlying runner; running callbacks finish on their own
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
