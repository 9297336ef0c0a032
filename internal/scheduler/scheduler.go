// Package scheduler runs the periodic release scan on the cron schedule
// stored in settings, and swaps the job when the schedule changes.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"relwatch/internal/logging"
	"relwatch/internal/service"
)

type Scheduler struct {
	cron    *cron.Cron
	monitor *service.Monitor
	jobID   cron.EntryID
}

// Start creates the cron runner in the given location, schedules the scan
// job and begins execution.
func Start(monitor *service.Monitor, cronExpr string, loc *time.Location) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		monitor: monitor,
	}
	id, err := s.cron.AddFunc(cronExpr, s.runScan)
	if err != nil {
		return nil, err
	}
	s.jobID = id
	s.cron.Start()
	logging.Logger.Infof("Scan job scheduled: %s", cronExpr)
	return s, nil
}

// Reschedule replaces the scan job with a new cron expression.
func (s *Scheduler) Reschedule(cronExpr string) error {
	id, err := s.cron.AddFunc(cronExpr, s.runScan)
	if err != nil {
		return err
	}
	s.cron.Remove(s.jobID)
	s.jobID = id
	logging.Logger.Infof("Scan job rescheduled: %s", cronExpr)
	return nil
}

// Stop halts the runner and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScan() {
	if err := s.monitor.Scan(context.Background(), service.ScanScheduled); err != nil {
		logging.Logger.Errorf("Scheduled scan failed: %v", err)
	}
}
