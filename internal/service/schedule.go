package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"relwatch/internal/models"
)

const scanTimeLayout = "Jan 02 2006 3:04 PM"

// NowScanLabel stamps the current time in the stored last-scan format.
func NowScanLabel() string {
	return time.Now().Format(scanTimeLayout)
}

// ScanStatus computes the humanized last/next scan labels from the stored
// settings.
func ScanStatus(ctx context.Context, settings SettingsStore) (models.ScanStatus, error) {
	s, err := settings.Get(ctx)
	if err != nil {
		return models.ScanStatus{}, err
	}
	return models.ScanStatus{
		LastScan: formatLastScan(s.LastScan, time.Now()),
		NextScan: NextScanLabel(s.CronSchedule, time.Now()),
	}, nil
}

// NextScanLabel evaluates the cron expression against now and humanizes the
// next fire time.
func NextScanLabel(cronExpr string, now time.Time) string {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return "Invalid cron expression"
	}
	next := schedule.Next(now)
	switch {
	case sameDay(next, now):
		return "Today at " + next.Format("3:04 PM")
	case sameDay(next, now.AddDate(0, 0, 1)):
		return "Tomorrow at " + next.Format("3:04 PM")
	default:
		return next.Format("Jan 02 at 3:04 PM")
	}
}

func formatLastScan(lastScan string, now time.Time) string {
	if lastScan == "" {
		return "No scan performed yet"
	}
	t, err := time.Parse(scanTimeLayout, lastScan)
	if err != nil {
		return lastScan
	}
	switch {
	case sameDay(t, now):
		return "Today at " + t.Format("3:04 PM")
	case sameDay(t, now.AddDate(0, 0, -1)):
		return "Yesterday at " + t.Format("3:04 PM")
	default:
		return t.Format("Jan 02 at 3:04 PM")
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
