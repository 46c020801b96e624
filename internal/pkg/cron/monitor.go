package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/monitor"
)

// Sweeper prunes expired state between runs.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// MonitorJobs schedules the attendance-violation monitor.
type MonitorJobs struct {
	monitorSvc monitor.MonitorService
	sweeper    Sweeper
	now        func() time.Time
}

func NewMonitorJobs(monitorSvc monitor.MonitorService, sweeper Sweeper) *MonitorJobs {
	return &MonitorJobs{
		monitorSvc: monitorSvc,
		sweeper:    sweeper,
		now:        time.Now,
	}
}

func (j *MonitorJobs) RegisterJobs(scheduler *Scheduler, interval, timeout time.Duration) {
	scheduler.Add(Job{
		Name:     "attendance_violation_monitor",
		Interval: interval,
		Timeout:  timeout,
		Fn:       j.CheckAttendanceViolations,
	})
	if j.sweeper != nil {
		scheduler.AddJob("violation_cooldown_sweep", time.Hour, j.SweepCooldowns)
	}
}

func (j *MonitorJobs) CheckAttendanceViolations(ctx context.Context) error {
	report, err := j.monitorSvc.Run(ctx, j.now())
	if err != nil {
		return fmt.Errorf("monitor run: %w", err)
	}

	slog.Info("Cron: Attendance monitor finished",
		"businesses", report.Businesses,
		"failed", report.Failed,
		"events", report.Events,
		"suppressed", report.Suppressed,
		"notifications", report.Notifications,
		"duration", report.FinishedAt.Sub(report.StartedAt))
	return nil
}

func (j *MonitorJobs) SweepCooldowns(ctx context.Context) error {
	removed, err := j.sweeper.Sweep(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		slog.Debug("Cron: Swept violation cooldowns", "removed", removed)
	}
	return nil
}
