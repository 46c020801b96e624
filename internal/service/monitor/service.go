package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/business"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/monitor"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
	"golang.org/x/sync/errgroup"
)

// Config holds monitor tuning.
type Config struct {
	Concurrency int           // businesses evaluated at once, default: 4
	Cooldown    time.Duration // dedup window per violation, default: 24h
}

type service struct {
	businessRepo   business.BusinessRepository
	attendanceRepo attendance.AttendanceRepository
	settingRepo    notification.SettingRepository
	recipients     notification.RecipientDirectory
	dispatcher     notification.Dispatcher
	cooldown       notification.CooldownStore
	scanner        *Scanner
	config         Config
}

func NewMonitorService(
	businessRepo business.BusinessRepository,
	attendanceRepo attendance.AttendanceRepository,
	settingRepo notification.SettingRepository,
	recipients notification.RecipientDirectory,
	dispatcher notification.Dispatcher,
	cooldown notification.CooldownStore,
	cfg Config,
) monitor.MonitorService {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 4
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 24 * time.Hour
	}
	return &service{
		businessRepo:   businessRepo,
		attendanceRepo: attendanceRepo,
		settingRepo:    settingRepo,
		recipients:     recipients,
		dispatcher:     dispatcher,
		cooldown:       cooldown,
		scanner:        NewScanner(attendanceRepo),
		config:         cfg,
	}
}

// Run implements monitor.MonitorService. A business that fails is recorded in
// the report and does not stop the others.
func (s *service) Run(ctx context.Context, now time.Time) (monitor.RunReport, error) {
	report := monitor.RunReport{StartedAt: now}

	businesses, err := s.businessRepo.ListActive(ctx)
	if err != nil {
		return report, fmt.Errorf("list businesses: %w", err)
	}

	results := make([]monitor.BusinessResult, len(businesses))
	var g errgroup.Group
	g.SetLimit(s.config.Concurrency)

	for i, b := range businesses {
		g.Go(func() error {
			result, err := s.evaluateBusiness(ctx, b, now)
			if err != nil {
				slog.Error("Monitor: business evaluation failed",
					"business_id", b.ID,
					"error", err)
				result.Error = err.Error()
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	report.Results = results
	report.Businesses = len(results)
	for _, r := range results {
		if r.Error != "" {
			report.Failed++
		}
		report.Events += r.Events
		report.Suppressed += r.Suppressed
		report.Notifications += r.Notifications
	}
	report.FinishedAt = time.Now()

	return report, nil
}

// RunBusiness implements monitor.MonitorService.
func (s *service) RunBusiness(ctx context.Context, businessID string, now time.Time) (monitor.BusinessResult, error) {
	b, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return monitor.BusinessResult{BusinessID: businessID}, err
	}
	return s.evaluateBusiness(ctx, b, now)
}

func (s *service) evaluateBusiness(ctx context.Context, b business.Business, now time.Time) (monitor.BusinessResult, error) {
	result := monitor.BusinessResult{BusinessID: b.ID}
	local := now.In(b.Location())

	list, err := s.settingRepo.ListEnabled(ctx, b.ID)
	if err != nil {
		return result, fmt.Errorf("load notification settings: %w", err)
	}
	settings := notification.NewSettings(list)
	if !settings.AnyEnabled() {
		result.Skipped = true
		return result, nil
	}

	records, err := s.attendanceRepo.ListByDate(ctx, b.ID, local)
	if err != nil {
		return result, fmt.Errorf("load attendance: %w", err)
	}
	result.Records = len(records)

	var events []notification.ViolationEvent
	for _, r := range records {
		events = append(events, Evaluate(r, settings, local)...)
	}

	missing, err := s.scanner.Scan(ctx, b.ID, settings, local)
	if err != nil {
		return result, err
	}
	events = append(events, missing...)
	result.Events = len(events)
	if len(events) == 0 {
		return result, nil
	}

	recipients, err := s.recipients.ListManagersAndSuperAdmins(ctx, b.ID)
	if err != nil {
		return result, fmt.Errorf("load recipients: %w", err)
	}
	if len(recipients) == 0 {
		slog.Warn("Monitor: no recipients for business", "business_id", b.ID, "events", len(events))
		return result, nil
	}

	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		key := ev.DedupKey()
		if !s.acquire(ctx, key) {
			result.Suppressed++
			continue
		}

		n, err := s.dispatcher.Dispatch(ctx, ev, recipients)
		if err != nil {
			if relErr := s.cooldown.Release(ctx, key); relErr != nil {
				slog.Warn("Monitor: failed to release cooldown", "key", key, "error", relErr)
			}
			return result, fmt.Errorf("dispatch %s for employee %s: %w", ev.Type, ev.EmployeeID, err)
		}
		result.Notifications += n
	}

	return result, nil
}

// acquire reports whether the violation should be sent. Store failures fail
// open so a cooldown outage never hides a violation.
func (s *service) acquire(ctx context.Context, key string) bool {
	ok, err := s.cooldown.Acquire(ctx, key, s.config.Cooldown)
	if err != nil {
		slog.Warn("Monitor: cooldown store unavailable, notifying anyway", "key", key, "error", err)
		return true
	}
	return ok
}
