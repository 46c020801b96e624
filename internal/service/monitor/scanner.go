package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/monitor"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/shift"
)

const missingCheckInErrorMinutes = 30

// Scanner finds scheduled shifts that started without a check-in.
type Scanner struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewScanner(attendanceRepo attendance.AttendanceRepository) *Scanner {
	return &Scanner{attendanceRepo: attendanceRepo}
}

// Scan returns one missing check-in event per overdue record of the business.
// now should be in the business's timezone so "today" matches its calendar.
func (s *Scanner) Scan(ctx context.Context, businessID string, settings notification.Settings, now time.Time) ([]notification.ViolationEvent, error) {
	threshold, enabled := settings.Threshold(notification.KeyMissingCheckIn, monitor.DefaultMissingCheckInMinutes)
	if !enabled {
		return nil, nil
	}

	records, err := s.attendanceRepo.ListOverdueScheduled(ctx, businessID, now)
	if err != nil {
		return nil, fmt.Errorf("list overdue attendance: %w", err)
	}

	var events []notification.ViolationEvent
	for _, r := range records {
		if ev, ok := missingCheckIn(r, threshold, now); ok {
			events = append(events, ev)
		}
	}
	return events, nil
}

func missingCheckIn(r attendance.Record, threshold int, now time.Time) (notification.ViolationEvent, bool) {
	if r.Status != attendance.StatusScheduled || r.ScheduledStart == nil {
		return notification.ViolationEvent{}, false
	}
	if !r.ScheduledStart.Before(now) || !r.SameDay(now) {
		return notification.ViolationEvent{}, false
	}

	missed := shift.MinutesBetween(*r.ScheduledStart, now)
	if missed < threshold {
		return notification.ViolationEvent{}, false
	}

	ev := newEvent(r, notification.TypeMissingCheckIn, notification.CategoryAttendance)
	ev.Severity = severityAbove(missed, missingCheckInErrorMinutes, notification.SeverityError, notification.SeverityWarning)
	ev.RequiresAction = true
	ev.Title = "Missing check-in"
	ev.Message = fmt.Sprintf("%s has not checked in at %s, shift started %d minutes ago",
		r.EmployeeDisplayName(), r.BranchDisplayName(), missed)
	ev.Metadata["missed_minutes"] = missed
	ev.Metadata["threshold_minutes"] = threshold
	ev.Metadata["scheduled_start"] = r.ScheduledStart.Format(time.RFC3339)
	ev.Metadata["checked_at"] = now.Format(time.RFC3339)
	return ev, true
}
