package monitor

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/monitor"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/shift"
)

// Minutes above which an event is raised as a warning instead of info.
const (
	lateWarningMinutes     = 30
	overtimeWarningMinutes = 60
	breakWarningMinutes    = 20
)

// Evaluate checks one attendance record against the business settings and
// returns late arrival, overtime and break overrun findings. It reads no
// clock besides now and keeps no state between calls.
func Evaluate(r attendance.Record, settings notification.Settings, now time.Time) []notification.ViolationEvent {
	var events []notification.ViolationEvent

	if ev, ok := lateArrival(r, settings); ok {
		events = append(events, ev)
	}
	if ev, ok := overtime(r, settings); ok {
		events = append(events, ev)
	}
	if ev, ok := breakOverrun(r, settings, now); ok {
		events = append(events, ev)
	}

	return events
}

func lateArrival(r attendance.Record, settings notification.Settings) (notification.ViolationEvent, bool) {
	if r.ActualStart == nil || r.ScheduledStart == nil {
		return notification.ViolationEvent{}, false
	}
	threshold, enabled := settings.Threshold(notification.KeyLateArrival, monitor.DefaultLateArrivalMinutes)
	if !enabled {
		return notification.ViolationEvent{}, false
	}

	late := shift.MinutesBetween(*r.ScheduledStart, *r.ActualStart)
	if late < threshold {
		return notification.ViolationEvent{}, false
	}

	ev := newEvent(r, notification.TypeLateArrival, notification.CategoryAttendance)
	ev.Severity = severityAbove(late, lateWarningMinutes, notification.SeverityWarning, notification.SeverityInfo)
	ev.Title = "Late arrival"
	ev.Message = fmt.Sprintf("%s checked in %d minutes late at %s", r.EmployeeDisplayName(), late, r.BranchDisplayName())
	ev.Metadata["late_minutes"] = late
	ev.Metadata["threshold_minutes"] = threshold
	ev.Metadata["scheduled_start"] = r.ScheduledStart.Format(time.RFC3339)
	ev.Metadata["actual_start"] = r.ActualStart.Format(time.RFC3339)
	return ev, true
}

func overtime(r attendance.Record, settings notification.Settings) (notification.ViolationEvent, bool) {
	if r.ActualEnd == nil || r.ScheduledEnd == nil {
		return notification.ViolationEvent{}, false
	}
	threshold, enabled := settings.Threshold(notification.KeyOvertime, monitor.DefaultOvertimeMinutes)
	if !enabled {
		return notification.ViolationEvent{}, false
	}

	scheduledEnd := *r.ScheduledEnd
	if r.ScheduledStart != nil {
		scheduledEnd = shift.ScheduledEnd(*r.ScheduledStart, scheduledEnd)
	}

	extra := shift.MinutesBetween(scheduledEnd, *r.ActualEnd)
	if extra < threshold {
		return notification.ViolationEvent{}, false
	}

	ev := newEvent(r, notification.TypeOvertime, notification.CategoryOvertime)
	ev.Severity = severityAbove(extra, overtimeWarningMinutes, notification.SeverityWarning, notification.SeverityInfo)
	ev.Title = "Overtime"
	ev.Message = fmt.Sprintf("%s worked %d minutes past the scheduled end at %s", r.EmployeeDisplayName(), extra, r.BranchDisplayName())
	ev.Metadata["overtime_minutes"] = extra
	ev.Metadata["threshold_minutes"] = threshold
	ev.Metadata["scheduled_end"] = scheduledEnd.Format(time.RFC3339)
	ev.Metadata["actual_end"] = r.ActualEnd.Format(time.RFC3339)
	return ev, true
}

func breakOverrun(r attendance.Record, settings notification.Settings, now time.Time) (notification.ViolationEvent, bool) {
	if r.Status != attendance.StatusOnBreak || r.BreakStart == nil || r.ExpectedBreakDuration == nil {
		return notification.ViolationEvent{}, false
	}
	threshold, enabled := settings.Threshold(notification.KeyLongBreak, monitor.DefaultLongBreakMinutes)
	if !enabled {
		return notification.ViolationEvent{}, false
	}

	due := r.BreakStart.Add(time.Duration(*r.ExpectedBreakDuration) * time.Minute)
	if !now.After(due) {
		return notification.ViolationEvent{}, false
	}

	overdue := shift.MinutesBetween(due, now)
	if overdue < threshold {
		return notification.ViolationEvent{}, false
	}

	ev := newEvent(r, notification.TypeLongBreak, notification.CategoryBreak)
	ev.Severity = severityAbove(overdue, breakWarningMinutes, notification.SeverityWarning, notification.SeverityInfo)
	ev.Title = "Break overrun"
	ev.Message = fmt.Sprintf("%s is %d minutes over the %d minute break at %s",
		r.EmployeeDisplayName(), overdue, *r.ExpectedBreakDuration, r.BranchDisplayName())
	ev.Metadata["break_overdue_minutes"] = overdue
	ev.Metadata["expected_break_minutes"] = *r.ExpectedBreakDuration
	ev.Metadata["threshold_minutes"] = threshold
	ev.Metadata["break_start"] = r.BreakStart.Format(time.RFC3339)
	ev.Metadata["break_due"] = due.Format(time.RFC3339)
	return ev, true
}

func newEvent(r attendance.Record, t notification.NotificationType, c notification.Category) notification.ViolationEvent {
	metadata := map[string]interface{}{
		"attendance_id": r.ID,
		"employee_name": r.EmployeeDisplayName(),
		"branch_name":   r.BranchDisplayName(),
		"date":          r.Date.Format(shift.DateLayout),
	}
	return notification.ViolationEvent{
		BusinessID:   r.BusinessID,
		EmployeeID:   r.EmployeeID,
		BranchID:     r.BranchID,
		AttendanceID: r.ID,
		Type:         t,
		Category:     c,
		Metadata:     metadata,
		OccurredOn:   r.Date,
	}
}

// severityAbove returns high when minutes strictly exceeds limit.
func severityAbove(minutes, limit int, high, low notification.Severity) notification.Severity {
	if minutes > limit {
		return high
	}
	return low
}
