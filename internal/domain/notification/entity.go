package notification

import (
	"fmt"
	"time"
)

// NotificationType identifies the kind of violation a notification reports.
type NotificationType string

const (
	TypeLateArrival    NotificationType = "late_arrival"
	TypeOvertime       NotificationType = "overtime"
	TypeLongBreak      NotificationType = "long_break"
	TypeMissingCheckIn NotificationType = "missing_checkin"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeLateArrival,
		TypeOvertime,
		TypeLongBreak,
		TypeMissingCheckIn,
	}
}

type Category string

const (
	CategoryAttendance Category = "attendance"
	CategoryOvertime   Category = "overtime"
	CategoryBreak      Category = "break"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Rank orders severities from info (1) to critical (4). Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityError:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// ViolationEvent is a transient finding that an attendance threshold was
// crossed. It is never stored as is; dispatch expands it into one
// Notification per recipient.
type ViolationEvent struct {
	BusinessID     string
	EmployeeID     string
	BranchID       *string
	AttendanceID   string
	Type           NotificationType
	Category       Category
	Title          string
	Message        string
	Severity       Severity
	RequiresAction bool
	Metadata       map[string]interface{}
	OccurredOn     time.Time // attendance day
}

// DedupKey identifies one occurrence of a violation. Severity is part of the
// key so an escalation is reported again.
func (e ViolationEvent) DedupKey() string {
	return fmt.Sprintf("violation:%s:%s:%s:%s:%s",
		e.BusinessID,
		e.EmployeeID,
		e.Type,
		e.OccurredOn.Format("2006-01-02"),
		e.Severity,
	)
}

// Notification represents a notification entity
type Notification struct {
	ID             string
	BusinessID     string
	RecipientID    string
	EmployeeID     *string
	BranchID       *string
	Type           NotificationType
	Category       Category
	Severity       Severity
	Title          string
	Message        string
	RequiresAction bool
	Data           map[string]interface{}
	IsRead         bool
	ReadAt         *time.Time
	CreatedAt      time.Time
}
