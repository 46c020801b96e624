package attendance

import (
	"time"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusCheckedIn  Status = "checked_in"
	StatusOnBreak    Status = "on_break"
	StatusCompleted  Status = "completed"
	StatusAbsent     Status = "absent"
	StatusAutoClosed Status = "auto_closed"
)

// Record is one employee's attendance for one shift day. It is written by
// check-in/out flows elsewhere and only read here.
type Record struct {
	ID                    string
	BusinessID            string
	EmployeeID            string
	BranchID              *string
	Date                  time.Time
	ScheduledStart        *time.Time
	ScheduledEnd          *time.Time
	ActualStart           *time.Time
	ActualEnd             *time.Time
	BreakStart            *time.Time
	BreakEnd              *time.Time
	ExpectedBreakDuration *int // minutes
	Status                Status
	LateMinutes           *int
	OvertimeMinutes       *int
	BreakOverdueMinutes   *int
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// Join
	EmployeeName *string
	BranchName   *string
}

func (r Record) EmployeeDisplayName() string {
	if r.EmployeeName != nil && *r.EmployeeName != "" {
		return *r.EmployeeName
	}
	return "Employee"
}

func (r Record) BranchDisplayName() string {
	if r.BranchName != nil && *r.BranchName != "" {
		return *r.BranchName
	}
	return "branch"
}

// SameDay reports whether the record's date is the calendar day of t in t's location.
func (r Record) SameDay(t time.Time) bool {
	y, m, d := t.Date()
	ry, rm, rd := r.Date.Date()
	return y == ry && m == rm && d == rd
}
