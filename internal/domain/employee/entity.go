package employee

import (
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

// DefaultWeeklyHours applies when an employee has no required hours on record.
var DefaultWeeklyHours = decimal.NewFromInt(40)

type Employee struct {
	ID                  string
	BusinessID          string
	FullName            string
	PhoneNumber         *string
	EmployeeType        EmployeeType
	WeeklyHoursRequired *decimal.Decimal
	Preferences         *Preferences
	Branches            []BranchAssignment
	IsActive            bool
	IsArchived          bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type EmployeeType string

const (
	EmployeeTypeRegular EmployeeType = "regular"
	EmployeeTypeOther   EmployeeType = "other"
)

// Preferences is the employee's default availability, stored as JSON.
type Preferences struct {
	PreferredShiftTypes []shift.ShiftType `json:"preferred_shift_types,omitempty"`
	AvailableDays       []int             `json:"available_days,omitempty"` // 0=Sunday..6=Saturday
}

// BranchAssignment links an employee to a branch, in priority order.
type BranchAssignment struct {
	BranchID   string
	BranchName string
	IsActive   bool
}

// Profile is an Employee with every optional field resolved to its default.
// Scoring only ever sees profiles.
type Profile struct {
	ID            string
	Name          string
	Phone         string
	Type          EmployeeType
	RequiredHours decimal.Decimal
	ShiftTypes    map[shift.ShiftType]bool
	AvailableDays [7]bool
	Branches      map[string]bool
}

// Profile applies the defaulting rules: both shift types, all seven days,
// 40 required hours and only active branch assignments. Unknown shift types
// and days outside 0..6 are ignored.
func (e Employee) Profile() Profile {
	p := Profile{
		ID:            e.ID,
		Name:          e.FullName,
		Type:          e.EmployeeType,
		RequiredHours: DefaultWeeklyHours,
		ShiftTypes:    make(map[shift.ShiftType]bool, 2),
		Branches:      make(map[string]bool, len(e.Branches)),
	}
	if e.PhoneNumber != nil {
		p.Phone = *e.PhoneNumber
	}
	if e.WeeklyHoursRequired != nil && e.WeeklyHoursRequired.IsPositive() {
		p.RequiredHours = *e.WeeklyHoursRequired
	}

	if e.Preferences != nil {
		for _, t := range e.Preferences.PreferredShiftTypes {
			if t == shift.ShiftTypeMorning || t == shift.ShiftTypeEvening {
				p.ShiftTypes[t] = true
			}
		}
	}
	if len(p.ShiftTypes) == 0 {
		for _, t := range shift.AllShiftTypes() {
			p.ShiftTypes[t] = true
		}
	}

	anyDay := false
	if e.Preferences != nil {
		for _, d := range e.Preferences.AvailableDays {
			if d >= 0 && d <= 6 {
				p.AvailableDays[d] = true
				anyDay = true
			}
		}
	}
	// Preferences that name no valid day fall back to every day.
	if !anyDay {
		for d := range p.AvailableDays {
			p.AvailableDays[d] = true
		}
	}

	for _, b := range e.Branches {
		if b.IsActive {
			p.Branches[b.BranchID] = true
		}
	}

	return p
}
