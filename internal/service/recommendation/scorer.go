package recommendation

import (
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/recommendation"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

const (
	generalBranchFactor = 0.6
	normalHoursFactor   = 0.67
	regularBonus        = 5
)

var (
	hoursTolerance = decimal.NewFromInt(5)
	minutesPerHour = decimal.NewFromInt(60)
)

// Score rates one employee for one candidate shift. It is a pure function of
// its arguments; hours maps employee id to hours already scheduled that week.
func Score(p employee.Profile, c shift.Candidate, w recommendation.ScoreWeights, hours map[string]decimal.Decimal) recommendation.EmployeeRecommendation {
	rec := recommendation.EmployeeRecommendation{
		EmployeeID: p.ID,
		Name:       p.Name,
		Phone:      p.Phone,
		Reasons:    []string{},
		Warnings:   []string{},
	}
	var total float64

	shiftType := c.Type()
	if p.ShiftTypes[shiftType] {
		total += w.ShiftType
		rec.ShiftTypeMatch = true
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("Prefers %s shifts", shiftType))
	} else {
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("Does not prefer %s shifts", shiftType))
	}

	branch := c.BranchName
	if branch == "" {
		branch = c.BranchID
	}
	switch {
	case p.Branches[c.BranchID]:
		total += w.BranchAssignment
		rec.BranchMatch = true
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("Assigned to %s", branch))
	case c.General:
		total += math.Round(generalBranchFactor * w.BranchAssignment)
		rec.Reasons = append(rec.Reasons, "General shift, open to any branch")
	default:
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("Not assigned to %s", branch))
	}

	day := time.Weekday(c.Weekday())
	if p.AvailableDays[c.Weekday()] {
		total += w.DayAvailability
		rec.AvailabilityMatch = true
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("Available on %s", day))
	} else {
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("Not available on %s", day))
	}

	current := hours[p.ID]
	projected := current.Add(decimal.NewFromInt(int64(c.Window.Duration())).Div(minutesPerHour))
	required := p.RequiredHours
	switch {
	case projected.LessThan(required):
		total += w.WeeklyHours
		rec.WeeklyHoursStatus = recommendation.WeeklyHoursUnder
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("Needs %s more this week", formatHours(required.Sub(projected))))
	case projected.LessThanOrEqual(required.Add(hoursTolerance)):
		total += math.Round(normalHoursFactor * w.WeeklyHours)
		rec.WeeklyHoursStatus = recommendation.WeeklyHoursNormal
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("Weekly hours on target (%s of %s)", formatHours(projected), formatHours(required)))
	default:
		rec.WeeklyHoursStatus = recommendation.WeeklyHoursOver
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("Would exceed required hours by %s", formatHours(projected.Sub(required))))
	}

	if p.Type == employee.EmployeeTypeRegular {
		total += regularBonus
		rec.Reasons = append(rec.Reasons, "Regular employee")
	}

	rec.Score = clampScore(total)
	rec.IsHighPriority = rec.Score >= recommendation.HighPriorityScore && len(rec.Warnings) <= 1
	return rec
}

func clampScore(total float64) int {
	score := int(math.Round(total))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// formatHours renders hours with at most one decimal, e.g. "7.5h".
func formatHours(h decimal.Decimal) string {
	return h.Round(1).String() + "h"
}
