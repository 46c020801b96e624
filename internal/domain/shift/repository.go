package shift

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SubmissionRepository interface {
	// ListRecent returns the newest submissions of a business, newest first.
	ListRecent(ctx context.Context, businessID string, limit int) ([]Submission, error)
}

type ScheduleRepository interface {
	// WeeklyHoursByEmployee sums assigned shift hours per employee for the
	// week starting at weekStart. Employees without assignments are absent.
	WeeklyHoursByEmployee(ctx context.Context, businessID string, weekStart time.Time) (map[string]decimal.Decimal, error)
}
