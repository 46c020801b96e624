package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is read-only access to attendance records.
// All methods are scoped by businessID.
type AttendanceRepository interface {
	// ListByDate returns every record of the business dated on day.
	ListByDate(ctx context.Context, businessID string, day time.Time) ([]Record, error)

	// ListOverdueScheduled returns records dated on now's calendar day that are
	// still scheduled although their scheduled start has passed.
	ListOverdueScheduled(ctx context.Context, businessID string, now time.Time) ([]Record, error)
}
