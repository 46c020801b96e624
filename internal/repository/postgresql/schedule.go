package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) shift.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// WeeklyHoursByEmployee sums already assigned shift hours in the week starting
// at weekStart. Shifts ending before they start run past midnight.
func (r *scheduleRepository) WeeklyHoursByEmployee(ctx context.Context, businessID string, weekStart time.Time) (map[string]decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	start := weekStart.Format(shift.DateLayout)
	end := weekStart.AddDate(0, 0, 7).Format(shift.DateLayout)

	rows, err := q.Query(ctx, `
		SELECT employee_id,
			SUM(
				CASE WHEN end_time >= start_time
					THEN EXTRACT(EPOCH FROM (end_time - start_time))
					ELSE EXTRACT(EPOCH FROM (end_time - start_time)) + 86400
				END
			) / 3600.0
		FROM employee_shifts
		WHERE business_id = $1 AND shift_date >= $2::date AND shift_date < $3::date
		GROUP BY employee_id
	`, businessID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum weekly hours: %w", err)
	}
	defer rows.Close()

	hours := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			employeeID string
			total      decimal.Decimal
		)
		if err := rows.Scan(&employeeID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan weekly hours: %w", err)
		}
		hours[employeeID] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weekly hours: %w", err)
	}
	return hours, nil
}
