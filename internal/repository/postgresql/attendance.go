package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceSelect = `
	SELECT a.id, a.business_id, a.employee_id, a.branch_id, a.date,
		a.scheduled_start, a.scheduled_end, a.actual_start, a.actual_end,
		a.break_start, a.break_end, a.expected_break_duration, a.status,
		a.late_minutes, a.overtime_minutes, a.break_overdue_minutes,
		a.created_at, a.updated_at, e.full_name, b.name
	FROM attendance_records a
	LEFT JOIN employees e ON e.id = a.employee_id
	LEFT JOIN branches b ON b.id = a.branch_id
`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, businessID string, day time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, attendanceSelect+`
		WHERE a.business_id = $1 AND a.date = $2::date
		ORDER BY a.scheduled_start NULLS LAST, a.id
	`, businessID, day.Format(shift.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	records, err := pgx.CollectRows(rows, scanAttendance)
	if err != nil {
		return nil, fmt.Errorf("failed to scan attendance: %w", err)
	}
	return records, nil
}

// ListOverdueScheduled implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOverdueScheduled(ctx context.Context, businessID string, now time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, attendanceSelect+`
		WHERE a.business_id = $1
		  AND a.date = $2::date
		  AND a.status = $3
		  AND a.scheduled_start < $4
		ORDER BY a.scheduled_start, a.id
	`, businessID, now.Format(shift.DateLayout), string(attendance.StatusScheduled), now)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue attendance: %w", err)
	}

	records, err := pgx.CollectRows(rows, scanAttendance)
	if err != nil {
		return nil, fmt.Errorf("failed to scan overdue attendance: %w", err)
	}
	return records, nil
}

func scanAttendance(row pgx.CollectableRow) (attendance.Record, error) {
	var (
		r      attendance.Record
		status string
	)
	err := row.Scan(
		&r.ID, &r.BusinessID, &r.EmployeeID, &r.BranchID, &r.Date,
		&r.ScheduledStart, &r.ScheduledEnd, &r.ActualStart, &r.ActualEnd,
		&r.BreakStart, &r.BreakEnd, &r.ExpectedBreakDuration, &status,
		&r.LateMinutes, &r.OvertimeMinutes, &r.BreakOverdueMinutes,
		&r.CreatedAt, &r.UpdatedAt, &r.EmployeeName, &r.BranchName,
	)
	r.Status = attendance.Status(status)
	return r, err
}
