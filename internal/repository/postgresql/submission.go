package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type submissionRepository struct {
	db *database.DB
}

func NewSubmissionRepository(db *database.DB) shift.SubmissionRepository {
	return &submissionRepository{db: db}
}

// ListRecent returns the newest submissions first. Entries are decoded but
// not validated; callers run Submission.ParseEntries. A submission whose
// payload is not a JSON array of entries is returned without shifts.
func (r *submissionRepository) ListRecent(ctx context.Context, businessID string, limit int) ([]shift.Submission, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, business_id, employee_id, week_start_date, shifts, submitted_at
		FROM shift_submissions
		WHERE business_id = $1
		ORDER BY submitted_at DESC, id
		LIMIT $2
	`, businessID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	submissions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (shift.Submission, error) {
		var (
			s   shift.Submission
			raw []byte
		)
		if err := row.Scan(&s.ID, &s.BusinessID, &s.EmployeeID, &s.WeekStartDate, &raw, &s.SubmittedAt); err != nil {
			return s, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &s.Shifts); err != nil {
				slog.Warn("Skipping undecodable submission shifts",
					"submission_id", s.ID,
					"error", fmt.Errorf("%w: %v", shift.ErrSubmissionDecode, err))
				s.Shifts = nil
			}
		}
		return s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan submissions: %w", err)
	}
	return submissions, nil
}
