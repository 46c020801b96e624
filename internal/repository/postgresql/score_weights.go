package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/recommendation"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/database"
)

type scoreWeightsRepository struct {
	db *database.DB
}

func NewScoreWeightsRepository(db *database.DB) recommendation.WeightsRepository {
	return &scoreWeightsRepository{db: db}
}

func (r *scoreWeightsRepository) GetByUserID(ctx context.Context, userID string) (recommendation.StoredWeights, error) {
	q := GetQuerier(ctx, r.db)

	var sw recommendation.StoredWeights
	err := q.QueryRow(ctx, `
		SELECT user_id, shift_type, branch_assignment, day_availability, weekly_hours, updated_at
		FROM score_weights
		WHERE user_id = $1
	`, userID).Scan(
		&sw.UserID,
		&sw.Weights.ShiftType,
		&sw.Weights.BranchAssignment,
		&sw.Weights.DayAvailability,
		&sw.Weights.WeeklyHours,
		&sw.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return recommendation.StoredWeights{}, recommendation.ErrWeightsNotFound
		}
		return recommendation.StoredWeights{}, fmt.Errorf("failed to get score weights: %w", err)
	}
	return sw, nil
}

func (r *scoreWeightsRepository) Upsert(ctx context.Context, sw recommendation.StoredWeights) error {
	q := GetQuerier(ctx, r.db)

	if sw.UpdatedAt.IsZero() {
		sw.UpdatedAt = time.Now()
	}

	_, err := q.Exec(ctx, `
		INSERT INTO score_weights (user_id, shift_type, branch_assignment, day_availability, weekly_hours, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id)
		DO UPDATE SET shift_type = EXCLUDED.shift_type,
			branch_assignment = EXCLUDED.branch_assignment,
			day_availability = EXCLUDED.day_availability,
			weekly_hours = EXCLUDED.weekly_hours,
			updated_at = EXCLUDED.updated_at
	`, sw.UserID, sw.Weights.ShiftType, sw.Weights.BranchAssignment, sw.Weights.DayAvailability, sw.Weights.WeeklyHours, sw.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert score weights: %w", err)
	}
	return nil
}

// Delete removes saved weights so the defaults apply again.
func (r *scoreWeightsRepository) Delete(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM score_weights WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete score weights: %w", err)
	}
	return nil
}
