package recommendation

import "errors"

var (
	ErrInvalidWeekStart = errors.New("week_start must be in YYYY-MM-DD format")
	ErrNegativeWeight   = errors.New("score weights must not be negative")
	ErrWeightsNotFound  = errors.New("score weights not found")
	ErrBusinessRequired = errors.New("business is required")
	ErrOperatorRequired = errors.New("operator is required")
)
