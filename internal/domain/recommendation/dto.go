package recommendation

import (
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/validator"
)

// RecommendRequest asks for staffing suggestions for one business week.
type RecommendRequest struct {
	BusinessID string           `json:"-"`
	UserID     string           `json:"-"`
	WeekStart  string           `json:"week_start"`
	Weights    *WeightsOverride `json:"weights,omitempty"`
	weekStart  time.Time
}

// WeightsOverride replaces individual persisted weights for a single request.
type WeightsOverride struct {
	ShiftType        *float64 `json:"shift_type,omitempty"`
	BranchAssignment *float64 `json:"branch_assignment,omitempty"`
	DayAvailability  *float64 `json:"day_availability,omitempty"`
	WeeklyHours      *float64 `json:"weekly_hours,omitempty"`
}

func (r *RecommendRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BusinessID) {
		errs = append(errs, validator.ValidationError{
			Field:   "business_id",
			Message: "business_id is required",
		})
	}

	if !validator.IsEmpty(r.WeekStart) {
		date, ok := validator.IsValidDate(r.WeekStart)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "week_start",
				Message: "week_start must be in YYYY-MM-DD format",
			})
		}
		r.weekStart = date
	}

	if r.Weights != nil {
		errs = append(errs, r.Weights.validate()...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// WeekStartDate returns the parsed week start; zero when none was given.
func (r *RecommendRequest) WeekStartDate() time.Time {
	return r.weekStart
}

func (o *WeightsOverride) validate() validator.ValidationErrors {
	var errs validator.ValidationErrors
	fields := []struct {
		name  string
		value *float64
	}{
		{"weights.shift_type", o.ShiftType},
		{"weights.branch_assignment", o.BranchAssignment},
		{"weights.day_availability", o.DayAvailability},
		{"weights.weekly_hours", o.WeeklyHours},
	}
	for _, f := range fields {
		if f.value != nil && *f.value < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   f.name,
				Message: f.name + " must not be negative",
			})
		}
	}
	return errs
}

// Apply returns base with the overridden fields replaced.
func (o *WeightsOverride) Apply(base ScoreWeights) ScoreWeights {
	if o == nil {
		return base
	}
	if o.ShiftType != nil {
		base.ShiftType = *o.ShiftType
	}
	if o.BranchAssignment != nil {
		base.BranchAssignment = *o.BranchAssignment
	}
	if o.DayAvailability != nil {
		base.DayAvailability = *o.DayAvailability
	}
	if o.WeeklyHours != nil {
		base.WeeklyHours = *o.WeeklyHours
	}
	return base
}

// UpdateWeightsRequest replaces the operator's saved weights.
type UpdateWeightsRequest struct {
	UserID           string  `json:"-"`
	ShiftType        float64 `json:"shift_type"`
	BranchAssignment float64 `json:"branch_assignment"`
	DayAvailability  float64 `json:"day_availability"`
	WeeklyHours      float64 `json:"weekly_hours"`
}

func (r *UpdateWeightsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if err := r.Weights().Validate(); err != nil {
		if vErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, vErrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *UpdateWeightsRequest) Weights() ScoreWeights {
	return ScoreWeights{
		ShiftType:        r.ShiftType,
		BranchAssignment: r.BranchAssignment,
		DayAvailability:  r.DayAvailability,
		WeeklyHours:      r.WeeklyHours,
	}
}

// Validate rejects negative weights. No other constraint applies.
func (w ScoreWeights) Validate() error {
	var errs validator.ValidationErrors
	if w.ShiftType < 0 {
		errs = append(errs, validator.ValidationError{Field: "shift_type", Message: ErrNegativeWeight.Error()})
	}
	if w.BranchAssignment < 0 {
		errs = append(errs, validator.ValidationError{Field: "branch_assignment", Message: ErrNegativeWeight.Error()})
	}
	if w.DayAvailability < 0 {
		errs = append(errs, validator.ValidationError{Field: "day_availability", Message: ErrNegativeWeight.Error()})
	}
	if w.WeeklyHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "weekly_hours", Message: ErrNegativeWeight.Error()})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecommendResponse struct {
	WeekStart string                    `json:"week_start,omitempty"`
	Weights   ScoreWeights              `json:"weights"`
	Shifts    []ShiftRecommendationData `json:"shifts"`
}

type WeightsResponse struct {
	ScoreWeights
	IsDefault bool `json:"is_default"`
}
