package recommendation

import "time"

// ScoreWeights holds the relative importance of each scoring factor. Factors
// are independent; the weights need not sum to anything.
type ScoreWeights struct {
	ShiftType        float64 `json:"shift_type"`
	BranchAssignment float64 `json:"branch_assignment"`
	DayAvailability  float64 `json:"day_availability"`
	WeeklyHours      float64 `json:"weekly_hours"`
}

// DefaultScoreWeights returns the weights used when an operator has none saved.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		ShiftType:        50,
		BranchAssignment: 35,
		DayAvailability:  20,
		WeeklyHours:      15,
	}
}

// StoredWeights is an operator's persisted weight set.
type StoredWeights struct {
	UserID    string
	Weights   ScoreWeights
	UpdatedAt time.Time
}

type WeeklyHoursStatus string

const (
	WeeklyHoursUnder  WeeklyHoursStatus = "under"
	WeeklyHoursNormal WeeklyHoursStatus = "normal"
	WeeklyHoursOver   WeeklyHoursStatus = "over"
)

const (
	// MinScore is the floor below which a candidate is not suggested.
	MinScore = 30
	// MaxPerShift caps the suggestions returned for one shift.
	MaxPerShift = 5
	// HighPriorityScore is the score from which a candidate is flagged.
	HighPriorityScore = 70
)

type EmployeeRecommendation struct {
	EmployeeID        string            `json:"employee_id"`
	Name              string            `json:"name"`
	Phone             string            `json:"phone"`
	Score             int               `json:"score"`
	Reasons           []string          `json:"reasons"`
	Warnings          []string          `json:"warnings"`
	BranchMatch       bool              `json:"branch_match"`
	ShiftTypeMatch    bool              `json:"shift_type_match"`
	AvailabilityMatch bool              `json:"availability_match"`
	WeeklyHoursStatus WeeklyHoursStatus `json:"weekly_hours_status"`
	IsHighPriority    bool              `json:"is_high_priority"`
}

type ShiftRecommendationData struct {
	ShiftID         string                   `json:"shift_id"`
	Date            string                   `json:"date"`
	TimeRange       string                   `json:"time_range"`
	ShiftType       string                   `json:"shift_type"`
	BranchID        string                   `json:"branch_id"`
	BranchName      string                   `json:"branch_name,omitempty"`
	Recommendations []EmployeeRecommendation `json:"recommendations"`
}
