package monitor

import "time"

// DefaultThresholds are the minute thresholds used when a setting is enabled
// without a value.
const (
	DefaultLateArrivalMinutes    = 15
	DefaultOvertimeMinutes       = 30
	DefaultLongBreakMinutes      = 10
	DefaultMissingCheckInMinutes = 15
)

// BusinessResult summarises one business's evaluation within a run.
type BusinessResult struct {
	BusinessID    string `json:"business_id"`
	Records       int    `json:"records"`
	Events        int    `json:"events"`
	Suppressed    int    `json:"suppressed"`
	Notifications int    `json:"notifications"`
	Skipped       bool   `json:"skipped,omitempty"`
	Error         string `json:"error,omitempty"`
}

// RunReport summarises one monitor tick.
type RunReport struct {
	StartedAt     time.Time        `json:"started_at"`
	FinishedAt    time.Time        `json:"finished_at"`
	Businesses    int              `json:"businesses"`
	Failed        int              `json:"failed"`
	Events        int              `json:"events"`
	Suppressed    int              `json:"suppressed"`
	Notifications int              `json:"notifications"`
	Results       []BusinessResult `json:"results"`
}
