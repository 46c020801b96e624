package monitor

import (
	"context"
	"time"
)

// MonitorService evaluates live attendance against business thresholds.
type MonitorService interface {
	// Run performs one stateless pass over every active business.
	Run(ctx context.Context, now time.Time) (RunReport, error)

	// RunBusiness evaluates a single business.
	RunBusiness(ctx context.Context, businessID string, now time.Time) (BusinessResult, error)
}
