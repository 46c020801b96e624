package recommendation

import (
	"context"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/recommendation"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

type fakeSubmissions struct {
	subs []shift.Submission
	err  error
}

func (f *fakeSubmissions) ListRecent(_ context.Context, _ string, limit int) ([]shift.Submission, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.subs) > limit {
		return f.subs[:limit], nil
	}
	return f.subs, nil
}

type fakeEmployees struct {
	employees []employee.Employee
	gotIDs    []string
	calls     int
	err       error
}

func (f *fakeEmployees) ListActive(_ context.Context, _ string, ids []string) ([]employee.Employee, error) {
	f.calls++
	f.gotIDs = ids
	if f.err != nil {
		return nil, f.err
	}
	allowed := make(map[string]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}
	var out []employee.Employee
	for _, e := range f.employees {
		if len(ids) == 0 || allowed[e.ID] {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeSchedule struct {
	hours     map[string]decimal.Decimal
	weekStart time.Time
	err       error
}

func (f *fakeSchedule) WeeklyHoursByEmployee(_ context.Context, _ string, weekStart time.Time) (map[string]decimal.Decimal, error) {
	f.weekStart = weekStart
	if f.err != nil {
		return nil, f.err
	}
	if f.hours == nil {
		return map[string]decimal.Decimal{}, nil
	}
	return f.hours, nil
}

type fakeWeights struct {
	stored  map[string]recommendation.StoredWeights
	err     error
	deleted []string
}

func newFakeWeights() *fakeWeights {
	return &fakeWeights{stored: map[string]recommendation.StoredWeights{}}
}

func (f *fakeWeights) GetByUserID(_ context.Context, userID string) (recommendation.StoredWeights, error) {
	if f.err != nil {
		return recommendation.StoredWeights{}, f.err
	}
	sw, ok := f.stored[userID]
	if !ok {
		return recommendation.StoredWeights{}, recommendation.ErrWeightsNotFound
	}
	return sw, nil
}

func (f *fakeWeights) Upsert(_ context.Context, sw recommendation.StoredWeights) error {
	if f.err != nil {
		return f.err
	}
	f.stored[sw.UserID] = sw
	return nil
}

func (f *fakeWeights) Delete(_ context.Context, userID string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.stored, userID)
	f.deleted = append(f.deleted, userID)
	return nil
}

func strPtr(s string) *string { return &s }

func entry(date, start, end, branch string) shift.RawEntry {
	e := shift.RawEntry{Date: date, StartTime: start, EndTime: end}
	if branch != "" {
		e.BranchID = strPtr(branch)
	}
	return e
}

func assigned(branches ...string) []employee.BranchAssignment {
	out := make([]employee.BranchAssignment, 0, len(branches))
	for _, b := range branches {
		out = append(out, employee.BranchAssignment{BranchID: b, BranchName: "Branch " + b, IsActive: true})
	}
	return out
}
