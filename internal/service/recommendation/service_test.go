package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/recommendation"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var week = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newTestService(subs *fakeSubmissions, emps *fakeEmployees, sched *fakeSchedule, weights *fakeWeights) *service {
	svc := NewRecommendationService(subs, emps, sched, weights, 20).(*service)
	svc.now = func() time.Time { return time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC) }
	return svc
}

func submission(id, employeeID string, entries ...shift.RawEntry) shift.Submission {
	return shift.Submission{ID: id, BusinessID: "biz", EmployeeID: employeeID, Shifts: entries}
}

func TestRecommend_FloorCapAndOrder(t *testing.T) {
	mon := entry("2026-03-02", "09:00", "17:00", "b1")
	eveningOnly := &employee.Preferences{PreferredShiftTypes: []shift.ShiftType{shift.ShiftTypeEvening}}
	notMonday := []int{0, 2, 3, 4, 5, 6}

	emps := &fakeEmployees{employees: []employee.Employee{
		{ID: "A", EmployeeType: employee.EmployeeTypeRegular, Branches: assigned("b1")},
		{ID: "B", EmployeeType: employee.EmployeeTypeOther, Branches: assigned("b1")},
		{ID: "C", EmployeeType: employee.EmployeeTypeOther},
		{ID: "D", EmployeeType: employee.EmployeeTypeOther, Preferences: eveningOnly},
		{ID: "E", EmployeeType: employee.EmployeeTypeOther, Preferences: &employee.Preferences{
			PreferredShiftTypes: []shift.ShiftType{shift.ShiftTypeEvening},
			AvailableDays:       notMonday,
		}},
		{ID: "F", EmployeeType: employee.EmployeeTypeOther, Preferences: &employee.Preferences{AvailableDays: notMonday}},
		{ID: "G", EmployeeType: employee.EmployeeTypeOther, Branches: assigned("b1"), Preferences: eveningOnly},
	}}

	var subs []shift.Submission
	for _, e := range emps.employees {
		subs = append(subs, submission("s-"+e.ID, e.ID, mon))
	}
	subs[0].Shifts = append(subs[0].Shifts,
		entry("2026-03-03", "09:00", "17:00", ""),
		entry("2026-03-12", "09:00", "17:00", "b1"),
	)

	svc := newTestService(&fakeSubmissions{subs: subs}, emps, &fakeSchedule{}, newFakeWeights())
	got, err := svc.Recommend(context.Background(), "biz", week, recommendation.DefaultScoreWeights())
	require.NoError(t, err)
	require.Len(t, got, 1, "branch-less and out-of-week entries are not candidates")

	data := got[0]
	assert.Equal(t, "2026-03-02|09:00|17:00|b1", data.ShiftID)
	assert.Equal(t, "09:00-17:00", data.TimeRange)
	assert.Equal(t, "morning", data.ShiftType)

	var ids []string
	var scores []int
	for _, r := range data.Recommendations {
		ids = append(ids, r.EmployeeID)
		scores = append(scores, r.Score)
	}
	// D (35) is cut by the cap, E (15) by the floor.
	assert.Equal(t, []string{"A", "B", "C", "G", "F"}, ids)
	assert.Equal(t, []int{100, 100, 85, 70, 65}, scores)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G"}, emps.gotIDs)
}

func TestRecommend_DeduplicatesAndSortsShifts(t *testing.T) {
	general := entry("2026-03-02", "09:00", "17:00", "b1")
	general.IsGeneral = true
	general.BranchName = strPtr("Downtown")

	subs := []shift.Submission{
		submission("s1", "e1",
			entry("2026-03-03", "18:00", "23:00", "b1"),
			entry("2026-03-02", "09:00", "17:00", "b2"),
			entry("2026-03-02", "09:00", "17:00", "b1"),
		),
		submission("s2", "e2", general),
	}
	emps := &fakeEmployees{employees: []employee.Employee{{ID: "e1"}, {ID: "e2"}}}

	svc := newTestService(&fakeSubmissions{subs: subs}, emps, &fakeSchedule{}, newFakeWeights())
	got, err := svc.Recommend(context.Background(), "biz", week, recommendation.DefaultScoreWeights())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "2026-03-02|09:00|17:00|b1", got[0].ShiftID)
	assert.Equal(t, "Downtown", got[0].BranchName)
	assert.Equal(t, "2026-03-02|09:00|17:00|b2", got[1].ShiftID)
	assert.Equal(t, "2026-03-03|18:00|23:00|b1", got[2].ShiftID)
	assert.Equal(t, "evening", got[2].ShiftType)

	for _, r := range got[0].Recommendations {
		assert.Contains(t, r.Reasons, "General shift, open to any branch")
	}
}

func TestRecommend_NoBranchNeverBecomesCandidate(t *testing.T) {
	subs := []shift.Submission{submission("s1", "e1",
		entry("2026-03-02", "09:00", "17:00", ""),
		entry("2026-03-02", "25:00", "17:00", "b1"),
	)}
	emps := &fakeEmployees{employees: []employee.Employee{{ID: "e1"}}}

	svc := newTestService(&fakeSubmissions{subs: subs}, emps, &fakeSchedule{}, newFakeWeights())
	got, err := svc.Recommend(context.Background(), "biz", week, recommendation.DefaultScoreWeights())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, emps.calls)
}

func TestRecommend_ShiftWithoutQualifiedEmployeesHasEmptyList(t *testing.T) {
	subs := []shift.Submission{submission("s1", "gone", entry("2026-03-02", "09:00", "17:00", "b1"))}
	emps := &fakeEmployees{}

	svc := newTestService(&fakeSubmissions{subs: subs}, emps, &fakeSchedule{}, newFakeWeights())
	got, err := svc.Recommend(context.Background(), "biz", week, recommendation.DefaultScoreWeights())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Recommendations)
	assert.Empty(t, got[0].Recommendations)
}

func TestRecommend_UsesScheduledHours(t *testing.T) {
	subs := []shift.Submission{submission("s1", "e1", entry("2026-03-02", "22:00", "02:00", "b1"))}
	emps := &fakeEmployees{employees: []employee.Employee{{ID: "e1", Branches: assigned("b1")}}}
	sched := &fakeSchedule{hours: map[string]decimal.Decimal{"e1": decimal.NewFromInt(44)}}

	svc := newTestService(&fakeSubmissions{subs: subs}, emps, sched, newFakeWeights())
	got, err := svc.Recommend(context.Background(), "biz", week, recommendation.DefaultScoreWeights())
	require.NoError(t, err)

	require.Len(t, got[0].Recommendations, 1)
	rec := got[0].Recommendations[0]
	assert.Equal(t, recommendation.WeeklyHoursOver, rec.WeeklyHoursStatus)
	assert.Equal(t, week, sched.weekStart)
}

func TestRecommend_StoreFailures(t *testing.T) {
	subs := []shift.Submission{submission("s1", "e1", entry("2026-03-02", "09:00", "17:00", "b1"))}
	boom := errors.New("connection refused")

	t.Run("submissions", func(t *testing.T) {
		svc := newTestService(&fakeSubmissions{err: boom}, &fakeEmployees{}, &fakeSchedule{}, newFakeWeights())
		got, err := svc.Recommend(context.Background(), "biz", week, recommendation.DefaultScoreWeights())
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, got)
	})

	t.Run("employees", func(t *testing.T) {
		svc := newTestService(&fakeSubmissions{subs: subs}, &fakeEmployees{err: boom}, &fakeSchedule{}, newFakeWeights())
		got, err := svc.Recommend(context.Background(), "biz", week, recommendation.DefaultScoreWeights())
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, got)
	})

	t.Run("schedule", func(t *testing.T) {
		emps := &fakeEmployees{employees: []employee.Employee{{ID: "e1"}}}
		svc := newTestService(&fakeSubmissions{subs: subs}, emps, &fakeSchedule{err: boom}, newFakeWeights())
		got, err := svc.Recommend(context.Background(), "biz", week, recommendation.DefaultScoreWeights())
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, got)
	})
}

func TestRecommend_CancelledContext(t *testing.T) {
	subs := []shift.Submission{submission("s1", "e1", entry("2026-03-02", "09:00", "17:00", "b1"))}
	emps := &fakeEmployees{employees: []employee.Employee{{ID: "e1"}}}
	svc := newTestService(&fakeSubmissions{subs: subs}, emps, &fakeSchedule{}, newFakeWeights())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := svc.Recommend(ctx, "biz", week, recommendation.DefaultScoreWeights())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestRecommend_RequiresBusiness(t *testing.T) {
	svc := newTestService(&fakeSubmissions{}, &fakeEmployees{}, &fakeSchedule{}, newFakeWeights())
	_, err := svc.Recommend(context.Background(), "", week, recommendation.DefaultScoreWeights())
	assert.ErrorIs(t, err, recommendation.ErrBusinessRequired)
}

func TestRecommendForRequest_ResolvesWeights(t *testing.T) {
	subs := []shift.Submission{submission("s1", "e1", entry("2026-03-03", "09:00", "17:00", "b1"))}
	emps := &fakeEmployees{employees: []employee.Employee{{ID: "e1"}}}
	weights := newFakeWeights()
	weights.stored["op"] = recommendation.StoredWeights{
		UserID:  "op",
		Weights: recommendation.ScoreWeights{ShiftType: 10, BranchAssignment: 10, DayAvailability: 10, WeeklyHours: 10},
	}
	sched := &fakeSchedule{}
	svc := newTestService(&fakeSubmissions{subs: subs}, emps, sched, weights)

	zero := 0.0
	resp, err := svc.RecommendForRequest(context.Background(), recommendation.RecommendRequest{
		BusinessID: "biz",
		UserID:     "op",
		Weights:    &recommendation.WeightsOverride{WeeklyHours: &zero},
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", resp.WeekStart, "defaults to the current week")
	assert.Equal(t, week, sched.weekStart)
	assert.Equal(t, recommendation.ScoreWeights{ShiftType: 10, BranchAssignment: 10, DayAvailability: 10}, resp.Weights)
	require.Len(t, resp.Shifts, 1)
	// shift type 10 + day 10; below the floor
	assert.Empty(t, resp.Shifts[0].Recommendations)
}

func TestRecommendForRequest_DefaultsWhenNothingSaved(t *testing.T) {
	svc := newTestService(&fakeSubmissions{}, &fakeEmployees{}, &fakeSchedule{}, newFakeWeights())

	resp, err := svc.RecommendForRequest(context.Background(), recommendation.RecommendRequest{
		BusinessID: "biz",
		UserID:     "op",
		WeekStart:  "2026-03-09",
	})
	require.NoError(t, err)
	assert.Equal(t, recommendation.DefaultScoreWeights(), resp.Weights)
	assert.Equal(t, "2026-03-09", resp.WeekStart)
	assert.Empty(t, resp.Shifts)
}

func TestRecommendForRequest_Validation(t *testing.T) {
	svc := newTestService(&fakeSubmissions{}, &fakeEmployees{}, &fakeSchedule{}, newFakeWeights())
	negative := -1.0

	_, err := svc.RecommendForRequest(context.Background(), recommendation.RecommendRequest{
		BusinessID: "biz",
		WeekStart:  "03/02/2026",
		Weights:    &recommendation.WeightsOverride{ShiftType: &negative},
	})

	var vErrs validator.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	assert.Len(t, vErrs, 2)
}

func TestRecommendForRequest_WeightsStoreFailure(t *testing.T) {
	weights := newFakeWeights()
	weights.err = errors.New("timeout")
	svc := newTestService(&fakeSubmissions{}, &fakeEmployees{}, &fakeSchedule{}, weights)

	_, err := svc.RecommendForRequest(context.Background(), recommendation.RecommendRequest{BusinessID: "biz", UserID: "op"})
	assert.ErrorContains(t, err, "timeout")
}
