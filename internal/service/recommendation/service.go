package recommendation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/recommendation"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

// DefaultLookback bounds how many recent submissions are considered.
const DefaultLookback = 50

type service struct {
	submissionRepo shift.SubmissionRepository
	employeeRepo   employee.EmployeeRepository
	scheduleRepo   shift.ScheduleRepository
	weightsRepo    recommendation.WeightsRepository
	lookback       int
	now            func() time.Time
}

func NewRecommendationService(
	submissionRepo shift.SubmissionRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo shift.ScheduleRepository,
	weightsRepo recommendation.WeightsRepository,
	lookback int,
) recommendation.RecommendationService {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &service{
		submissionRepo: submissionRepo,
		employeeRepo:   employeeRepo,
		scheduleRepo:   scheduleRepo,
		weightsRepo:    weightsRepo,
		lookback:       lookback,
		now:            time.Now,
	}
}

// Recommend implements recommendation.RecommendationService.
func (s *service) Recommend(ctx context.Context, businessID string, weekStart time.Time, weights recommendation.ScoreWeights) ([]recommendation.ShiftRecommendationData, error) {
	if businessID == "" {
		return nil, recommendation.ErrBusinessRequired
	}

	submissions, err := s.submissionRepo.ListRecent(ctx, businessID, s.lookback)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	candidates, submitters := collectCandidates(businessID, submissions, weekStart)
	result := make([]recommendation.ShiftRecommendationData, 0, len(candidates))
	if len(candidates) == 0 || len(submitters) == 0 {
		return result, nil
	}

	employees, err := s.employeeRepo.ListActive(ctx, businessID, submitters)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	hours := map[string]decimal.Decimal{}
	if !weekStart.IsZero() {
		hours, err = s.scheduleRepo.WeeklyHoursByEmployee(ctx, businessID, weekStart)
		if err != nil {
			return nil, fmt.Errorf("load weekly hours: %w", err)
		}
	}

	profiles := make([]employee.Profile, 0, len(employees))
	for _, emp := range employees {
		profiles = append(profiles, emp.Profile())
	}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result = append(result, recommendShift(c, profiles, weights, hours))
	}

	return result, nil
}

// RecommendForRequest implements recommendation.RecommendationService.
func (s *service) RecommendForRequest(ctx context.Context, req recommendation.RecommendRequest) (recommendation.RecommendResponse, error) {
	if err := req.Validate(); err != nil {
		return recommendation.RecommendResponse{}, err
	}

	weights, err := s.resolveWeights(ctx, req.UserID)
	if err != nil {
		return recommendation.RecommendResponse{}, err
	}
	weights = req.Weights.Apply(weights)

	weekStart := req.WeekStartDate()
	if weekStart.IsZero() {
		weekStart = startOfWeek(s.now())
	}

	shifts, err := s.Recommend(ctx, req.BusinessID, weekStart, weights)
	if err != nil {
		return recommendation.RecommendResponse{}, err
	}

	return recommendation.RecommendResponse{
		WeekStart: weekStart.Format(shift.DateLayout),
		Weights:   weights,
		Shifts:    shifts,
	}, nil
}

func (s *service) resolveWeights(ctx context.Context, userID string) (recommendation.ScoreWeights, error) {
	if userID == "" || s.weightsRepo == nil {
		return recommendation.DefaultScoreWeights(), nil
	}
	stored, err := s.weightsRepo.GetByUserID(ctx, userID)
	if errors.Is(err, recommendation.ErrWeightsNotFound) {
		return recommendation.DefaultScoreWeights(), nil
	}
	if err != nil {
		return recommendation.ScoreWeights{}, fmt.Errorf("load score weights: %w", err)
	}
	return stored.Weights, nil
}

// collectCandidates flattens submissions into de-duplicated candidate shifts
// sorted by date, start, end and branch. It also returns every submitting
// employee in first-seen order.
func collectCandidates(businessID string, submissions []shift.Submission, weekStart time.Time) ([]shift.Candidate, []string) {
	byKey := make(map[shift.Key]int)
	var candidates []shift.Candidate
	var submitters []string
	seen := make(map[string]bool)

	for _, sub := range submissions {
		if sub.EmployeeID != "" && !seen[sub.EmployeeID] {
			seen[sub.EmployeeID] = true
			submitters = append(submitters, sub.EmployeeID)
		}

		entries, rejected := sub.ParseEntries()
		for _, r := range rejected {
			slog.Warn("Skipping invalid shift entry",
				"business_id", businessID,
				"submission_id", r.SubmissionID,
				"index", r.Index,
				"error", r.Err)
		}

		for _, entry := range entries {
			if !weekStart.IsZero() && !entry.InWeek(weekStart) {
				continue
			}
			key := entry.Key()
			if i, ok := byKey[key]; ok {
				if entry.General {
					candidates[i].General = true
				}
				if candidates[i].BranchName == "" {
					candidates[i].BranchName = entry.BranchName
				}
				continue
			}
			byKey[key] = len(candidates)
			candidates = append(candidates, entry.Candidate())
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].Key, candidates[j].Key
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.BranchID < b.BranchID
	})

	return candidates, submitters
}

func recommendShift(c shift.Candidate, profiles []employee.Profile, weights recommendation.ScoreWeights, hours map[string]decimal.Decimal) recommendation.ShiftRecommendationData {
	recs := make([]recommendation.EmployeeRecommendation, 0, len(profiles))
	for _, p := range profiles {
		rec := Score(p, c, weights, hours)
		if rec.Score < recommendation.MinScore {
			continue
		}
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > recommendation.MaxPerShift {
		recs = recs[:recommendation.MaxPerShift]
	}

	return recommendation.ShiftRecommendationData{
		ShiftID:         c.Key.String(),
		Date:            c.Key.Date,
		TimeRange:       c.Window.String(),
		ShiftType:       string(c.Type()),
		BranchID:        c.BranchID,
		BranchName:      c.BranchName,
		Recommendations: recs,
	}
}

// startOfWeek returns the Monday of t's week at midnight UTC.
func startOfWeek(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
}
