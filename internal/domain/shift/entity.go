package shift

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// morningCutoff is the first hour classified as an evening shift.
const morningCutoff = 14

type ShiftType string

const (
	ShiftTypeMorning ShiftType = "morning"
	ShiftTypeEvening ShiftType = "evening"
)

// AllShiftTypes is the permissive default preference set.
func AllShiftTypes() []ShiftType {
	return []ShiftType{ShiftTypeMorning, ShiftTypeEvening}
}

// Classify returns morning for shifts starting before 14:00, evening otherwise.
func Classify(start Clock) ShiftType {
	if start.Hour() < morningCutoff {
		return ShiftTypeMorning
	}
	return ShiftTypeEvening
}

// RawEntry is a shift entry as stored inside a submission's JSON payload.
type RawEntry struct {
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	BranchID   *string `json:"branch_id"`
	BranchName *string `json:"branch_name,omitempty"`
	IsGeneral  bool    `json:"is_general,omitempty"`
}

// Entry is a validated shift entry.
type Entry struct {
	Date       time.Time
	Window     TimeWindow
	BranchID   string
	BranchName string
	General    bool
}

// Submission is an employee's shift request for a target week.
type Submission struct {
	ID            string
	BusinessID    string
	EmployeeID    string
	WeekStartDate *time.Time
	Shifts        []RawEntry
	SubmittedAt   time.Time
}

// Key identifies a candidate shift. Two submissions naming the same key refer
// to the same shift.
type Key struct {
	Date     string
	Start    Clock
	End      Clock
	BranchID string
}

func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%s|%s", k.Date, k.Start, k.End, k.BranchID)
}

// Candidate is a de-duplicated shift eligible for recommendation.
type Candidate struct {
	Key        Key
	Date       time.Time
	Window     TimeWindow
	BranchID   string
	BranchName string
	General    bool
}

func (c Candidate) Type() ShiftType { return Classify(c.Window.Start) }

// Weekday returns 0 for Sunday through 6 for Saturday.
func (c Candidate) Weekday() int { return int(c.Date.Weekday()) }

// Validate turns a raw entry into an Entry. Branch-less entries are rejected.
func (r RawEntry) Validate() (Entry, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(r.Date))
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidShiftDate, r.Date)
	}
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return Entry{}, err
	}
	end, err := ParseClock(r.EndTime)
	if err != nil {
		return Entry{}, err
	}
	if r.BranchID == nil || strings.TrimSpace(*r.BranchID) == "" {
		return Entry{}, ErrBranchRequired
	}

	entry := Entry{
		Date:     date,
		Window:   TimeWindow{Start: start, End: end},
		BranchID: strings.TrimSpace(*r.BranchID),
		General:  r.IsGeneral,
	}
	if r.BranchName != nil {
		entry.BranchName = *r.BranchName
	}
	return entry, nil
}

// Key returns the de-duplication key of the entry.
func (e Entry) Key() Key {
	return Key{
		Date:     e.Date.Format(DateLayout),
		Start:    e.Window.Start,
		End:      e.Window.End,
		BranchID: e.BranchID,
	}
}

// Candidate converts the entry into a candidate shift.
func (e Entry) Candidate() Candidate {
	return Candidate{
		Key:        e.Key(),
		Date:       e.Date,
		Window:     e.Window,
		BranchID:   e.BranchID,
		BranchName: e.BranchName,
		General:    e.General,
	}
}

// InWeek reports whether the entry falls within the seven days starting at weekStart.
func (e Entry) InWeek(weekStart time.Time) bool {
	start := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(start) && d.Before(start.AddDate(0, 0, 7))
}

// EntryError records a rejected entry of a submission.
type EntryError struct {
	SubmissionID string
	Index        int
	Err          error
}

func (e EntryError) Error() string {
	return fmt.Sprintf("submission %s entry %d: %v", e.SubmissionID, e.Index, e.Err)
}

func (e EntryError) Unwrap() error { return e.Err }

// ParseEntries validates every raw entry of a submission, returning the valid
// entries and one EntryError per rejected entry.
func (s Submission) ParseEntries() ([]Entry, []EntryError) {
	entries := make([]Entry, 0, len(s.Shifts))
	var rejected []EntryError
	for i, raw := range s.Shifts {
		entry, err := raw.Validate()
		if err != nil {
			rejected = append(rejected, EntryError{SubmissionID: s.ID, Index: i, Err: err})
			continue
		}
		entries = append(entries, entry)
	}
	return entries, rejected
}
