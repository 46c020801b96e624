package shift

import "errors"

var (
	ErrInvalidClock     = errors.New("invalid time of day, use HH:MM")
	ErrInvalidShiftDate = errors.New("invalid shift date, use YYYY-MM-DD")
	ErrBranchRequired   = errors.New("shift entry has no branch")
	ErrSubmissionDecode = errors.New("submission shifts could not be decoded")
)
