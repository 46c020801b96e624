package monitor

import "errors"

var (
	ErrInvalidMonitorToken = errors.New("invalid monitor token")
)
