package shift

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// Clock is a time of day expressed in minutes since midnight.
type Clock int

// ParseClock parses "HH:MM" or "HH:MM:SS". Seconds are accepted but ignored.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}

	return Clock(hour*60 + minute), nil
}

// MustParseClock is ParseClock for literals known to be valid.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) Hour() int { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// DurationMinutes returns the length of [start, end). An end earlier than the
// start falls on the next day.
func DurationMinutes(start, end Clock) int {
	if end >= start {
		return int(end - start)
	}
	return int(end) + minutesPerDay - int(start)
}

// Contains reports whether point lies inside the window, inclusive of both
// bounds. Wrapping windows accept points after start or, read as next-day
// times, up to end.
func Contains(point, start, end Clock) bool {
	if end >= start {
		return start <= point && point <= end
	}
	if point >= start {
		return true
	}
	next := int(point) + minutesPerDay
	return next >= int(start) && next <= int(end)+minutesPerDay
}

// TimeWindow is a shift's start/end pair.
type TimeWindow struct {
	Start Clock
	End   Clock
}

func (w TimeWindow) Wraps() bool { return w.End < w.Start }
func (w TimeWindow) Duration() int { return DurationMinutes(w.Start, w.End) }
func (w TimeWindow) Contains(point Clock) bool { return Contains(point, w.Start, w.End) }

func (w TimeWindow) Hours() float64 {
	return float64(w.Duration()) / 60
}

func (w TimeWindow) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// ScheduledEnd re-anchors an end timestamp that precedes its start onto the
// following day. Used when schedules are stored as date + clock columns.
func ScheduledEnd(start, end time.Time) time.Time {
	if end.Before(start) {
		return end.Add(24 * time.Hour)
	}
	return end
}

// MinutesBetween returns whole minutes from a to b, floored at zero.
func MinutesBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}
