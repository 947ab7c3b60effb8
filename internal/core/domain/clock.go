package domain

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

const (
	// DateLayout is the wire and storage format for reservation dates.
	// ISO dates compare correctly as plain strings.
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format for reservation times.
	TimeLayout = "15:04"
)

// TimeOfDay is a clock time expressed as minutes since midnight, with no
// attached date or timezone. Arithmetic wraps at midnight, so comparisons
// around the end of the day follow wall-clock semantics.
type TimeOfDay int

// ParseTimeOfDay parses a "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// Add returns the clock time the given number of minutes later, wrapping
// past midnight.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	m := (int(t) + minutes) % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return TimeOfDay(m)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// ClockTimeOfDay extracts the wall-clock time of day from t.
func ClockTimeOfDay(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// ClockDate formats t as a reservation calendar date.
func ClockDate(t time.Time) string {
	return t.Format(DateLayout)
}
