// Package timeslot holds the pure HH:MM arithmetic shared by the
// schedule engine and the API client.
package timeslot

import (
	"fmt"
	"time"
)

const (
	// DayFormat is the wire format for calendar days.
	DayFormat = "2006-01-02"
	// ClockFormat is the wire format for slot times.
	ClockFormat = "15:04"
	// DefaultStep is the slot width in minutes.
	DefaultStep = 30
)

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockFormat, s)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight to "HH:MM".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Grid returns the ordered slot start times in [open, close) with the
// given step in minutes. Malformed bounds or a non-positive step yield nil.
func Grid(open, close string, step int) []string {
	if step <= 0 {
		return nil
	}
	start, err := ParseClock(open)
	if err != nil {
		return nil
	}
	end, err := ParseClock(close)
	if err != nil {
		return nil
	}
	var out []string
	for cur := start; cur < end; cur += step {
		out = append(out, FormatClock(cur))
	}
	return out
}

// FallbackGrid is the hardcoded availability used when the backend is
// unreachable: half-hourly 09:00-19:00, skipping the 12:00-14:00 break,
// with no 18:30 slot.
func FallbackGrid() []string {
	var out []string
	for hour := 9; hour < 19; hour++ {
		if hour >= 12 && hour < 14 {
			continue
		}
		out = append(out, fmt.Sprintf("%02d:00", hour))
		if hour < 18 {
			out = append(out, fmt.Sprintf("%02d:30", hour))
		}
	}
	return out
}

// ParseDay parses a YYYY-MM-DD day in the local timezone.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return t, nil
}

// Day formats t as YYYY-MM-DD.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// WeekStart returns midnight of the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	diff := int(t.Weekday()) - int(time.Monday)
	if diff < 0 {
		diff += 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -diff)
}

// Overlaps reports whether [s1,e1) intersects [s2,e2), all in minutes.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}
