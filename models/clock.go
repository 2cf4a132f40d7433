package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date wire format used across the API.
const DateLayout = "2006-01-02"

// ParseClock converts an "HH:MM" string to minutes from midnight. It rejects
// anything time.Parse would silently coerce: wrong length, missing zero
// padding, hour > 23 or minute > 59.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, ok1 := twoDigits(s[0], s[1])
	minute, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || hour > 23 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return hour*60 + minute, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// IsValidDate reports whether s is a well-formed "YYYY-MM-DD" date.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil && len(s) == len(DateLayout)
}

// CombineDateTime resolves a date plus "HH:MM" clock into a wall-clock time
// in the local zone. Both values must already be validated.
func CombineDateTime(date, clock string) time.Time {
	d, _ := time.ParseInLocation(DateLayout, date, time.Local)
	minutes, _ := ParseClock(clock)
	return d.Add(time.Duration(minutes) * time.Minute)
}

// IsPastDate reports whether date falls strictly before today (date-only
// comparison, ignoring time of day).
func IsPastDate(date string, now time.Time) bool {
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return d.Before(today)
}
