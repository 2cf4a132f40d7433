package models

import "fmt"

// Interval represents a single open time block on one calendar date. Times
// are "HH:MM" wall-clock strings compared at minute resolution; the range is
// half-open [startTime, endTime).
type Interval struct {
	Date      string `bson:"date" json:"date"`           // "2006-01-02"
	StartTime string `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime   string `bson:"endTime" json:"endTime"`     // "HH:MM"
}

// NewInterval validates the raw fields and returns a well-formed Interval.
func NewInterval(date, startTime, endTime string) (Interval, error) {
	if !IsValidDate(date) {
		return Interval{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	start, err := ParseClock(startTime)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return Interval{}, err
	}
	if start >= end {
		return Interval{}, fmt.Errorf("start time %s must be before end time %s", startTime, endTime)
	}
	return Interval{Date: date, StartTime: startTime, EndTime: endTime}, nil
}

// StartMinute returns the start time as minutes from midnight. The interval
// must already be validated.
func (iv Interval) StartMinute() int {
	m, _ := ParseClock(iv.StartTime)
	return m
}

// EndMinute returns the end time as minutes from midnight.
func (iv Interval) EndMinute() int {
	m, _ := ParseClock(iv.EndTime)
	return m
}

// Minutes returns the interval's duration in minutes.
func (iv Interval) Minutes() int {
	return iv.EndMinute() - iv.StartMinute()
}

// Overlaps reports whether the two intervals fall on the same date and their
// half-open ranges intersect.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.Date != other.Date {
		return false
	}
	return iv.StartMinute() < other.EndMinute() && other.StartMinute() < iv.EndMinute()
}

// Contains reports whether inner falls on the same date and lies entirely
// within iv. This is the admissibility test for booking.
func (iv Interval) Contains(inner Interval) bool {
	if iv.Date != inner.Date {
		return false
	}
	return iv.StartMinute() <= inner.StartMinute() && inner.EndMinute() <= iv.EndMinute()
}

// SubtractCovering returns the remaining sub-intervals of iv after removing
// inner: the left remainder [iv.start, inner.start) if non-empty, then the
// right remainder [inner.end, iv.end) if non-empty. The caller must ensure
// iv.Contains(inner).
func (iv Interval) SubtractCovering(inner Interval) []Interval {
	var remainders []Interval
	if iv.StartMinute() < inner.StartMinute() {
		remainders = append(remainders, Interval{
			Date:      iv.Date,
			StartTime: iv.StartTime,
			EndTime:   inner.StartTime,
		})
	}
	if inner.EndMinute() < iv.EndMinute() {
		remainders = append(remainders, Interval{
			Date:      iv.Date,
			StartTime: inner.EndTime,
			EndTime:   iv.EndTime,
		})
	}
	return remainders
}
