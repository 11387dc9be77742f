package booking

import (
	"fmt"
	"sort"
	"time"
)

const (
	// DateFormat is the wire format for photographer-local dates.
	DateFormat = "2006-01-02"
	// ClockFormat is the wire format for time-of-day values in working hours.
	ClockFormat = "15:04"

	minutesPerDay = 24 * 60
)

// Interval is a half-open [Start, End) time-of-day range in minutes from
// midnight (e.g., 540 for 9:00 AM). Touching endpoints do not overlap.
type Interval struct {
	Start int
	End   int
}

// NewInterval builds an interval, rejecting start >= end. Malformed intervals
// are a contract violation and never enter the engine.
func NewInterval(start, end int) (Interval, error) {
	if start >= end {
		return Interval{}, fmt.Errorf("invalid interval [%d, %d): start must be before end", start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Contains reports whether other lies fully within iv.
func (iv Interval) Contains(other Interval) bool {
	return iv.Start <= other.Start && other.End <= iv.End
}

// Duration returns the interval length in minutes.
func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

// addBuffer expands an occupied interval symmetrically by bufferMinutes on
// both sides, clamped to the day, so that no slot may start within the buffer
// of a booking's end nor end within the buffer of a booking's start.
func addBuffer(iv Interval, bufferMinutes int) Interval {
	start := iv.Start - bufferMinutes
	if start < 0 {
		start = 0
	}
	end := iv.End + bufferMinutes
	if end > minutesPerDay {
		end = minutesPerDay
	}
	return Interval{Start: start, End: end}
}

// mergeIntervals sorts and coalesces overlapping or touching intervals.
func mergeIntervals(intervals []Interval) []Interval {
	if len(intervals) <= 1 {
		return append([]Interval(nil), intervals...)
	}
	sorted := append([]Interval(nil), intervals...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// subtractIntervals returns the free sub-intervals of iv after removing every
// overlapping portion of the busy intervals. Busy intervals are merged first,
// so fully containing, partially overlapping and disjoint cases all reduce to
// the simple split below.
func subtractIntervals(iv Interval, busy []Interval) []Interval {
	free := []Interval{iv}
	for _, block := range mergeIntervals(busy) {
		var updated []Interval
		for _, f := range free {
			if block.End <= f.Start || block.Start >= f.End {
				updated = append(updated, f)
				continue
			}
			if block.Start > f.Start {
				updated = append(updated, Interval{Start: f.Start, End: block.Start})
			}
			if block.End < f.End {
				updated = append(updated, Interval{Start: block.End, End: f.End})
			}
		}
		free = updated
	}
	return free
}

// parseClock converts a "15:04" wall-clock string to minutes from midnight.
func parseClock(value string) (int, error) {
	t, err := time.Parse(ClockFormat, value)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// formatClock renders minutes from midnight as "15:04".
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// parseDate parses a "2006-01-02" date string.
func parseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// weekdayOf returns the weekday of a date string.
func weekdayOf(date string) (time.Weekday, error) {
	t, err := parseDate(date)
	if err != nil {
		return time.Sunday, err
	}
	return t.Weekday(), nil
}

// combineDateTime resolves a date string plus minutes from midnight into an
// absolute timestamp in the given location.
func combineDateTime(date string, minutes int, loc *time.Location) (time.Time, error) {
	t, err := parseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, minutes, 0, 0, loc), nil
}
