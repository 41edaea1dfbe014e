package domain

import (
	"fmt"
	"strings"
	"time"
)

// IsApplicableAt reports whether the rule applies at the given absolute
// instant, evaluated in the supplied reference location. Every calendar
// comparison (weekday, month, year, time of day) happens in that one
// location so two calls with the same instant always agree.
//
// Disabled rules never apply. Empty recurrence sets never satisfy their
// check: a rule with no configured weekdays applies on no weekday.
func (r *Rule) IsApplicableAt(instant time.Time, loc *time.Location) bool {
	if !r.Enabled {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	local := instant.In(loc)

	if !containsFold(r.Weekdays, local.Weekday().String()) {
		return false
	}
	if !containsFold(r.Months, local.Month().String()) {
		return false
	}
	if !containsYear(r.Years, local.Year()) {
		return false
	}

	// StartTime/EndTime are validated on every write path, so a
	// parse failure here means the row bypassed Validate. Such a
	// rule is treated as never applicable rather than applicable.
	start, err := parseTimeOfDay(r.StartTime)
	if err != nil {
		return false
	}
	end, err := parseTimeOfDay(r.EndTime)
	if err != nil {
		return false
	}

	return windowContains(start, end, secondsOfDay(local))
}

// windowContains implements the inclusive time-of-day window. When
// start > end the window crosses midnight: applicable iff the instant
// falls at or after start OR at or before end. A naive start<=t<=end
// check would silently exclude every overnight window.
func windowContains(start, end, t int) bool {
	if start <= end {
		return t >= start && t <= end
	}
	return t >= start || t <= end
}

// parseTimeOfDay converts "HH:MM:SS" (seconds optional) into seconds
// since midnight.
func parseTimeOfDay(value string) (int, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return secondsOfDay(parsed), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", value)
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), target) {
			return true
		}
	}
	return false
}

func containsYear(values []int, target int) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
