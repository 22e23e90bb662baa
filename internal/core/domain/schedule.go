package domain

import (
	"sort"
	"time"
)

const (
	FreqDaily    = "daily"
	FreqWeekly   = "weekly"
	FreqInterval = "interval"
)

// Schedule is the frequency rule of a habit. It is a closed tagged variant:
// anything outside the three known types falls through to "always due" rather
// than silently hiding the habit (fail-open policy).
type Schedule struct {
	Type string `json:"type"`

	// Days holds the weekdays a weekly habit is due on. An empty set means
	// "flexible weekly": due every day, the cadence is only communicated to
	// the user, never enforced by the due check.
	Days []Weekday `json:"days,omitempty"`

	// Interval and StartDate drive the every-N-days rule. Day 0 (the start
	// date itself) is always due.
	Interval  int        `json:"interval,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
}

// Validate checks the rule. Unknown types are accepted: the evaluator treats
// them as daily, and rejecting them here would break imports of records
// written by newer clients.
func (s *Schedule) Validate() error {
	if s == nil {
		return nil
	}
	for _, d := range s.Days {
		if !validWeekdays[d] {
			return ErrInvalidWeekday
		}
	}
	if s.Interval < 0 {
		return ErrInvalidInterval
	}
	return nil
}

func normalizeDays(days []Weekday) []Weekday {
	if len(days) == 0 {
		return nil
	}

	seen := make(map[Weekday]bool, len(days))
	var unique []Weekday
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			unique = append(unique, d)
		}
	}

	order := map[Weekday]int{Mon: 0, Tue: 1, Wed: 2, Thu: 3, Fri: 4, Sat: 5, Sun: 6}
	sort.Slice(unique, func(i, j int) bool {
		return order[unique[i]] < order[unique[j]]
	})
	return unique
}

// IsDue reports whether the habit is expected to be acted on for the calendar
// day of date. It is a pure function and never fails: a missing or malformed
// frequency defaults to due, because a habit silently disappearing from the
// due-today list is worse than an incorrectly shown one.
func IsDue(h *Habit, date time.Time) bool {
	if h == nil || h.Frequency == nil {
		return true
	}

	switch h.Frequency.Type {
	case FreqDaily:
		return true

	case FreqWeekly:
		if len(h.Frequency.Days) == 0 {
			return true
		}
		name := WeekdayName(date)
		for _, d := range h.Frequency.Days {
			if d == name {
				return true
			}
		}
		return false

	case FreqInterval:
		if h.Frequency.StartDate == nil {
			return true
		}
		interval := h.Frequency.Interval
		if interval < 1 {
			interval = 1
		}
		return DaysBetween(*h.Frequency.StartDate, date)%interval == 0

	default:
		return true
	}
}
