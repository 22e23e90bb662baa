package domain

import (
	"math"
	"time"
)

// DateKeyLayout is the canonical calendar-day key format. Every place a date
// is stored or compared uses this key, always derived in the date's own
// location; mixing UTC and local keys produces off-by-one bugs at midnight.
const DateKeyLayout = "2006-01-02"

type Weekday string

const (
	Mon Weekday = "Mon"
	Tue Weekday = "Tue"
	Wed Weekday = "Wed"
	Thu Weekday = "Thu"
	Fri Weekday = "Fri"
	Sat Weekday = "Sat"
	Sun Weekday = "Sun"
)

var validWeekdays = map[Weekday]bool{
	Mon: true, Tue: true, Wed: true, Thu: true, Fri: true, Sat: true, Sun: true,
}

// DateKey returns the canonical YYYY-MM-DD key for the calendar day of t.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// WeekdayName returns the locale-independent three-letter weekday of t.
func WeekdayName(t time.Time) Weekday {
	return Weekday(t.Format("Mon"))
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of whole calendar days between a and b,
// order-independent and never negative. Both dates are normalized to midnight
// before subtracting; the division rounds up so a 23-hour day caused by a DST
// shift still counts as one full day.
func DaysBetween(a, b time.Time) int {
	a = StartOfDay(a)
	b = StartOfDay(b)
	if a.After(b) {
		a, b = b, a
	}
	return int(math.Ceil(b.Sub(a).Hours() / 24))
}
