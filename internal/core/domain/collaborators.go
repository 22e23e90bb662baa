package domain

import (
	"context"
	"time"
)

// Clock supplies "today". The pure functions take the reference date as a
// parameter; services resolve it through this interface so tests can pin it.
type Clock interface {
	Today() time.Time
}

// SystemClock reads the wall clock in a fixed location. The location matters:
// date keys are derived from it, and a UTC key on a local-time device shifts
// every completion around midnight.
type SystemClock struct {
	Loc *time.Location
}

func (c SystemClock) Today() time.Time {
	loc := c.Loc
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

// NotificationScheduler schedules recurring local reminders. It is called only
// when a habit's reminders change or the habit is archived or deleted; its
// failures are logged by the caller and never interrupt the mutation.
type NotificationScheduler interface {
	// Schedule registers one recurring notification per time-of-day value
	// and returns one opaque identifier per reminder.
	Schedule(ctx context.Context, times []string, title, body string) ([]string, error)

	// Cancel removes previously scheduled notifications by identifier.
	Cancel(ctx context.Context, ids []string) error
}

// WidgetRenderer re-renders the configured display surfaces from the active
// habit list. slots maps widget-slot-id to habit-id. A failing slot must not
// prevent the remaining slots from rendering.
type WidgetRenderer interface {
	Render(ctx context.Context, habits []*Habit, slots map[string]string) error
}
