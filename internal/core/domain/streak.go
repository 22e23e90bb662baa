package domain

import "time"

// maxStreakLookback bounds the backward walk to roughly two years so the
// computation terminates even on corrupt schedules or completion logs.
const maxStreakLookback = 730

// CurrentStreak walks backward from today one calendar day at a time and
// counts the unbroken run of completions ending at or before today.
//
// A day with any positive logged amount extends the streak; for numeric
// habits showing up counts here, unlike Strength which requires the goal.
// A past due day with no activity breaks the chain. Today is forgiven while
// still pending so the displayed streak does not flicker to zero at midnight,
// and non-due days are bridged without incrementing.
func CurrentStreak(h *Habit, today time.Time) int {
	streak := 0
	d := StartOfDay(today)

	for i := 0; i < maxStreakLookback; i++ {
		switch {
		case h.DoneOn(DateKey(d)):
			streak++
		case IsDue(h, d) && i > 0:
			return streak
		}
		d = d.AddDate(0, 0, -1)
	}

	return streak
}
