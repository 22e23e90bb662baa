package domain

import (
	"math"
	"time"
)

const (
	strengthWindowDays = 30
	recentWindowDays   = 7
	recentWeight       = 1.5
	baseWeight         = 1.0
)

// Strength scores a habit 0-100 over the 30-day window ending today
// (inclusive): the ratio of goal-met due days to due days, with the most
// recent week weighted 1.5x. Days the habit was not due contribute no weight.
// A habit never due in the window scores 0.
func Strength(h *Habit, today time.Time) int {
	var score, totalWeight float64

	for i := 0; i < strengthWindowDays; i++ {
		date := StartOfDay(today).AddDate(0, 0, -i)
		if !IsDue(h, date) {
			continue
		}

		w := baseWeight
		if i < recentWindowDays {
			w = recentWeight
		}
		totalWeight += w

		if h.GoalMetOn(DateKey(date)) {
			score += w
		}
	}

	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(100 * score / totalWeight))
}
