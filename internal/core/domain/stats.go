package domain

import (
	"math"
	"sort"
	"time"
)

const topHabitCount = 3

// Overview is the account-wide summary derived from all active habits. It is
// never persisted; every surface recomputes it from the current snapshot.
type Overview struct {
	Score       int        `json:"score"`
	PerfectDays []string   `json:"perfect_days"`
	TopHabits   []TopHabit `json:"top_habits"`
}

type TopHabit struct {
	HabitID  string `json:"habit_id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	Strength int    `json:"strength"`
	Streak   int    `json:"streak"`
}

// ComputeOverview aggregates strength and streaks across the non-archived
// habits of a snapshot. Archived habits keep their history but are invisible
// here. An empty snapshot yields the zero overview, not an error.
func ComputeOverview(habits []*Habit, today time.Time) *Overview {
	overview := &Overview{
		PerfectDays: []string{},
		TopHabits:   []TopHabit{},
	}

	var active []*Habit
	for _, h := range habits {
		if !h.IsArchived() {
			active = append(active, h)
		}
	}
	if len(active) == 0 {
		return overview
	}

	strengths := make([]int, len(active))
	sum := 0
	for i, h := range active {
		strengths[i] = Strength(h, today)
		sum += strengths[i]
	}
	overview.Score = int(math.Round(float64(sum) / float64(len(active))))

	for i := 0; i < strengthWindowDays; i++ {
		date := StartOfDay(today).AddDate(0, 0, -i)
		key := DateKey(date)

		due := 0
		perfect := true
		for _, h := range active {
			if !IsDue(h, date) {
				continue
			}
			due++
			if !h.GoalMetOn(key) {
				perfect = false
				break
			}
		}

		// A day nothing was due on cannot be perfect. Policy choice, not
		// a derived necessity.
		if due > 0 && perfect {
			overview.PerfectDays = append(overview.PerfectDays, key)
		}
	}

	order := make([]int, len(active))
	for i := range order {
		order[i] = i
	}
	// Stable sort: ties keep the caller's list order.
	sort.SliceStable(order, func(a, b int) bool {
		return strengths[order[a]] > strengths[order[b]]
	})

	top := topHabitCount
	if len(order) < top {
		top = len(order)
	}
	for _, idx := range order[:top] {
		h := active[idx]
		overview.TopHabits = append(overview.TopHabits, TopHabit{
			HabitID:  h.ID,
			Name:     h.Name,
			Color:    h.Color,
			Icon:     h.Icon,
			Strength: strengths[idx],
			Streak:   CurrentStreak(h, today),
		})
	}

	return overview
}
