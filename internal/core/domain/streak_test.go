package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

// 2024-03-15 is a Friday.
var today = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return today.AddDate(0, 0, -n)
}

func complete(h *domain.Habit, days ...int) {
	for _, n := range days {
		h.SetCompletion(domain.DateKey(daysAgo(n)), 1)
	}
}

func TestCurrentStreak(t *testing.T) {
	t.Run("Edge Case: No completions", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Read")
		assert.Equal(t, 0, domain.CurrentStreak(h, today))
	})

	t.Run("Success: Consecutive completions count until the first missed due day", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Read")
		complete(h, 0, 1, 2) // gap at daysAgo(3), daily habit so it was due

		assert.Equal(t, 3, domain.CurrentStreak(h, today))
	})

	t.Run("Success: A completion beyond the gap does not count", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Read")
		complete(h, 0, 1, 2, 4, 5)

		assert.Equal(t, 3, domain.CurrentStreak(h, today))
	})

	t.Run("Success: Today pending does not zero yesterday's streak", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Read")
		complete(h, 1, 2, 3)

		assert.Equal(t, 3, domain.CurrentStreak(h, today),
			"today is forgiven while the day is not over")
	})

	t.Run("Success: Rest days of a weekly schedule are bridged", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Gym")
		h.Frequency = &domain.Schedule{
			Type: domain.FreqWeekly,
			Days: []domain.Weekday{domain.Mon, domain.Wed, domain.Fri},
		}

		// Today is Friday. Complete every due day for two weeks:
		// Fri(0), Wed(2), Mon(4), Fri(7), Wed(9), Mon(11).
		complete(h, 0, 2, 4, 7, 9, 11)

		assert.Equal(t, 6, domain.CurrentStreak(h, today),
			"streak equals due-and-completed days, rest days do not break it")
	})

	t.Run("Success: A missed due day on a weekly schedule breaks the chain", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Gym")
		h.Frequency = &domain.Schedule{
			Type: domain.FreqWeekly,
			Days: []domain.Weekday{domain.Mon, domain.Wed, domain.Fri},
		}

		// Wednesday (2 days ago) was due and missed.
		complete(h, 0, 4, 7)

		assert.Equal(t, 1, domain.CurrentStreak(h, today))
	})

	t.Run("Success: Interval rest days are bridged", func(t *testing.T) {
		start := domain.StartOfDay(daysAgo(9))
		h, _ := domain.NewHabit("u1", "Deep clean")
		h.Frequency = &domain.Schedule{
			Type:      domain.FreqInterval,
			Interval:  3,
			StartDate: &start,
		}

		// Due on daysAgo 9, 6, 3, 0. Complete all of them.
		complete(h, 0, 3, 6, 9)

		assert.Equal(t, 4, domain.CurrentStreak(h, today))
	})

	t.Run("Success: Positive numeric amount below goal still extends the streak", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Hydrate")
		h.Type = domain.HabitTypeNumeric
		h.Goal = 2000

		h.SetCompletion(domain.DateKey(daysAgo(0)), 1500)
		h.SetCompletion(domain.DateKey(daysAgo(1)), 2500)

		assert.Equal(t, 2, domain.CurrentStreak(h, today))
	})

	t.Run("Edge Case: Terminates within the lookback bound on never-due habits", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Corrupt")
		h.Frequency = &domain.Schedule{Type: domain.FreqWeekly, Days: []domain.Weekday{"???"}}

		// The weekly day never matches, so no due day is ever found walking
		// back. The walk must still stop at the hard bound.
		assert.Equal(t, 0, domain.CurrentStreak(h, today))
	})

	t.Run("Edge Case: Streak is capped by the lookback bound", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Veteran")
		for i := 0; i < 1000; i++ {
			h.SetCompletion(domain.DateKey(daysAgo(i)), 1)
		}

		assert.Equal(t, 730, domain.CurrentStreak(h, today))
	})
}
