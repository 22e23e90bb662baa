package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
)

func TestStatsService_Overview(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Success: Aggregates over the stored snapshot", func(t *testing.T) {
		repo := new(MockHabitRepo)
		svc := services.NewStatsService(repo, fixedClock{now: today})

		h, _ := domain.NewHabit("u1", "Read")
		for i := 0; i < 30; i++ {
			h.SetCompletion(domain.DateKey(today.AddDate(0, 0, -i)), 1)
		}
		repo.On("ListByUserID", ctx, "u1").Return([]*domain.Habit{h}, nil)

		overview, err := svc.Overview(ctx, "u1", time.Time{})

		require.NoError(t, err)
		assert.Equal(t, 100, overview.Score)
		assert.Len(t, overview.PerfectDays, 30)
		require.Len(t, overview.TopHabits, 1)
		assert.Equal(t, 30, overview.TopHabits[0].Streak)
	})

	t.Run("Edge Case: No habits yields the zero overview", func(t *testing.T) {
		repo := new(MockHabitRepo)
		svc := services.NewStatsService(repo, fixedClock{now: today})

		repo.On("ListByUserID", ctx, "u1").Return([]*domain.Habit{}, nil)

		overview, err := svc.Overview(ctx, "u1", time.Time{})

		require.NoError(t, err)
		assert.Equal(t, 0, overview.Score)
		assert.Empty(t, overview.PerfectDays)
		assert.Empty(t, overview.TopHabits)
	})

	t.Run("Error: Repository failure propagates", func(t *testing.T) {
		repo := new(MockHabitRepo)
		svc := services.NewStatsService(repo, fixedClock{now: today})

		repo.On("ListByUserID", ctx, "u1").Return(nil, errors.New("db down"))

		_, err := svc.Overview(ctx, "u1", time.Time{})
		assert.Error(t, err)
	})
}

func TestStatsService_ForHabit(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Success: Streak, strength and due flags for one habit", func(t *testing.T) {
		repo := new(MockHabitRepo)
		svc := services.NewStatsService(repo, fixedClock{now: today})

		h, _ := domain.NewHabit("u1", "Read")
		h.SetCompletion("2024-03-15", 1)
		h.SetCompletion("2024-03-14", 1)
		repo.On("GetByID", ctx, h.ID).Return(h, nil)

		stats, err := svc.ForHabit(ctx, h.ID, "u1", time.Time{})

		require.NoError(t, err)
		assert.Equal(t, 2, stats.Streak)
		assert.True(t, stats.DueToday)
		assert.True(t, stats.Done)
		assert.Greater(t, stats.Strength, 0)
	})

	t.Run("Error: Foreign habit reads as not found", func(t *testing.T) {
		repo := new(MockHabitRepo)
		svc := services.NewStatsService(repo, fixedClock{now: today})

		h, _ := domain.NewHabit("u1", "Read")
		repo.On("GetByID", ctx, h.ID).Return(h, nil)

		_, err := svc.ForHabit(ctx, h.ID, "u2", time.Time{})
		assert.Equal(t, domain.ErrHabitNotFound, err)
	})
}
