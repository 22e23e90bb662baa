package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

type StatsService struct {
	repo  domain.HabitRepository
	clock domain.Clock
}

func NewStatsService(repo domain.HabitRepository, clock domain.Clock) *StatsService {
	return &StatsService{
		repo:  repo,
		clock: clock,
	}
}

// HabitStats is the per-habit detail view: current streak, strength and
// whether the habit is expected today.
type HabitStats struct {
	HabitID  string `json:"habit_id"`
	Streak   int    `json:"streak"`
	Strength int    `json:"strength"`
	DueToday bool   `json:"due_today"`
	Done     bool   `json:"done_today"`
}

// Overview computes the account-wide summary for a user. A zero today falls
// back to the clock; callers pin it for reproducible views.
func (s *StatsService) Overview(ctx context.Context, userID string, today time.Time) (*domain.Overview, error) {
	if today.IsZero() {
		today = s.clock.Today()
	}

	habits, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return domain.ComputeOverview(habits, today), nil
}

func (s *StatsService) ForHabit(ctx context.Context, id, userID string, today time.Time) (*HabitStats, error) {
	if today.IsZero() {
		today = s.clock.Today()
	}

	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	return &HabitStats{
		HabitID:  habit.ID,
		Streak:   domain.CurrentStreak(habit, today),
		Strength: domain.Strength(habit, today),
		DueToday: domain.IsDue(habit, today),
		Done:     habit.DoneOn(domain.DateKey(today)),
	}, nil
}
