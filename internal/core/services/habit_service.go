package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

// RefreshKicker is the hook into the background refresh worker. Kicks are
// fire-and-forget: widget and sync state may lag a mutation by the debounce
// window, which is acceptable.
type RefreshKicker interface {
	Kick(userID string)
}

type HabitService struct {
	repo      domain.HabitRepository
	scheduler domain.NotificationScheduler
	refresh   RefreshKicker
	clock     domain.Clock

	// reminderIDs maps habit id to the opaque notification identifiers the
	// scheduler returned for it. Binding bookkeeping belongs here, not on
	// the habit record.
	mu          sync.Mutex
	reminderIDs map[string][]string
}

func NewHabitService(repo domain.HabitRepository, scheduler domain.NotificationScheduler, refresh RefreshKicker, clock domain.Clock) *HabitService {
	return &HabitService{
		repo:        repo,
		scheduler:   scheduler,
		refresh:     refresh,
		clock:       clock,
		reminderIDs: make(map[string][]string),
	}
}

type CreateHabitInput struct {
	UserID      string
	Name        string
	Description string
	Icon        string
	Color       string
	Category    string
	Type        string
	Unit        string
	Goal        float64
	Frequency   *domain.Schedule
	Reminders   []string
}

type UpdateHabitInput struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Icon        string
	Color       string
	Category    string
	Type        string
	Unit        string
	Goal        float64
	Frequency   *domain.Schedule
	Reminders   []string
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.Name)
	if err != nil {
		return nil, err
	}

	hType := input.Type
	if hType == "" {
		hType = domain.HabitTypeBinary
	}

	err = habit.Update(input.Name, input.Description, input.Icon, input.Color,
		input.Category, hType, input.Unit, input.Goal, input.Frequency, input.Reminders)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	if len(habit.Reminders) > 0 {
		s.rescheduleReminders(ctx, habit)
	}
	s.kick(input.UserID)

	return habit, nil
}

func (s *HabitService) List(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// ListActive returns the non-archived habits, the set every due-today view
// and aggregate works on.
func (s *HabitService) ListActive(ctx context.Context, userID string) ([]*domain.Habit, error) {
	all, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	active := make([]*domain.Habit, 0, len(all))
	for _, h := range all {
		if !h.IsArchived() {
			active = append(active, h)
		}
	}
	return active, nil
}

func (s *HabitService) Get(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	existing, err := s.Get(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	remindersChanged := !equalStrings(existing.Reminders, input.Reminders)

	habit := existing.Clone()
	err = habit.Update(input.Name, input.Description, input.Icon, input.Color,
		input.Category, input.Type, input.Unit, input.Goal, input.Frequency, input.Reminders)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	if remindersChanged {
		s.rescheduleReminders(ctx, habit)
	}
	s.kick(input.UserID)

	return habit, nil
}

func (s *HabitService) Archive(ctx context.Context, id, userID string) error {
	habit, err := s.Get(ctx, id, userID)
	if err != nil {
		return err
	}

	updated := habit.Clone()
	updated.Archive()

	if err := s.repo.Update(ctx, updated); err != nil {
		return err
	}

	s.cancelReminders(ctx, id)
	s.kick(userID)
	return nil
}

func (s *HabitService) Restore(ctx context.Context, id, userID string) error {
	habit, err := s.Get(ctx, id, userID)
	if err != nil {
		return err
	}

	updated := habit.Clone()
	updated.Restore()

	if err := s.repo.Update(ctx, updated); err != nil {
		return err
	}

	if len(updated.Reminders) > 0 {
		s.rescheduleReminders(ctx, updated)
	}
	s.kick(userID)
	return nil
}

func (s *HabitService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cancelReminders(ctx, id)
	s.kick(userID)
	return nil
}

// SetCompletion records activity for a habit on a calendar day. A zero date
// means today. accumulate adds to the existing amount instead of replacing it.
func (s *HabitService) SetCompletion(ctx context.Context, id, userID string, date time.Time, value float64, accumulate bool) (*domain.Habit, error) {
	habit, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if date.IsZero() {
		date = s.clock.Today()
	}
	key := domain.DateKey(date)

	updated := habit.Clone()
	if accumulate {
		updated.AddCompletion(key, value)
	} else {
		updated.SetCompletion(key, value)
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.kick(userID)
	return updated, nil
}

// ToggleCompletion flips a binary habit's day. Numeric habits go through
// SetCompletion instead.
func (s *HabitService) ToggleCompletion(ctx context.Context, id, userID string, date time.Time) (*domain.Habit, error) {
	habit, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if date.IsZero() {
		date = s.clock.Today()
	}
	key := domain.DateKey(date)

	updated := habit.Clone()
	updated.ToggleCompletion(key)

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.kick(userID)
	return updated, nil
}

// rescheduleReminders swaps a habit's scheduled notifications for its current
// reminder list. Scheduler failures never surface to the caller: a missed
// reminder must not fail the habit mutation that triggered it.
func (s *HabitService) rescheduleReminders(ctx context.Context, habit *domain.Habit) {
	if s.scheduler == nil {
		return
	}

	s.cancelReminders(ctx, habit.ID)

	if len(habit.Reminders) == 0 {
		return
	}

	ids, err := s.scheduler.Schedule(ctx, habit.Reminders, habit.Name, habit.Description)
	if err != nil {
		log.Printf("Reminder scheduling failed for habit %s: %v", habit.ID, err)
		return
	}

	s.mu.Lock()
	s.reminderIDs[habit.ID] = ids
	s.mu.Unlock()
}

func (s *HabitService) cancelReminders(ctx context.Context, habitID string) {
	if s.scheduler == nil {
		return
	}

	s.mu.Lock()
	ids := s.reminderIDs[habitID]
	delete(s.reminderIDs, habitID)
	s.mu.Unlock()

	if len(ids) == 0 {
		return
	}
	if err := s.scheduler.Cancel(ctx, ids); err != nil {
		log.Printf("Reminder cancellation failed for habit %s: %v", habitID, err)
	}
}

func (s *HabitService) kick(userID string) {
	if s.refresh != nil {
		s.refresh.Kick(userID)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
