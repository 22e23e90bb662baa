package notification

import (
	"context"
	"regexp"
	"sync"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

var timeRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

var _ domain.NotificationScheduler = (*LocalScheduler)(nil)

type entry struct {
	Time  string
	Title string
	Body  string
}

// LocalScheduler keeps an in-process registry of recurring reminders.
// Delivery is the platform's concern; the engine only owns the bindings
// between habits and their opaque notification identifiers.
type LocalScheduler struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewLocalScheduler() *LocalScheduler {
	return &LocalScheduler{
		entries: make(map[string]entry),
	}
}

func (s *LocalScheduler) Schedule(ctx context.Context, times []string, title, body string) ([]string, error) {
	for _, t := range times {
		if !timeRegex.MatchString(t) {
			return nil, domain.ErrInvalidReminder
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(times))
	for _, t := range times {
		id := uuid.New().String()
		s.entries[id] = entry{Time: t, Title: title, Body: body}
		ids = append(ids, id)
	}
	return ids, nil
}

// Cancel removes reminders by identifier. Unknown ids are skipped, not
// errors: a binding may already be gone after a crash or double cancel.
func (s *LocalScheduler) Cancel(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.entries, id)
	}
	return nil
}

// Pending reports how many reminders are currently registered.
func (s *LocalScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
