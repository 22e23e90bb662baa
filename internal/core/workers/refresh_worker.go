package workers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

const (
	defaultDebounce = 1500 * time.Millisecond
	kickQueueSize   = 100
)

// widgetSlotsKey is the settings entry holding the slot-id -> habit-id map.
const widgetSlotsKey = "widgets"

// RefreshWorker re-renders widget surfaces after habit mutations. Kicks for
// the same user arriving within the debounce window are coalesced into one
// render pass, so rapid toggling does not hammer the renderer. Rendering is
// eventual: nothing blocks on it.
type RefreshWorker struct {
	habits   domain.HabitRepository
	settings domain.SettingsRepository
	renderer domain.WidgetRenderer
	clock    domain.Clock

	kicks    chan string
	debounce time.Duration
}

func NewRefreshWorker(habits domain.HabitRepository, settings domain.SettingsRepository, renderer domain.WidgetRenderer, clock domain.Clock, debounce time.Duration) *RefreshWorker {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &RefreshWorker{
		habits:   habits,
		settings: settings,
		renderer: renderer,
		clock:    clock,
		kicks:    make(chan string, kickQueueSize),
		debounce: debounce,
	}
}

// Kick requests a refresh for a user. Non-blocking: when the queue is full
// the kick is dropped, the next mutation will request another one.
func (w *RefreshWorker) Kick(userID string) {
	select {
	case w.kicks <- userID:
	default:
		log.Printf("Refresh queue full, dropping kick for user %s", userID)
	}
}

// Start runs the worker loop until ctx is cancelled.
func (w *RefreshWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Refresh worker started in background...")

		pending := make(map[string]struct{})
		timer := time.NewTimer(w.debounce)
		if !timer.Stop() {
			<-timer.C
		}
		armed := false

		for {
			select {
			case userID := <-w.kicks:
				pending[userID] = struct{}{}
				// Restart the window on every kick so a burst flushes once.
				if armed && !timer.Stop() {
					<-timer.C
				}
				timer.Reset(w.debounce)
				armed = true

			case <-timer.C:
				armed = false
				for userID := range pending {
					w.refresh(ctx, userID)
				}
				pending = make(map[string]struct{})

			case <-ctx.Done():
				log.Println("Refresh worker shutting down...")
				return
			}
		}
	}()
}

func (w *RefreshWorker) refresh(ctx context.Context, userID string) {
	habits, err := w.habits.ListByUserID(ctx, userID)
	if err != nil {
		log.Printf("Refresh: fetching habits for %s failed: %v", userID, err)
		return
	}

	active := make([]*domain.Habit, 0, len(habits))
	for _, h := range habits {
		if !h.IsArchived() {
			active = append(active, h)
		}
	}

	slots := w.widgetSlots(ctx, userID)
	if len(slots) == 0 {
		return
	}

	if err := w.renderer.Render(ctx, active, slots); err != nil {
		log.Printf("Refresh: widget render for %s failed: %v", userID, err)
	}
}

func (w *RefreshWorker) widgetSlots(ctx context.Context, userID string) map[string]string {
	if w.settings == nil {
		return nil
	}

	raw, err := w.settings.Get(ctx, userID, widgetSlotsKey)
	if err != nil || len(raw) == 0 {
		return nil
	}

	var slots map[string]string
	if err := json.Unmarshal(raw, &slots); err != nil {
		log.Printf("Refresh: malformed widget config for %s: %v", userID, err)
		return nil
	}
	return slots
}
