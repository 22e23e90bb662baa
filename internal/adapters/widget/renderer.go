package widget

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

// Snapshot is the precomputed state a widget surface reads. Widgets never run
// the scheduling logic themselves; they display whatever was last rendered.
type Snapshot struct {
	SlotID     string    `json:"slot_id"`
	HabitID    string    `json:"habit_id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	Icon       string    `json:"icon"`
	Unit       string    `json:"unit,omitempty"`
	Goal       float64   `json:"goal"`
	Progress   float64   `json:"progress"`
	DueToday   bool      `json:"due_today"`
	DoneToday  bool      `json:"done_today"`
	Streak     int       `json:"streak"`
	Strength   int       `json:"strength"`
	RenderedAt time.Time `json:"rendered_at"`
}

func buildSnapshot(slotID string, h *domain.Habit, today time.Time) Snapshot {
	key := domain.DateKey(today)
	return Snapshot{
		SlotID:     slotID,
		HabitID:    h.ID,
		Name:       h.Name,
		Color:      h.Color,
		Icon:       h.Icon,
		Unit:       h.Unit,
		Goal:       h.Goal,
		Progress:   h.CompletionOn(key),
		DueToday:   domain.IsDue(h, today),
		DoneToday:  h.DoneOn(key),
		Streak:     domain.CurrentStreak(h, today),
		Strength:   domain.Strength(h, today),
		RenderedAt: time.Now().UTC(),
	}
}

var _ domain.WidgetRenderer = (*RedisRenderer)(nil)

// RedisRenderer writes one snapshot key per configured slot. Widget processes
// poll these keys; a stale snapshot simply expires.
type RedisRenderer struct {
	rdb   *redis.Client
	clock domain.Clock
	ttl   time.Duration
}

func NewRedisRenderer(rdb *redis.Client, clock domain.Clock, ttl time.Duration) *RedisRenderer {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &RedisRenderer{rdb: rdb, clock: clock, ttl: ttl}
}

func slotKey(slotID string) string {
	return fmt.Sprintf("widget:%s", slotID)
}

// Render refreshes every configured slot. One failing slot never blocks the
// others; the aggregate failure count is reported after the loop.
func (r *RedisRenderer) Render(ctx context.Context, habits []*domain.Habit, slots map[string]string) error {
	index := make(map[string]*domain.Habit, len(habits))
	for _, h := range habits {
		index[h.ID] = h
	}

	today := r.clock.Today()
	failed := 0

	for slotID, habitID := range slots {
		h, ok := index[habitID]
		if !ok {
			// Slot points at a deleted or archived habit: clear it so the
			// widget goes blank instead of showing stale data.
			if err := r.rdb.Del(ctx, slotKey(slotID)).Err(); err != nil {
				log.Printf("[WIDGET] Failed to clear slot %s: %v", slotID, err)
				failed++
			}
			continue
		}

		data, err := json.Marshal(buildSnapshot(slotID, h, today))
		if err != nil {
			log.Printf("[WIDGET] Failed to encode slot %s: %v", slotID, err)
			failed++
			continue
		}
		if err := r.rdb.Set(ctx, slotKey(slotID), data, r.ttl).Err(); err != nil {
			log.Printf("[WIDGET] Failed to write slot %s: %v", slotID, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("widget render: %d of %d slots failed", failed, len(slots))
	}
	return nil
}

var _ domain.WidgetRenderer = (*LogRenderer)(nil)

// LogRenderer stands in when no Redis is configured: snapshots go to the log
// so local development still shows what widgets would display.
type LogRenderer struct {
	clock domain.Clock
}

func NewLogRenderer(clock domain.Clock) *LogRenderer {
	return &LogRenderer{clock: clock}
}

func (r *LogRenderer) Render(ctx context.Context, habits []*domain.Habit, slots map[string]string) error {
	index := make(map[string]*domain.Habit, len(habits))
	for _, h := range habits {
		index[h.ID] = h
	}

	today := r.clock.Today()
	for slotID, habitID := range slots {
		h, ok := index[habitID]
		if !ok {
			log.Printf("[WIDGET] slot %s: habit %s gone, slot cleared", slotID, habitID)
			continue
		}
		snap := buildSnapshot(slotID, h, today)
		log.Printf("[WIDGET] slot %s: %s streak=%d strength=%d done=%v",
			slotID, snap.Name, snap.Streak, snap.Strength, snap.DoneToday)
	}
	return nil
}
