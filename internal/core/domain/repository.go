package domain

import (
	"context"
	"encoding/json"
)

// HabitRepository is the habit store collaborator. The core treats whatever it
// returns as an immutable snapshot; writes are whole-record replacements.
type HabitRepository interface {
	// Create persists a new habit definition.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all habits of a user, archived included.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update replaces the stored record with the given version, same id.
	Update(ctx context.Context, habit *Habit) error

	// Delete permanently removes a habit, history included.
	Delete(ctx context.Context, id string) error

	// ReplaceAll swaps a user's entire collection, used by import.
	ReplaceAll(ctx context.Context, userID string, habits []*Habit) error
}

// SettingsRepository stores the opaque per-user settings document. The engine
// never interprets values except the widget slot config.
type SettingsRepository interface {
	All(ctx context.Context, userID string) (map[string]json.RawMessage, error)
	Get(ctx context.Context, userID, key string) (json.RawMessage, error)
	ReplaceAll(ctx context.Context, userID string, settings map[string]json.RawMessage) error
}
