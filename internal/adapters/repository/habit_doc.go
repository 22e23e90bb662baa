package repository

import (
	"encoding/json"
	"fmt"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

// habitDoc tolerates the historical blob shape: early clients persisted the
// completion log under "logs". The migration happens here, at load time;
// the core only ever sees CompletedDates.
type habitDoc struct {
	domain.Habit
	LegacyLogs map[string]float64 `json:"logs,omitempty"`
}

func decodeHabitDoc(raw []byte) (*domain.Habit, error) {
	var doc habitDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode habit doc: %w", err)
	}

	habit := doc.Habit
	if habit.CompletedDates == nil && doc.LegacyLogs != nil {
		habit.CompletedDates = doc.LegacyLogs
	}

	// Drop zero-or-negative entries a buggy old client may have written;
	// absence is the only representation of "no activity".
	for key, v := range habit.CompletedDates {
		if v <= 0 {
			delete(habit.CompletedDates, key)
		}
	}

	return &habit, nil
}

func encodeHabitDoc(habit *domain.Habit) ([]byte, error) {
	data, err := json.Marshal(habit)
	if err != nil {
		return nil, fmt.Errorf("encode habit doc: %w", err)
	}
	return data, nil
}
