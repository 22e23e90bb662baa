package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

const ExportVersion = "1"

// ExportDocument is the interchange format: the full habit collection plus the
// opaque settings document. Importing it back yields an identical collection.
type ExportDocument struct {
	Habits     []*domain.Habit            `json:"habits"`
	Settings   map[string]json.RawMessage `json:"settings"`
	ExportDate time.Time                  `json:"exportDate"`
	Version    string                     `json:"version"`
}

type ExchangeService struct {
	repo     domain.HabitRepository
	settings domain.SettingsRepository
	clock    domain.Clock
}

func NewExchangeService(repo domain.HabitRepository, settings domain.SettingsRepository, clock domain.Clock) *ExchangeService {
	return &ExchangeService{
		repo:     repo,
		settings: settings,
		clock:    clock,
	}
}

func (s *ExchangeService) Export(ctx context.Context, userID string) (*ExportDocument, error) {
	habits, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []*domain.Habit{}
	}

	settings := map[string]json.RawMessage{}
	if s.settings != nil {
		stored, err := s.settings.All(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("export settings: %w", err)
		}
		if stored != nil {
			settings = stored
		}
	}

	return &ExportDocument{
		Habits:     habits,
		Settings:   settings,
		ExportDate: s.clock.Today().UTC(),
		Version:    ExportVersion,
	}, nil
}

// Import replaces the user's entire habit collection with the payload's,
// verbatim. The only validation is the top-level shape: "habits" must be a
// JSON array, anything else fails with ErrImportFormat. Individual habit
// records are taken as-is, with no per-field checks.
func (s *ExchangeService) Import(ctx context.Context, userID string, payload []byte) (int, error) {
	var envelope struct {
		Habits   json.RawMessage            `json:"habits"`
		Settings map[string]json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrImportFormat, err)
	}

	raw := bytes.TrimSpace(envelope.Habits)
	if len(raw) == 0 || raw[0] != '[' {
		return 0, domain.ErrImportFormat
	}

	var habits []*domain.Habit
	if err := json.Unmarshal(raw, &habits); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrImportFormat, err)
	}

	// Imported records belong to the importing user regardless of the ids
	// baked into the file.
	for _, h := range habits {
		h.UserID = userID
	}

	if err := s.repo.ReplaceAll(ctx, userID, habits); err != nil {
		return 0, err
	}

	if s.settings != nil && envelope.Settings != nil {
		if err := s.settings.ReplaceAll(ctx, userID, envelope.Settings); err != nil {
			return 0, fmt.Errorf("import settings: %w", err)
		}
	}

	return len(habits), nil
}
