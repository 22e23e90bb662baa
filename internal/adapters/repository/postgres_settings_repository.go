package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
)

// PostgresSettingsRepository stores the whole settings document as one jsonb
// row per user. Values stay opaque to the engine.
type PostgresSettingsRepository struct {
	db *sqlx.DB
}

func NewPostgresSettingsRepository(db *sqlx.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

func (r *PostgresSettingsRepository) All(ctx context.Context, userID string) (map[string]json.RawMessage, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT doc FROM settings_docs WHERE user_id = $1`, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	var settings map[string]json.RawMessage
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

func (r *PostgresSettingsRepository) Get(ctx context.Context, userID, key string) (json.RawMessage, error) {
	settings, err := r.All(ctx, userID)
	if err != nil {
		return nil, err
	}
	return settings[key], nil
}

func (r *PostgresSettingsRepository) ReplaceAll(ctx context.Context, userID string, settings map[string]json.RawMessage) error {
	doc, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO settings_docs (user_id, doc) VALUES ($1, $2)
        ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc`,
		userID, doc)
	if err != nil {
		return fmt.Errorf("store settings: %w", err)
	}
	return nil
}

// InMemorySettingsRepository mirrors the Postgres behavior for tests and
// single-process deployments.
type InMemorySettingsRepository struct {
	store map[string]map[string]json.RawMessage

	mu sync.RWMutex
}

func NewInMemorySettingsRepository() *InMemorySettingsRepository {
	return &InMemorySettingsRepository{
		store: make(map[string]map[string]json.RawMessage),
	}
}

func (r *InMemorySettingsRepository) All(ctx context.Context, userID string) (map[string]json.RawMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	settings := make(map[string]json.RawMessage, len(r.store[userID]))
	for k, v := range r.store[userID] {
		settings[k] = v
	}
	return settings, nil
}

func (r *InMemorySettingsRepository) Get(ctx context.Context, userID, key string) (json.RawMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.store[userID][key], nil
}

func (r *InMemorySettingsRepository) ReplaceAll(ctx context.Context, userID string, settings map[string]json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make(map[string]json.RawMessage, len(settings))
	for k, v := range settings {
		copied[k] = v
	}
	r.store[userID] = copied
	return nil
}
