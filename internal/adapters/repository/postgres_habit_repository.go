package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

// PostgresHabitRepository persists each habit as a jsonb document in a
// key-value blob table. The database never interprets habit internals beyond
// the (user_id, id) addressing columns.
type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (r *PostgresHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	doc, err := encodeHabitDoc(habit)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO habit_docs (id, user_id, doc, updated_at)
        VALUES ($1, $2, $3, $4)`

	_, err = r.db.ExecContext(ctx, query, habit.ID, habit.UserID, doc, habit.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrHabitExists
		}
		return fmt.Errorf("insert habit: %w", err)
	}
	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT doc FROM habit_docs WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("get habit: %w", err)
	}

	return decodeHabitDoc(raw)
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT doc FROM habit_docs WHERE user_id = $1 ORDER BY doc->>'created_at', id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []*domain.Habit
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habit, err := decodeHabitDoc(raw)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

func (r *PostgresHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	doc, err := encodeHabitDoc(habit)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE habit_docs SET doc = $1, updated_at = $2 WHERE id = $3`,
		doc, habit.UpdatedAt, habit.ID)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	if affected == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habit_docs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	if affected == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

// ReplaceAll swaps a user's collection in one transaction so a reader never
// observes a half-imported state.
func (r *PostgresHabitRepository) ReplaceAll(ctx context.Context, userID string, habits []*domain.Habit) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM habit_docs WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear habits: %w", err)
	}

	for _, habit := range habits {
		doc, err := encodeHabitDoc(habit)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO habit_docs (id, user_id, doc, updated_at) VALUES ($1, $2, $3, $4)`,
			habit.ID, habit.UserID, doc, habit.UpdatedAt); err != nil {
			return fmt.Errorf("import habit %s: %w", habit.ID, err)
		}
	}

	return tx.Commit()
}
