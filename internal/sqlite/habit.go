package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/tally/internal/domain/habit"
	"github.com/rpggio/tally/internal/repository"
)

// HabitRepository implements habit.Repository for SQLite
type HabitRepository struct {
	db *DB
}

// NewHabitRepository creates a new HabitRepository
func NewHabitRepository(db *DB) *HabitRepository {
	return &HabitRepository{db: db}
}

const habitColumns = `id, user_id, name, color, daily_goal, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner, h *habit.Habit) error {
	return row.Scan(
		&h.ID,
		&h.UserID,
		&h.Name,
		&h.Color,
		&h.DailyGoal,
		&h.IsActive,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
}

// Create inserts a new habit
func (r *HabitRepository) Create(ctx context.Context, h *habit.Habit) error {
	query := `
		INSERT INTO habits (` + habitColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.UserID,
		h.Name,
		h.Color,
		h.DailyGoal,
		h.IsActive,
		h.CreatedAt.UTC(),
		h.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create habit: %w", err)
	}

	return nil
}

// Get retrieves a habit by ID regardless of its active flag
func (r *HabitRepository) Get(ctx context.Context, id string) (*habit.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = ?`

	var h habit.Habit
	err := scanHabit(r.db.QueryRowContext(ctx, query, id), &h)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	return &h, nil
}

// ListActive returns a user's active habits, newest first
func (r *HabitRepository) ListActive(ctx context.Context, userID string) ([]habit.Habit, error) {
	query := `
		SELECT ` + habitColumns + `
		FROM habits
		WHERE user_id = ? AND is_active = 1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	var habits []habit.Habit
	for rows.Next() {
		var h habit.Habit
		if err := scanHabit(rows, &h); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating habit rows: %w", err)
	}

	return habits, nil
}

// Update replaces the mutable fields of a habit
func (r *HabitRepository) Update(ctx context.Context, h *habit.Habit) error {
	query := `
		UPDATE habits
		SET name = ?, color = ?, daily_goal = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, h.Name, h.Color, h.DailyGoal, h.UpdatedAt.UTC(), h.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireAffected(result)
}

// Deactivate soft-deletes a habit
func (r *HabitRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE habits SET is_active = 0, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate habit: %w", err)
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
