package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/tally/internal/calendar"
	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/repository"
)

// CountRepository implements count.Repository for SQLite
type CountRepository struct {
	db *DB
}

// NewCountRepository creates a new CountRepository
func NewCountRepository(db *DB) *CountRepository {
	return &CountRepository{db: db}
}

const countColumns = `habit_id, count_date, count_value, created_at, updated_at`

func scanCount(row rowScanner, c *count.Count) error {
	return row.Scan(&c.HabitID, &c.Date, &c.Value, &c.CreatedAt, &c.UpdatedAt)
}

// Get retrieves the count stored under key
func (r *CountRepository) Get(ctx context.Context, key count.Key) (*count.Count, error) {
	query := `SELECT ` + countColumns + ` FROM habit_counts WHERE habit_id = ? AND count_date = ?`

	var c count.Count
	err := scanCount(r.db.QueryRowContext(ctx, query, key.HabitID, key.Date), &c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get count: %w", err)
	}

	return &c, nil
}

// Upsert writes c, replacing any value stored for the same habit and date
func (r *CountRepository) Upsert(ctx context.Context, c *count.Count) error {
	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	query := `
		INSERT INTO habit_counts (` + countColumns + `)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (habit_id, count_date) DO UPDATE
		SET count_value = excluded.count_value, updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		c.HabitID,
		c.Date,
		c.Value,
		updatedAt.UTC(),
		updatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert count: %w", err)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = updatedAt
	}
	c.UpdatedAt = updatedAt

	return nil
}

// Increment adds one to the count under key in a single statement and
// returns the new value
func (r *CountRepository) Increment(ctx context.Context, key count.Key, at time.Time) (int, error) {
	query := `
		INSERT INTO habit_counts (` + countColumns + `)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT (habit_id, count_date) DO UPDATE
		SET count_value = count_value + 1, updated_at = excluded.updated_at
		RETURNING count_value
	`

	var value int
	err := r.db.QueryRowContext(ctx, query, key.HabitID, key.Date, at.UTC(), at.UTC()).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("failed to increment count: %w", err)
	}

	return value, nil
}

// Delete removes the count under key. Deleting an absent key is not an error
func (r *CountRepository) Delete(ctx context.Context, key count.Key) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM habit_counts WHERE habit_id = ? AND count_date = ?`,
		key.HabitID, key.Date)
	if err != nil {
		return fmt.Errorf("failed to delete count: %w", err)
	}
	return nil
}

// DeleteHabit removes every count of a habit
func (r *CountRepository) DeleteHabit(ctx context.Context, habitID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM habit_counts WHERE habit_id = ?`, habitID)
	if err != nil {
		return fmt.Errorf("failed to delete habit counts: %w", err)
	}
	return nil
}

// ListRange returns the stored counts from from to to inclusive, oldest first
func (r *CountRepository) ListRange(ctx context.Context, habitID string, from, to calendar.Date) ([]count.Count, error) {
	query := `
		SELECT ` + countColumns + `
		FROM habit_counts
		WHERE habit_id = ? AND count_date >= ? AND count_date <= ?
		ORDER BY count_date ASC
	`
	return r.list(ctx, query, habitID, from, to)
}

// ListSince returns the stored counts dated on or after since, newest first
func (r *CountRepository) ListSince(ctx context.Context, habitID string, since calendar.Date) ([]count.Count, error) {
	query := `
		SELECT ` + countColumns + `
		FROM habit_counts
		WHERE habit_id = ? AND count_date >= ?
		ORDER BY count_date DESC
	`
	return r.list(ctx, query, habitID, since)
}

func (r *CountRepository) list(ctx context.Context, query string, args ...any) ([]count.Count, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list counts: %w", err)
	}
	defer rows.Close()

	var counts []count.Count
	for rows.Next() {
		var c count.Count
		if err := scanCount(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating count rows: %w", err)
	}

	return counts, nil
}
