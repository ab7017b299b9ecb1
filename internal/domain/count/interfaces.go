package count

import (
	"context"
	"time"

	"github.com/rpggio/tally/internal/calendar"
	"github.com/rpggio/tally/internal/domain/activity"
	"github.com/rpggio/tally/internal/domain/habit"
)

// Repository provides persistence for daily counts.
type Repository interface {
	Get(ctx context.Context, key Key) (*Count, error)
	Upsert(ctx context.Context, c *Count) error
	Increment(ctx context.Context, key Key, at time.Time) (int, error)
	Delete(ctx context.Context, key Key) error
	DeleteHabit(ctx context.Context, habitID string) error
	ListRange(ctx context.Context, habitID string, from, to calendar.Date) ([]Count, error)
	ListSince(ctx context.Context, habitID string, since calendar.Date) ([]Count, error)
}

// HabitChecker rejects operations on habits that do not exist or were deleted.
type HabitChecker interface {
	EnsureActive(ctx context.Context, id string) (*habit.Habit, error)
}

// ActivityLogger records count activities.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}
