package habit

import (
	"context"

	"github.com/rpggio/tally/internal/domain/activity"
)

// Repository provides persistence for habits.
type Repository interface {
	Create(ctx context.Context, h *Habit) error
	Get(ctx context.Context, id string) (*Habit, error)
	ListActive(ctx context.Context, userID string) ([]Habit, error)
	Update(ctx context.Context, h *Habit) error
	Deactivate(ctx context.Context, id string) error
}

// ActivityLogger records habit activities.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}
