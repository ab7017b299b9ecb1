package mocks

import (
	"context"
	"time"

	"github.com/rpggio/tally/internal/calendar"
	"github.com/rpggio/tally/internal/domain/activity"
	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
	"github.com/rpggio/tally/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

// HabitRepository is a mock for habit.Repository.
type HabitRepository struct {
	mock.Mock
}

func (m *HabitRepository) Create(ctx context.Context, h *habit.Habit) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *HabitRepository) Get(ctx context.Context, id string) (*habit.Habit, error) {
	args := m.Called(ctx, id)
	if h, ok := args.Get(0).(*habit.Habit); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HabitRepository) ListActive(ctx context.Context, userID string) ([]habit.Habit, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]habit.Habit); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HabitRepository) Update(ctx context.Context, h *habit.Habit) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *HabitRepository) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// CountRepository is a mock for count.Repository.
type CountRepository struct {
	mock.Mock
}

func (m *CountRepository) Get(ctx context.Context, key count.Key) (*count.Count, error) {
	args := m.Called(ctx, key)
	if c, ok := args.Get(0).(*count.Count); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CountRepository) Upsert(ctx context.Context, c *count.Count) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CountRepository) Increment(ctx context.Context, key count.Key, at time.Time) (int, error) {
	args := m.Called(ctx, key, at)
	return args.Int(0), args.Error(1)
}

func (m *CountRepository) Delete(ctx context.Context, key count.Key) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *CountRepository) DeleteHabit(ctx context.Context, habitID string) error {
	args := m.Called(ctx, habitID)
	return args.Error(0)
}

func (m *CountRepository) ListRange(ctx context.Context, habitID string, from, to calendar.Date) ([]count.Count, error) {
	args := m.Called(ctx, habitID, from, to)
	if list, ok := args.Get(0).([]count.Count); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CountRepository) ListSince(ctx context.Context, habitID string, since calendar.Date) ([]count.Count, error) {
	args := m.Called(ctx, habitID, since)
	if list, ok := args.Get(0).([]count.Count); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// HabitChecker is a mock for count.HabitChecker.
type HabitChecker struct {
	mock.Mock
}

func (m *HabitChecker) EnsureActive(ctx context.Context, id string) (*habit.Habit, error) {
	args := m.Called(ctx, id)
	if h, ok := args.Get(0).(*habit.Habit); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserRepository is a mock for user.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityLogger is a mock for the habit and count activity loggers.
type ActivityLogger struct {
	mock.Mock
}

func (m *ActivityLogger) LogActivity(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
