// Package tracker holds the local habit state: the settings blob and the
// daily counts, behind one lock, with explicit Load and Save.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/tally/internal/calendar"
	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
	"github.com/rpggio/tally/internal/settings"
)

// ErrInvalidInput is returned for rejected mutations. It is the habit
// package's sentinel so callers can match either.
var ErrInvalidInput = habit.ErrInvalidInput

// CountStore is the daily count store the tracker reads and writes.
// *count.Service satisfies it.
type CountStore interface {
	Get(ctx context.Context, habitID string, date calendar.Date) (int, error)
	Increment(ctx context.Context, habitID string, date calendar.Date) (int, error)
	Remove(ctx context.Context, habitID string, date calendar.Date) error
	RemoveHabit(ctx context.Context, habitID string) error
	RangeScan(ctx context.Context, habitID string, from, to calendar.Date) ([]count.DayCount, error)
}

// Tracker is the single writer of the local settings and counts.
type Tracker struct {
	mu       sync.Mutex
	store    settings.Store
	counts   CountStore
	now      func() time.Time
	loc      *time.Location
	logger   *slog.Logger
	loaded   bool
	settings settings.AppSettings
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the clock and the zone that decides "today".
func WithClock(now func() time.Time, loc *time.Location) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
		if loc != nil {
			t.loc = loc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// New creates a tracker. Settings are loaded on first use.
func New(store settings.Store, counts CountStore, opts ...Option) *Tracker {
	t := &Tracker{
		store:  store,
		counts: counts,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load reads the settings blob, replacing any in-memory state.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load(ctx)
}

// Save persists the in-memory settings.
func (t *Tracker) Save(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return err
	}
	return t.persist(ctx)
}

// Settings returns a snapshot of the current settings.
func (t *Tracker) Settings(ctx context.Context) (settings.AppSettings, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return settings.AppSettings{}, err
	}
	return t.settings.Clone(), nil
}

// Today returns the current calendar day.
func (t *Tracker) Today() calendar.Date {
	return calendar.Today(t.now(), t.loc)
}

// AddHabit appends a new habit. It is not made active.
func (t *Tracker) AddHabit(ctx context.Context, name, color string, goal int) (habit.Habit, error) {
	if err := habit.ValidateName(name); err != nil {
		return habit.Habit{}, err
	}
	if err := habit.ValidateGoal(goal); err != nil {
		return habit.Habit{}, err
	}
	color, err := habit.NormalizeColor(color)
	if err != nil {
		return habit.Habit{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return habit.Habit{}, err
	}

	h := habit.Habit{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Color:     color,
		DailyGoal: goal,
		IsActive:  true,
		CreatedAt: t.now(),
	}
	t.settings.Habits = append(t.settings.Habits, h)
	if err := t.persist(ctx); err != nil {
		return habit.Habit{}, err
	}
	return h, nil
}

// RenameHabit renames a habit. Unknown ids are ignored.
func (t *Tracker) RenameHabit(ctx context.Context, id, name string) error {
	if err := habit.ValidateName(name); err != nil {
		return err
	}
	return t.mutateHabit(ctx, id, func(h *habit.Habit) {
		h.Name = strings.TrimSpace(name)
	})
}

// SetDailyGoal sets a habit's goal; 0 clears it. Unknown ids are ignored.
func (t *Tracker) SetDailyGoal(ctx context.Context, id string, goal int) error {
	if err := habit.ValidateGoal(goal); err != nil {
		return err
	}
	return t.mutateHabit(ctx, id, func(h *habit.Habit) {
		h.DailyGoal = goal
	})
}

// SetColor sets a habit's colour. Unknown ids are ignored.
func (t *Tracker) SetColor(ctx context.Context, id, color string) error {
	color, err := habit.NormalizeColor(color)
	if err != nil {
		return err
	}
	return t.mutateHabit(ctx, id, func(h *habit.Habit) {
		h.Color = color
	})
}

func (t *Tracker) mutateHabit(ctx context.Context, id string, fn func(*habit.Habit)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return err
	}
	i := t.indexOf(id)
	if i < 0 {
		return nil
	}
	fn(&t.settings.Habits[i])
	return t.persist(ctx)
}

// SetActiveHabit selects the active habit. Unknown ids are ignored so the
// active id always names an existing habit.
func (t *Tracker) SetActiveHabit(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return err
	}
	if t.indexOf(id) < 0 {
		return nil
	}
	t.settings.ActiveHabitID = id
	return t.persist(ctx)
}

// RemoveHabit deletes a habit and its local counts. Removing the active
// habit selects the first remaining one, or none.
func (t *Tracker) RemoveHabit(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return err
	}
	i := t.indexOf(id)
	if i < 0 {
		return nil
	}

	habits := t.settings.Habits
	t.settings.Habits = append(habits[:i:i], habits[i+1:]...)
	if t.settings.ActiveHabitID == id {
		t.settings.ActiveHabitID = ""
		if len(t.settings.Habits) > 0 {
			t.settings.ActiveHabitID = t.settings.Habits[0].ID
		}
	}
	delete(t.settings.RemoteIDs, id)

	if err := t.persist(ctx); err != nil {
		return err
	}
	if err := t.counts.RemoveHabit(ctx, id); err != nil {
		return fmt.Errorf("clearing counts of removed habit: %w", err)
	}
	return nil
}

// ActiveHabit returns the active habit, if one is selected.
func (t *Tracker) ActiveHabit(ctx context.Context) (habit.Habit, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return habit.Habit{}, false, err
	}
	h, ok := t.settings.Active()
	return h, ok, nil
}

// Habit returns the habit with the given id.
func (t *Tracker) Habit(ctx context.Context, id string) (habit.Habit, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return habit.Habit{}, false, err
	}
	h, ok := habit.Find(t.settings.Habits, id)
	return h, ok, nil
}

// IncrementToday adds one to today's count and returns the new value.
// Unknown habits are ignored and report 0.
func (t *Tracker) IncrementToday(ctx context.Context, habitID string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	if t.indexOf(habitID) < 0 {
		return 0, nil
	}
	return t.counts.Increment(ctx, habitID, t.Today())
}

// ResetToday sets today's count back to zero.
func (t *Tracker) ResetToday(ctx context.Context, habitID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return err
	}
	if t.indexOf(habitID) < 0 {
		return nil
	}
	return t.counts.Remove(ctx, habitID, t.Today())
}

// TodayCount returns today's count.
func (t *Tracker) TodayCount(ctx context.Context, habitID string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	if t.indexOf(habitID) < 0 {
		return 0, nil
	}
	return t.counts.Get(ctx, habitID, t.Today())
}

// ContinuationDays returns the days since the habit was created, at least
// one. Unknown habits report 0.
func (t *Tracker) ContinuationDays(ctx context.Context, habitID string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	h, ok := habit.Find(t.settings.Habits, habitID)
	if !ok {
		return 0, nil
	}
	return habit.ContinuationDays(h, t.now()), nil
}

// SetNotifications toggles notifications.
func (t *Tracker) SetNotifications(ctx context.Context, enabled bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return err
	}
	t.settings.Notifications = enabled
	return t.persist(ctx)
}

// SetTheme sets the display theme.
func (t *Tracker) SetTheme(ctx context.Context, theme settings.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: theme %q", ErrInvalidInput, theme)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return err
	}
	t.settings.Theme = theme
	return t.persist(ctx)
}

func (t *Tracker) load(ctx context.Context) error {
	s, err := t.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	t.settings = s
	t.loaded = true
	return nil
}

func (t *Tracker) ensureLoaded(ctx context.Context) error {
	if t.loaded {
		return nil
	}
	return t.load(ctx)
}

func (t *Tracker) persist(ctx context.Context) error {
	if err := t.store.Save(ctx, t.settings.Clone()); err != nil {
		if t.logger != nil {
			t.logger.ErrorContext(ctx, "failed to save settings", "error", err)
		}
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

func (t *Tracker) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, h := range t.settings.Habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}
