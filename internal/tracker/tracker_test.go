package tracker_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/tally/internal/calendar"
	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
	"github.com/rpggio/tally/internal/settings"
	"github.com/rpggio/tally/internal/sqlite"
	"github.com/rpggio/tally/internal/tracker"
	"github.com/stretchr/testify/require"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newTracker(t *testing.T, c *clock) (*tracker.Tracker, *settings.MemoryStore, *count.Service) {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	counts := count.NewService(sqlite.NewCountRepository(db), nil, nil, nil).WithClock(c.Now, time.UTC)
	store := settings.NewMemoryStore()
	tr := tracker.New(store, counts, tracker.WithClock(c.Now, time.UTC))
	return tr, store, counts
}

func TestTracker_FirstLoadHasDefaults(t *testing.T) {
	c := &clock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	tr, _, _ := newTracker(t, c)
	ctx := context.Background()

	h, ok, err := tr.ActiveHabit(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, settings.DefaultHabitID, h.ID)

	days, err := tr.ContinuationDays(ctx, h.ID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, days, 1)
}

func TestTracker_AddHabitValidation(t *testing.T) {
	c := &clock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	tr, store, _ := newTracker(t, c)
	ctx := context.Background()

	_, err := tr.AddHabit(ctx, "", "", 0)
	require.ErrorIs(t, err, tracker.ErrInvalidInput)
	_, err = tr.AddHabit(ctx, "   ", "", 0)
	require.ErrorIs(t, err, tracker.ErrInvalidInput)
	_, err = tr.AddHabit(ctx, "Snacking", "", -1)
	require.ErrorIs(t, err, tracker.ErrInvalidInput)
	require.Equal(t, 0, store.Saves())

	h, err := tr.AddHabit(ctx, " Snacking ", "", 3)
	require.NoError(t, err)
	require.Equal(t, "Snacking", h.Name)
	require.Equal(t, habit.DefaultColor, h.Color)
	require.Equal(t, c.now, h.CreatedAt)
	require.Equal(t, 1, store.Saves())

	active, _, err := tr.ActiveHabit(ctx)
	require.NoError(t, err)
	require.Equal(t, settings.DefaultHabitID, active.ID, "new habits are not activated")

	s, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, s.Habits, 2)
	require.Equal(t, h.ID, s.Habits[1].ID)
}

func TestTracker_UnknownIDsAreNoOps(t *testing.T) {
	c := &clock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	tr, store, _ := newTracker(t, c)
	ctx := context.Background()

	require.NoError(t, tr.RenameHabit(ctx, "nope", "x"))
	require.NoError(t, tr.SetDailyGoal(ctx, "nope", 2))
	require.NoError(t, tr.SetActiveHabit(ctx, "nope"))
	require.NoError(t, tr.RemoveHabit(ctx, "nope"))
	n, err := tr.IncrementToday(ctx, "nope")
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.Equal(t, 0, store.Saves())

	active, ok, err := tr.ActiveHabit(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, settings.DefaultHabitID, active.ID)
}

func TestTracker_MutationsValidate(t *testing.T) {
	c := &clock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	tr, _, _ := newTracker(t, c)
	ctx := context.Background()

	require.ErrorIs(t, tr.RenameHabit(ctx, settings.DefaultHabitID, " "), tracker.ErrInvalidInput)
	require.ErrorIs(t, tr.SetDailyGoal(ctx, settings.DefaultHabitID, -4), tracker.ErrInvalidInput)
	require.ErrorIs(t, tr.SetColor(ctx, settings.DefaultHabitID, "blue"), tracker.ErrInvalidInput)
	require.ErrorIs(t, tr.SetTheme(ctx, "sepia"), tracker.ErrInvalidInput)

	require.NoError(t, tr.RenameHabit(ctx, settings.DefaultHabitID, "Coffee"))
	require.NoError(t, tr.SetDailyGoal(ctx, settings.DefaultHabitID, 2))
	require.NoError(t, tr.SetColor(ctx, settings.DefaultHabitID, "ef4444"))
	require.NoError(t, tr.SetTheme(ctx, settings.ThemeDark))
	require.NoError(t, tr.SetNotifications(ctx, false))

	s, err := tr.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, "Coffee", s.Habits[0].Name)
	require.Equal(t, 2, s.Habits[0].DailyGoal)
	require.Equal(t, "#EF4444", s.Habits[0].Color)
	require.Equal(t, settings.ThemeDark, s.Theme)
	require.False(t, s.Notifications)
}

func TestTracker_IncrementThenReset(t *testing.T) {
	c := &clock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	tr, _, _ := newTracker(t, c)
	ctx := context.Background()
	id := settings.DefaultHabitID

	for i := 1; i <= 3; i++ {
		n, err := tr.IncrementToday(ctx, id)
		require.NoError(t, err)
		require.Equal(t, i, n)
	}
	require.NoError(t, tr.ResetToday(ctx, id))
	require.NoError(t, tr.ResetToday(ctx, id))

	n, err := tr.TodayCount(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestTracker_TodayFollowsClock(t *testing.T) {
	c := &clock{now: time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC)}
	tr, _, counts := newTracker(t, c)
	ctx := context.Background()
	id := settings.DefaultHabitID

	_, err := tr.IncrementToday(ctx, id)
	require.NoError(t, err)

	c.now = c.now.Add(2 * time.Hour)
	n, err := tr.TodayCount(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	n, err = counts.Get(ctx, id, calendar.MustParseDate("2026-10-19"))
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestTracker_RemoveHabitReassignsActive(t *testing.T) {
	c := &clock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	tr, _, counts := newTracker(t, c)
	ctx := context.Background()

	a, err := tr.AddHabit(ctx, "A", "", 0)
	require.NoError(t, err)
	b, err := tr.AddHabit(ctx, "B", "", 0)
	require.NoError(t, err)

	require.NoError(t, tr.SetActiveHabit(ctx, b.ID))
	require.NoError(t, tr.RemoveHabit(ctx, a.ID))
	active, _, err := tr.ActiveHabit(ctx)
	require.NoError(t, err)
	require.Equal(t, b.ID, active.ID, "removing a non-active habit keeps the selection")

	_, err = tr.IncrementToday(ctx, b.ID)
	require.NoError(t, err)
	require.NoError(t, tr.RemoveHabit(ctx, b.ID))
	active, ok, err := tr.ActiveHabit(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, settings.DefaultHabitID, active.ID)

	n, err := counts.Get(ctx, b.ID, tr.Today())
	require.NoError(t, err)
	require.Equal(t, 0, n, "counts of removed habits are cleared")

	require.NoError(t, tr.RemoveHabit(ctx, settings.DefaultHabitID))
	_, ok, err = tr.ActiveHabit(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTracker_ContinuationDaysNeverDecreases(t *testing.T) {
	c := &clock{now: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}
	tr, _, _ := newTracker(t, c)
	ctx := context.Background()

	h, err := tr.AddHabit(ctx, "Snacking", "", 0)
	require.NoError(t, err)

	prev := 0
	for i := 0; i < 10; i++ {
		days, err := tr.ContinuationDays(ctx, h.ID)
		require.NoError(t, err)
		require.GreaterOrEqual(t, days, 1)
		require.GreaterOrEqual(t, days, prev)
		prev = days
		c.now = c.now.Add(13 * time.Hour)
	}

	days, err := tr.ContinuationDays(ctx, "unknown")
	require.NoError(t, err)
	require.Equal(t, 0, days)
}

func TestTracker_StatusAndReports(t *testing.T) {
	c := &clock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	tr, _, counts := newTracker(t, c)
	ctx := context.Background()

	c.now = c.now.Add(-72 * time.Hour)
	h, err := tr.AddHabit(ctx, "Snacking", "", 5)
	require.NoError(t, err)
	c.now = c.now.Add(72 * time.Hour)

	today := tr.Today()
	_, err = counts.Set(ctx, h.ID, today.AddDays(-2), 2)
	require.NoError(t, err)
	_, err = counts.Set(ctx, h.ID, today, 5)
	require.NoError(t, err)

	st, ok, err := tr.Status(ctx, h.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 5, st.Today)
	require.True(t, st.GoalMet)
	require.Equal(t, 3, st.ContinuationDays)
	require.Equal(t, count.MoodWorried, st.Mood)

	reports, err := tr.Reports(ctx, count.WeekWindow)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	require.Equal(t, settings.DefaultHabitID, reports[0].HabitID)
	require.Equal(t, 0, reports[0].TotalCount)
	require.Equal(t, 1, reports[0].MaxCount)

	r := reports[1]
	require.Equal(t, 7, r.TotalCount)
	require.Equal(t, 1.0, r.AverageCount)
	require.Equal(t, 2, r.ActiveDays)
	require.Equal(t, 5, r.MaxCount)
	require.Len(t, r.Days, 7)

	monthly, err := tr.Reports(ctx, count.MonthWindow)
	require.NoError(t, err)
	require.Len(t, monthly[1].Days, 30)

	_, err = tr.Reports(ctx, 14)
	require.ErrorIs(t, err, count.ErrInvalidWindow)
}

func TestTracker_LoadSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()
	counts := count.NewService(sqlite.NewCountRepository(db), nil, nil, nil)

	first := tracker.New(settings.NewFileStore(dir, nil), counts)
	h, err := first.AddHabit(ctx, "Snacking", "#10B981", 1)
	require.NoError(t, err)
	require.NoError(t, first.SetActiveHabit(ctx, h.ID))

	second := tracker.New(settings.NewFileStore(dir, nil), counts)
	require.NoError(t, second.Load(ctx))
	active, ok, err := second.ActiveHabit(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, h.ID, active.ID)
	require.NoError(t, second.Save(ctx))
}
