package integration_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/tally/internal/calendar"
	"github.com/rpggio/tally/internal/domain/activity"
	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
	"github.com/rpggio/tally/internal/sqlite"
)

var now = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	db        *sqlite.DB
	countRepo *sqlite.CountRepository

	habitSvc    *habit.Service
	countSvc    *count.Service
	activitySvc *activity.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	habitRepo := sqlite.NewHabitRepository(db)
	countRepo := sqlite.NewCountRepository(db)
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), nil)

	habitSvc := habit.NewService(habitRepo, activitySvc, nil)
	countSvc := count.NewService(countRepo, habitSvc, activitySvc, nil).
		WithClock(func() time.Time { return now }, time.UTC)

	return &testEnv{
		db:          db,
		countRepo:   countRepo,
		habitSvc:    habitSvc,
		countSvc:    countSvc,
		activitySvc: activitySvc,
	}
}

func TestIntegration_HabitLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	today := calendar.FromTime(now)

	h, err := env.habitSvc.Create(ctx, "user-1", habit.CreateRequest{Name: "Push-ups", DailyGoal: 2})
	require.NoError(t, err)

	n, err := env.countSvc.IncrementToday(ctx, h.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	n, err = env.countSvc.IncrementToday(ctx, h.ID)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = env.countSvc.Set(ctx, h.ID, today.AddDays(-3), 5)
	require.NoError(t, err)

	report, err := env.countSvc.Report(ctx, *h, 7)
	require.NoError(t, err)
	require.Equal(t, 7, report.TotalCount)
	require.Equal(t, 2, report.ActiveDays)
	require.Equal(t, 5, report.MaxCount)
	require.Equal(t, 2, report.GoalMetDays)

	history, err := env.countSvc.History(ctx, h.ID, 7)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, today, history[0].Date)

	require.NoError(t, env.countSvc.ResetToday(ctx, h.ID))
	value, err := env.countSvc.Get(ctx, h.ID, today)
	require.NoError(t, err)
	require.Zero(t, value)
}

func TestIntegration_SoftDeleteKeepsCounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	h, err := env.habitSvc.Create(ctx, "user-1", habit.CreateRequest{Name: "Tea"})
	require.NoError(t, err)
	_, err = env.countSvc.IncrementToday(ctx, h.ID)
	require.NoError(t, err)

	require.NoError(t, env.habitSvc.Delete(ctx, h.ID))

	list, err := env.habitSvc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = env.countSvc.IncrementToday(ctx, h.ID)
	require.ErrorIs(t, err, habit.ErrHabitNotFound)

	stored, err := env.countRepo.ListSince(ctx, h.ID, calendar.FromTime(now).AddDays(-1))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, 1, stored[0].Value)
}

func TestIntegration_HabitsScopedByUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.habitSvc.Create(ctx, "user-1", habit.CreateRequest{Name: "Walk"})
	require.NoError(t, err)
	_, err = env.habitSvc.Create(ctx, "user-2", habit.CreateRequest{Name: "Read"})
	require.NoError(t, err)

	list, err := env.habitSvc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Walk", list[0].Name)
}

func TestIntegration_ActivityTrail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	h, err := env.habitSvc.Create(ctx, "user-1", habit.CreateRequest{Name: "Water"})
	require.NoError(t, err)
	_, err = env.countSvc.IncrementToday(ctx, h.ID)
	require.NoError(t, err)
	require.NoError(t, env.habitSvc.Delete(ctx, h.ID))

	entries, err := env.activitySvc.GetRecentActivity(ctx, activity.ListActivityOptions{HabitID: h.ID})
	require.NoError(t, err)

	var kinds []activity.ActivityType
	for _, e := range entries {
		kinds = append(kinds, e.ActivityType)
		require.Equal(t, "user-1", e.UserID)
	}
	require.ElementsMatch(t, []activity.ActivityType{
		activity.TypeHabitCreated,
		activity.TypeCountIncremented,
		activity.TypeHabitDeleted,
	}, kinds)
}
