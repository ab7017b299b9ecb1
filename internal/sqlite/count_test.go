package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/tally/internal/calendar"
	"github.com/rpggio/tally/internal/domain/activity"
	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestCountRepository_UpsertIsLastWriteWins(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewCountRepository(db)

	date := calendar.MustParseDate("2026-10-19")
	require.NoError(t, repo.Upsert(ctx, &count.Count{HabitID: "h1", Date: date, Value: 3}))
	require.NoError(t, repo.Upsert(ctx, &count.Count{HabitID: "h1", Date: date, Value: 9}))

	got, err := repo.Get(ctx, count.Key{HabitID: "h1", Date: date})
	require.NoError(t, err)
	require.Equal(t, 9, got.Value)
	require.Equal(t, date, got.Date)
}

func TestCountRepository_IncrementAndDelete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewCountRepository(db)

	key := count.Key{HabitID: "h1", Date: calendar.MustParseDate("2026-10-19")}
	now := time.Now()

	n, err := repo.Increment(ctx, key, now)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	n, err = repo.Increment(ctx, key, now)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.NoError(t, repo.Delete(ctx, key))
	_, err = repo.Get(ctx, key)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, key))
}

func TestCountRepository_ListRangeAndSince(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewCountRepository(db)

	for _, c := range []struct {
		date  string
		value int
	}{
		{"2026-10-01", 1},
		{"2026-10-12", 2},
		{"2026-10-15", 4},
		{"2026-10-19", 5},
	} {
		require.NoError(t, repo.Upsert(ctx, &count.Count{HabitID: "h1", Date: calendar.MustParseDate(c.date), Value: c.value}))
	}
	require.NoError(t, repo.Upsert(ctx, &count.Count{HabitID: "h2", Date: calendar.MustParseDate("2026-10-15"), Value: 7}))

	ranged, err := repo.ListRange(ctx, "h1", calendar.MustParseDate("2026-10-13"), calendar.MustParseDate("2026-10-19"))
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	require.Equal(t, "2026-10-15", ranged[0].Date.String())
	require.Equal(t, "2026-10-19", ranged[1].Date.String())

	since, err := repo.ListSince(ctx, "h1", calendar.MustParseDate("2026-10-12"))
	require.NoError(t, err)
	require.Len(t, since, 3)
	require.Equal(t, "2026-10-19", since[0].Date.String())
	require.Equal(t, "2026-10-12", since[2].Date.String())
}

func TestCountRepository_DeleteHabit(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewCountRepository(db)

	date := calendar.MustParseDate("2026-10-19")
	require.NoError(t, repo.Upsert(ctx, &count.Count{HabitID: "h1", Date: date, Value: 1}))
	require.NoError(t, repo.Upsert(ctx, &count.Count{HabitID: "h2", Date: date, Value: 1}))

	require.NoError(t, repo.DeleteHabit(ctx, "h1"))

	_, err := repo.Get(ctx, count.Key{HabitID: "h1", Date: date})
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.Get(ctx, count.Key{HabitID: "h2", Date: date})
	require.NoError(t, err)
}

func TestCountService_OverSQLite(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	svc := count.NewService(NewCountRepository(db), nil, activity.NewService(NewActivityRepository(db), nil), nil).
		WithClock(func() time.Time { return now }, time.UTC)

	_, err := svc.IncrementToday(ctx, "h1")
	require.NoError(t, err)
	require.NoError(t, svc.ResetToday(ctx, "h1"))
	n, err := svc.Get(ctx, "h1", svc.Today())
	require.NoError(t, err)
	require.Equal(t, 0, n)

	days, err := svc.RangeScan(ctx, "h1", svc.Today().AddDays(-29), svc.Today())
	require.NoError(t, err)
	require.Len(t, days, 30)
}
