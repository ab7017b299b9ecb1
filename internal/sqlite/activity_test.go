package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/tally/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	base := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	entry1 := &activity.ActivityEntry{
		UserID:       "user1",
		HabitID:      "h1",
		ActivityType: activity.TypeHabitCreated,
		Summary:      "created habit",
		Details:      `{"name":"Snacking"}`,
		CreatedAt:    base,
	}
	entry2 := &activity.ActivityEntry{
		HabitID:      "h1",
		ActivityType: activity.TypeCountIncremented,
		Summary:      "2026-10-19 is now 1",
		CreatedAt:    base.Add(time.Minute),
	}

	require.NoError(t, repo.Log(ctx, entry1))
	require.NoError(t, repo.Log(ctx, entry2))
	require.NotZero(t, entry1.ID)

	entries, err := repo.List(ctx, activity.ListActivityOptions{HabitID: "h1"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, entry1.ActivityType, entries[1].ActivityType)
	require.Equal(t, `{"name":"Snacking"}`, entries[1].Details)
	require.Equal(t, "user1", entries[1].UserID)
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{HabitID: "h1", ActivityType: activity.TypeCountSet, Summary: "a"}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{HabitID: "h1", ActivityType: activity.TypeCountReset, Summary: "b"}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{HabitID: "h2", ActivityType: activity.TypeCountSet, Summary: "c"}))

	kind := activity.TypeCountSet
	entries, err := repo.List(ctx, activity.ListActivityOptions{HabitID: "h1", ActivityType: &kind})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "a", entries[0].Summary)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)
}
