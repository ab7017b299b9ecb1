package count_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/tally/internal/calendar"
	"github.com/rpggio/tally/internal/domain/activity"
	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
	"github.com/rpggio/tally/internal/repository"
	"github.com/rpggio/tally/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newService(repo *mocks.CountRepository, checker count.HabitChecker) *count.Service {
	svc := count.NewService(repo, checker, nil, nil)
	return svc.WithClock(func() time.Time { return fixedNow }, time.UTC)
}

func TestCountService_GetAbsentIsZero(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CountRepository{}
	today := calendar.MustParseDate("2026-10-19")
	repo.On("Get", ctx, count.Key{HabitID: "h1", Date: today}).Return(nil, repository.ErrNotFound)

	n, err := newService(repo, nil).Get(ctx, "h1", today)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestCountService_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CountRepository{}
	date := calendar.MustParseDate("2026-10-18")
	repo.On("Upsert", ctx, mock.MatchedBy(func(c *count.Count) bool {
		return c.HabitID == "h1" && c.Date == date && c.Value == -2
	})).Return(nil)

	c, err := newService(repo, nil).Set(ctx, "h1", date, -2)
	require.NoError(t, err)
	require.Equal(t, -2, c.Value)
	repo.AssertExpectations(t)
}

func TestCountService_IncrementThenReset(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CountRepository{}
	key := count.Key{HabitID: "h1", Date: calendar.MustParseDate("2026-10-19")}
	repo.On("Increment", ctx, key, fixedNow).Return(1, nil)
	repo.On("Delete", ctx, key).Return(nil)
	repo.On("Get", ctx, key).Return(nil, repository.ErrNotFound)

	svc := newService(repo, nil)
	n, err := svc.IncrementToday(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, svc.ResetToday(ctx, "h1"))
	n, err = svc.Get(ctx, "h1", key.Date)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestCountService_RangeScanIsDense(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CountRepository{}
	from := calendar.MustParseDate("2026-10-13")
	to := calendar.MustParseDate("2026-10-19")
	repo.On("ListRange", ctx, "h1", from, to).Return([]count.Count{
		{HabitID: "h1", Date: calendar.MustParseDate("2026-10-17"), Value: 2},
	}, nil)

	days, err := newService(repo, nil).RangeScan(ctx, "h1", from, to)
	require.NoError(t, err)
	require.Len(t, days, 7)
	require.Equal(t, from, days[0].Date)
	require.Equal(t, to, days[6].Date)
	require.Equal(t, 2, days[4].Count)
}

func TestCountService_RangeScanRejectsInvertedRange(t *testing.T) {
	_, err := newService(&mocks.CountRepository{}, nil).RangeScan(context.Background(), "h1",
		calendar.MustParseDate("2026-10-20"), calendar.MustParseDate("2026-10-19"))
	require.ErrorIs(t, err, count.ErrInvalidInput)
}

func TestCountService_Report(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CountRepository{}
	today := calendar.MustParseDate("2026-10-19")
	repo.On("ListRange", ctx, "h1", today.AddDays(-6), today).Return([]count.Count{
		{HabitID: "h1", Date: today.AddDays(-2), Value: 2},
		{HabitID: "h1", Date: today, Value: 5},
	}, nil)

	h := habit.Habit{ID: "h1", CreatedAt: fixedNow.Add(-72 * time.Hour)}
	r, err := newService(repo, nil).Report(ctx, h, count.WeekWindow)
	require.NoError(t, err)
	require.Equal(t, 7, r.TotalCount)
	require.Equal(t, 1.0, r.AverageCount)
	require.Equal(t, 2, r.ActiveDays)
	require.Equal(t, 5, r.MaxCount)

	_, err = newService(repo, nil).Report(ctx, h, 10)
	require.ErrorIs(t, err, count.ErrInvalidWindow)
}

func TestCountService_HistoryDefaultsToSevenDays(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CountRepository{}
	repo.On("ListSince", ctx, "h1", calendar.MustParseDate("2026-10-12")).Return(nil, nil)

	counts, err := newService(repo, nil).History(ctx, "h1", 0)
	require.NoError(t, err)
	require.NotNil(t, counts)
	require.Empty(t, counts)
	repo.AssertExpectations(t)
}

func TestCountService_RejectsUnknownHabit(t *testing.T) {
	ctx := context.Background()
	checker := &mocks.HabitChecker{}
	checker.On("EnsureActive", ctx, "gone").Return(nil, habit.ErrHabitNotFound)

	_, err := newService(&mocks.CountRepository{}, checker).IncrementToday(ctx, "gone")
	require.ErrorIs(t, err, habit.ErrHabitNotFound)
}

func TestCountService_ActivityCarriesOwner(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CountRepository{}
	checker := &mocks.HabitChecker{}
	activities := &mocks.ActivityLogger{}

	checker.On("EnsureActive", ctx, "h1").Return(&habit.Habit{ID: "h1", UserID: "user1", IsActive: true}, nil)
	repo.On("Increment", ctx, count.Key{HabitID: "h1", Date: calendar.FromTime(fixedNow)}, fixedNow).Return(3, nil)
	activities.On("LogActivity", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeCountIncremented && e.UserID == "user1" && e.HabitID == "h1"
	})).Return(nil)

	svc := count.NewService(repo, checker, activities, nil).
		WithClock(func() time.Time { return fixedNow }, time.UTC)
	n, err := svc.IncrementToday(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, 3, n)
	activities.AssertExpectations(t)
}

func TestCountService_RequiresHabitAndDate(t *testing.T) {
	svc := newService(&mocks.CountRepository{}, nil)
	_, err := svc.Get(context.Background(), " ", calendar.MustParseDate("2026-10-19"))
	require.ErrorIs(t, err, count.ErrInvalidInput)
	_, err = svc.Set(context.Background(), "h1", calendar.Date{}, 1)
	require.ErrorIs(t, err, count.ErrInvalidInput)
}
