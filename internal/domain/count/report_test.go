package count

import (
	"testing"

	"github.com/rpggio/tally/internal/calendar"
	"github.com/stretchr/testify/require"
)

func zeroDays(today calendar.Date, window int) []DayCount {
	return Densify(WindowDates(today, window), nil)
}

func TestBuildReport_AllZero(t *testing.T) {
	today := calendar.MustParseDate("2026-10-19")
	for _, window := range []int{WeekWindow, MonthWindow} {
		r := BuildReport("h1", zeroDays(today, window), 0)
		require.Equal(t, window, r.Window)
		require.Len(t, r.Days, window)
		require.Equal(t, 0, r.TotalCount)
		require.Equal(t, 0.0, r.AverageCount)
		require.Equal(t, 0, r.ActiveDays)
		require.Equal(t, 1, r.MaxCount)
		require.Equal(t, 0, r.GoalMetDays)
	}
}

func TestBuildReport_SparseWeek(t *testing.T) {
	today := calendar.MustParseDate("2026-10-19")
	sparse := []Count{
		{HabitID: "h1", Date: today.AddDays(-2), Value: 2},
		{HabitID: "h1", Date: today, Value: 5},
	}
	days := Densify(WindowDates(today, WeekWindow), sparse)

	r := BuildReport("h1", days, 3)
	require.Equal(t, 7, r.TotalCount)
	require.Equal(t, 1.0, r.AverageCount)
	require.Equal(t, 2, r.ActiveDays)
	require.Equal(t, 5, r.MaxCount)
	require.Equal(t, 1, r.GoalMetDays)
	require.Equal(t, today, r.Days[6].Date)
	require.Equal(t, 5, r.Days[6].Count)
	require.Equal(t, 0, r.Days[5].Count)
}

func TestBuildReport_AverageRoundsToOneDecimal(t *testing.T) {
	today := calendar.MustParseDate("2026-10-19")
	days := Densify(WindowDates(today, MonthWindow), []Count{{Date: today, Value: 10}})
	r := BuildReport("h1", days, 0)
	require.Equal(t, 0.3, r.AverageCount)
}

func TestDensify_OneEntryPerDay(t *testing.T) {
	today := calendar.MustParseDate("2026-03-02")
	dates := WindowDates(today, WeekWindow)
	sparse := []Count{{Date: calendar.MustParseDate("2026-02-28"), Value: 4}}

	days := Densify(dates, sparse)
	require.Len(t, days, 7)
	for i := 1; i < len(days); i++ {
		require.Equal(t, 1, days[i].Date.DaysSince(days[i-1].Date))
	}
	require.Equal(t, 4, days[4].Count)
}

func TestValidWindow(t *testing.T) {
	require.NoError(t, ValidWindow(7))
	require.NoError(t, ValidWindow(30))
	require.ErrorIs(t, ValidWindow(14), ErrInvalidWindow)
}

func TestMoodFor(t *testing.T) {
	cases := map[int]Mood{
		-1: MoodHappy,
		0:  MoodHappy,
		1:  MoodNeutral,
		3:  MoodNeutral,
		4:  MoodWorried,
		7:  MoodWorried,
		8:  MoodSad,
		12: MoodSad,
		13: MoodVerySad,
	}
	for n, want := range cases {
		require.Equal(t, want, MoodFor(n), "count %d", n)
		require.NotEmpty(t, want.Message())
	}
}
