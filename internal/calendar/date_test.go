package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-01")
	require.NoError(t, err)
	require.Equal(t, Date{Year: 2026, Month: time.March, Day: 1}, d)
	require.Equal(t, "2026-03-01", d.String())

	_, err = ParseDate("Sun Mar 01 2026")
	require.Error(t, err)
}

func TestAddDaysCrossesMonthAndYear(t *testing.T) {
	require.Equal(t, "2026-02-28", MustParseDate("2026-03-01").AddDays(-1).String())
	require.Equal(t, "2027-01-01", MustParseDate("2026-12-31").AddDays(1).String())
	require.Equal(t, "2024-02-29", MustParseDate("2024-03-01").AddDays(-1).String())
}

func TestDaysSince(t *testing.T) {
	require.Equal(t, 3, MustParseDate("2026-10-19").DaysSince(MustParseDate("2026-10-16")))
	require.Equal(t, -1, MustParseDate("2026-10-18").DaysSince(MustParseDate("2026-10-19")))
	require.Equal(t, 0, MustParseDate("2026-10-19").DaysSince(MustParseDate("2026-10-19")))
}

func TestWindow(t *testing.T) {
	end := MustParseDate("2026-10-19")

	week := Window(end, 7)
	require.Len(t, week, 7)
	require.Equal(t, "2026-10-13", week[0].String())
	require.Equal(t, "2026-10-19", week[6].String())

	month := Window(end, 30)
	require.Len(t, month, 30)
	for i := 1; i < len(month); i++ {
		require.Equal(t, 1, month[i].DaysSince(month[i-1]))
	}

	require.Nil(t, Window(end, 0))
}

func TestRange(t *testing.T) {
	dates := Range(MustParseDate("2026-10-17"), MustParseDate("2026-10-19"))
	require.Len(t, dates, 3)
	require.Equal(t, "2026-10-17", dates[0].String())
	require.Nil(t, Range(MustParseDate("2026-10-20"), MustParseDate("2026-10-19")))
}

func TestTodayUsesLocation(t *testing.T) {
	now := time.Date(2026, 10, 19, 23, 30, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*60*60)
	require.Equal(t, "2026-10-20", Today(now, tokyo).String())
	require.Equal(t, "2026-10-19", Today(now, time.UTC).String())
}

func TestJSONAndScan(t *testing.T) {
	d := MustParseDate("2026-10-19")
	data, err := json.Marshal(struct {
		Date Date `json:"date"`
	}{d})
	require.NoError(t, err)
	require.JSONEq(t, `{"date":"2026-10-19"}`, string(data))

	var scanned Date
	require.NoError(t, scanned.Scan("2026-10-19"))
	require.Equal(t, d, scanned)
	require.NoError(t, scanned.Scan(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, d, scanned)
	require.Error(t, scanned.Scan(42))
}
