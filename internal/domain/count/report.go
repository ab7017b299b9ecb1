package count

import (
	"fmt"
	"math"

	"github.com/rpggio/tally/internal/calendar"
)

// Supported report windows.
const (
	WeekWindow  = 7
	MonthWindow = 30
)

// Report aggregates a habit's counts over a trailing window ending today.
type Report struct {
	HabitID      string     `json:"habit_id"`
	Window       int        `json:"window"`
	Days         []DayCount `json:"days"`
	TotalCount   int        `json:"total_count"`
	AverageCount float64    `json:"average_count"`
	ActiveDays   int        `json:"active_days"`
	MaxCount     int        `json:"max_count"`
	GoalMetDays  int        `json:"goal_met_days"`
}

// ValidWindow reports whether n is a supported window length.
func ValidWindow(n int) error {
	if n != WeekWindow && n != MonthWindow {
		return fmt.Errorf("%w: got %d", ErrInvalidWindow, n)
	}
	return nil
}

// WindowDates returns the window's dates ending at today, oldest first.
func WindowDates(today calendar.Date, window int) []calendar.Date {
	return calendar.Window(today, window)
}

// BuildReport derives totals from a dense series. The window is len(days).
// MaxCount never drops below 1 so it can scale chart bars. goal <= 0 means
// no goal and leaves GoalMetDays at zero.
func BuildReport(habitID string, days []DayCount, goal int) Report {
	r := Report{
		HabitID:  habitID,
		Window:   len(days),
		Days:     days,
		MaxCount: 1,
	}
	for _, d := range days {
		r.TotalCount += d.Count
		if d.Count > 0 {
			r.ActiveDays++
		}
		if d.Count > r.MaxCount {
			r.MaxCount = d.Count
		}
		if goal > 0 && d.Count >= goal {
			r.GoalMetDays++
		}
	}
	if len(days) > 0 {
		r.AverageCount = math.Round(float64(r.TotalCount)/float64(len(days))*10) / 10
	}
	return r
}

// Densify fills the gaps of a sparse ascending series so that every date of
// dates has exactly one entry. Missing days count as zero.
func Densify(dates []calendar.Date, sparse []Count) []DayCount {
	byDate := make(map[calendar.Date]int, len(sparse))
	for _, c := range sparse {
		byDate[c.Date] = c.Value
	}
	out := make([]DayCount, len(dates))
	for i, d := range dates {
		out[i] = DayCount{Date: d, Count: byDate[d]}
	}
	return out
}
