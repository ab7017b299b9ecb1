package mcp

import (
	"time"

	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
)

// ListHabitsInput has no arguments; habits belong to the acting user.
type ListHabitsInput struct{}

// CreateHabitInput represents the MCP tool input for habit creation.
type CreateHabitInput struct {
	Name      string `json:"name" jsonschema:"habit name"`
	Color     string `json:"color,omitempty" jsonschema:"hex colour such as #ff5c5c (default used when omitted)"`
	DailyGoal int    `json:"daily_goal,omitempty" jsonschema:"daily goal, 0 for none"`
}

// UpdateHabitInput represents the MCP tool input for habit updates. Omitted
// fields are left unchanged.
type UpdateHabitInput struct {
	HabitID   string  `json:"habit_id" jsonschema:"habit identifier"`
	Name      *string `json:"name,omitempty" jsonschema:"new habit name"`
	Color     *string `json:"color,omitempty" jsonschema:"new hex colour"`
	DailyGoal *int    `json:"daily_goal,omitempty" jsonschema:"new daily goal, 0 for none"`
}

// HabitIDInput addresses a single habit.
type HabitIDInput struct {
	HabitID string `json:"habit_id" jsonschema:"habit identifier"`
}

// ListCountsInput selects a habit's recent counts.
type ListCountsInput struct {
	HabitID string `json:"habit_id" jsonschema:"habit identifier"`
	Days    int    `json:"days,omitempty" jsonschema:"history length in days (default 7)"`
}

// UpsertCountInput overwrites one day's count.
type UpsertCountInput struct {
	HabitID    string `json:"habit_id" jsonschema:"habit identifier"`
	CountDate  string `json:"count_date" jsonschema:"calendar day as YYYY-MM-DD"`
	CountValue int    `json:"count_value" jsonschema:"count for the day"`
}

// ReportInput selects a report window.
type ReportInput struct {
	HabitID string `json:"habit_id" jsonschema:"habit identifier"`
	Days    int    `json:"days,omitempty" jsonschema:"window length, 7 or 30 (default 7)"`
}

// HabitResult is the MCP view of a habit.
type HabitResult struct {
	ID        string `json:"id" jsonschema:"habit identifier"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	DailyGoal int    `json:"daily_goal"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at" jsonschema:"RFC3339 timestamp when the habit was created"`
	UpdatedAt string `json:"updated_at,omitempty" jsonschema:"RFC3339 timestamp of the last update"`
}

// HabitListResult lists habits.
type HabitListResult struct {
	Habits []HabitResult `json:"habits"`
}

// DeleteHabitResult confirms a deletion.
type DeleteHabitResult struct {
	HabitID string `json:"habit_id"`
	Deleted bool   `json:"deleted"`
}

// CountResult is one day's count.
type CountResult struct {
	HabitID    string `json:"habit_id"`
	CountDate  string `json:"count_date" jsonschema:"calendar day as YYYY-MM-DD"`
	CountValue int    `json:"count_value"`
	Mood       string `json:"mood,omitempty"`
}

// CountListResult lists stored counts, newest first.
type CountListResult struct {
	HabitID string        `json:"habit_id"`
	Counts  []CountResult `json:"counts"`
}

// DayResult is one entry of a report series.
type DayResult struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ReportResult is the MCP view of a window report.
type ReportResult struct {
	HabitID      string      `json:"habit_id"`
	Window       int         `json:"window"`
	Days         []DayResult `json:"days"`
	TotalCount   int         `json:"total_count"`
	AverageCount float64     `json:"average_count"`
	ActiveDays   int         `json:"active_days"`
	MaxCount     int         `json:"max_count"`
	GoalMetDays  int         `json:"goal_met_days"`
}

func habitResult(h habit.Habit) HabitResult {
	res := HabitResult{
		ID:        h.ID,
		Name:      h.Name,
		Color:     h.Color,
		DailyGoal: h.DailyGoal,
		IsActive:  h.IsActive,
		CreatedAt: formatTime(h.CreatedAt),
	}
	if !h.UpdatedAt.IsZero() {
		res.UpdatedAt = formatTime(h.UpdatedAt)
	}
	return res
}

func countResult(c count.Count) CountResult {
	return CountResult{
		HabitID:    c.HabitID,
		CountDate:  c.Date.String(),
		CountValue: c.Value,
	}
}

func reportResult(r count.Report) ReportResult {
	days := make([]DayResult, len(r.Days))
	for i, d := range r.Days {
		days[i] = DayResult{Date: d.Date.String(), Count: d.Count}
	}
	return ReportResult{
		HabitID:      r.HabitID,
		Window:       r.Window,
		Days:         days,
		TotalCount:   r.TotalCount,
		AverageCount: r.AverageCount,
		ActiveDays:   r.ActiveDays,
		MaxCount:     r.MaxCount,
		GoalMetDays:  r.GoalMetDays,
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
