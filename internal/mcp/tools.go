package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/tally/internal/calendar"
	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
)

type tools struct {
	svcs Services
	// owned restricts habit access to the acting user.
	owned bool
}

func registerTools(server *sdkmcp.Server, svcs Services, owned bool) {
	t := &tools{svcs: svcs, owned: owned}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_habits",
		Description: "List the active habits of the current user, newest first",
	}, t.listHabits())
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_habit",
		Description: "Create a habit to count",
	}, t.createHabit())
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_habit",
		Description: "Rename a habit or change its colour or daily goal",
	}, t.updateHabit())
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_habit",
		Description: "Delete a habit; its counts are kept",
	}, t.deleteHabit())
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_counts",
		Description: "List a habit's stored daily counts, newest first",
	}, t.listCounts())
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "upsert_count",
		Description: "Overwrite the count of a habit for one day",
	}, t.upsertCount())
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "increment_today",
		Description: "Add one to today's count of a habit",
	}, t.incrementToday())
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reset_today",
		Description: "Reset today's count of a habit to zero",
	}, t.resetToday())
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_report",
		Description: "Summarise a habit over the last 7 or 30 days",
	}, t.getReport())
}

// loadHabit returns an active habit visible to the acting user.
func (t *tools) loadHabit(ctx context.Context, id string) (*habit.Habit, error) {
	h, err := t.svcs.Habits.Get(ctx, id)
	if err != nil {
		return nil, MapError(err)
	}
	if !h.IsActive || (t.owned && h.UserID != getUserID(ctx)) {
		return nil, MapError(habit.ErrHabitNotFound)
	}
	return h, nil
}

func (t *tools) listHabits() sdkmcp.ToolHandlerFor[ListHabitsInput, HabitListResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListHabitsInput) (*sdkmcp.CallToolResult, HabitListResult, error) {
		habits, err := t.svcs.Habits.List(ctx, getUserID(ctx))
		if err != nil {
			return nil, HabitListResult{}, MapError(err)
		}
		out := HabitListResult{Habits: make([]HabitResult, 0, len(habits))}
		for _, h := range habits {
			out.Habits = append(out.Habits, habitResult(h))
		}
		return nil, out, nil
	}
}

func (t *tools) createHabit() sdkmcp.ToolHandlerFor[CreateHabitInput, HabitResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input CreateHabitInput) (*sdkmcp.CallToolResult, HabitResult, error) {
		h, err := t.svcs.Habits.Create(ctx, getUserID(ctx), habit.CreateRequest{
			Name:      input.Name,
			Color:     input.Color,
			DailyGoal: input.DailyGoal,
		})
		if err != nil {
			return nil, HabitResult{}, MapError(err)
		}
		return nil, habitResult(*h), nil
	}
}

func (t *tools) updateHabit() sdkmcp.ToolHandlerFor[UpdateHabitInput, HabitResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input UpdateHabitInput) (*sdkmcp.CallToolResult, HabitResult, error) {
		if _, err := t.loadHabit(ctx, input.HabitID); err != nil {
			return nil, HabitResult{}, err
		}
		h, err := t.svcs.Habits.Update(ctx, input.HabitID, habit.UpdateRequest{
			Name:      input.Name,
			Color:     input.Color,
			DailyGoal: input.DailyGoal,
		})
		if err != nil {
			return nil, HabitResult{}, MapError(err)
		}
		return nil, habitResult(*h), nil
	}
}

func (t *tools) deleteHabit() sdkmcp.ToolHandlerFor[HabitIDInput, DeleteHabitResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input HabitIDInput) (*sdkmcp.CallToolResult, DeleteHabitResult, error) {
		if _, err := t.loadHabit(ctx, input.HabitID); err != nil {
			return nil, DeleteHabitResult{}, err
		}
		if err := t.svcs.Habits.Delete(ctx, input.HabitID); err != nil {
			return nil, DeleteHabitResult{}, MapError(err)
		}
		return nil, DeleteHabitResult{HabitID: input.HabitID, Deleted: true}, nil
	}
}

func (t *tools) listCounts() sdkmcp.ToolHandlerFor[ListCountsInput, CountListResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ListCountsInput) (*sdkmcp.CallToolResult, CountListResult, error) {
		h, err := t.loadHabit(ctx, input.HabitID)
		if err != nil {
			return nil, CountListResult{}, err
		}
		counts, err := t.svcs.Counts.History(ctx, h.ID, input.Days)
		if err != nil {
			return nil, CountListResult{}, MapError(err)
		}
		out := CountListResult{HabitID: h.ID, Counts: make([]CountResult, 0, len(counts))}
		for _, c := range counts {
			out.Counts = append(out.Counts, countResult(c))
		}
		return nil, out, nil
	}
}

func (t *tools) upsertCount() sdkmcp.ToolHandlerFor[UpsertCountInput, CountResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input UpsertCountInput) (*sdkmcp.CallToolResult, CountResult, error) {
		h, err := t.loadHabit(ctx, input.HabitID)
		if err != nil {
			return nil, CountResult{}, err
		}
		date, err := calendar.ParseDate(input.CountDate)
		if err != nil {
			return nil, CountResult{}, MapError(fmt.Errorf("%w: %v", count.ErrInvalidInput, err))
		}
		c, err := t.svcs.Counts.Set(ctx, h.ID, date, input.CountValue)
		if err != nil {
			return nil, CountResult{}, MapError(err)
		}
		return nil, countResult(*c), nil
	}
}

func (t *tools) incrementToday() sdkmcp.ToolHandlerFor[HabitIDInput, CountResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input HabitIDInput) (*sdkmcp.CallToolResult, CountResult, error) {
		h, err := t.loadHabit(ctx, input.HabitID)
		if err != nil {
			return nil, CountResult{}, err
		}
		n, err := t.svcs.Counts.IncrementToday(ctx, h.ID)
		if err != nil {
			return nil, CountResult{}, MapError(err)
		}
		out := countResult(count.Count{HabitID: h.ID, Date: t.svcs.Counts.Today(), Value: n})
		out.Mood = string(count.MoodFor(n))
		return nil, out, nil
	}
}

func (t *tools) resetToday() sdkmcp.ToolHandlerFor[HabitIDInput, CountResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input HabitIDInput) (*sdkmcp.CallToolResult, CountResult, error) {
		h, err := t.loadHabit(ctx, input.HabitID)
		if err != nil {
			return nil, CountResult{}, err
		}
		if err := t.svcs.Counts.ResetToday(ctx, h.ID); err != nil {
			return nil, CountResult{}, MapError(err)
		}
		out := countResult(count.Count{HabitID: h.ID, Date: t.svcs.Counts.Today()})
		out.Mood = string(count.MoodFor(0))
		return nil, out, nil
	}
}

func (t *tools) getReport() sdkmcp.ToolHandlerFor[ReportInput, ReportResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ReportInput) (*sdkmcp.CallToolResult, ReportResult, error) {
		h, err := t.loadHabit(ctx, input.HabitID)
		if err != nil {
			return nil, ReportResult{}, err
		}
		window := input.Days
		if window == 0 {
			window = count.WeekWindow
		}
		report, err := t.svcs.Counts.Report(ctx, *h, window)
		if err != nil {
			return nil, ReportResult{}, MapError(err)
		}
		return nil, reportResult(report), nil
	}
}
