package tracker

import (
	"context"
	"fmt"

	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
)

// Status is today's view of one habit.
type Status struct {
	Habit            habit.Habit `json:"habit"`
	Today            int         `json:"today"`
	GoalMet          bool        `json:"goal_met"`
	ContinuationDays int         `json:"continuation_days"`
	Mood             count.Mood  `json:"mood"`
}

// Status reports today's count, goal progress and mood for a habit.
// ok is false when the habit is unknown.
func (t *Tracker) Status(ctx context.Context, habitID string) (Status, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return Status{}, false, err
	}
	h, ok := habit.Find(t.settings.Habits, habitID)
	if !ok {
		return Status{}, false, nil
	}
	n, err := t.counts.Get(ctx, h.ID, t.Today())
	if err != nil {
		return Status{}, false, err
	}
	return Status{
		Habit:            h,
		Today:            n,
		GoalMet:          h.HasGoal() && n >= h.DailyGoal,
		ContinuationDays: habit.ContinuationDays(h, t.now()),
		Mood:             count.MoodFor(n),
	}, true, nil
}

// Reports builds one window report per habit, in settings order.
func (t *Tracker) Reports(ctx context.Context, window int) ([]count.Report, error) {
	if err := count.ValidWindow(window); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	dates := count.WindowDates(t.Today(), window)
	reports := make([]count.Report, 0, len(t.settings.Habits))
	for _, h := range t.settings.Habits {
		days, err := t.counts.RangeScan(ctx, h.ID, dates[0], dates[len(dates)-1])
		if err != nil {
			return nil, fmt.Errorf("scanning counts of %s: %w", h.ID, err)
		}
		reports = append(reports, count.BuildReport(h.ID, days, h.DailyGoal))
	}
	return reports, nil
}
