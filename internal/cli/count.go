package cli

import (
	"github.com/rpggio/tally/internal/domain/count"
)

// CountCmd adds one to today's count.
type CountCmd struct {
	Habit string `help:"Habit id or name (default: active habit)." short:"H"`
}

func (c *CountCmd) Run(ctx *Context) error {
	h, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}
	n, err := ctx.Tracker.IncrementToday(ctx.context(), h.ID)
	if err != nil {
		return err
	}
	mood := count.MoodFor(n)
	ctx.printf("%s: %d today. %s\n", h.Name, n, mood.Message())
	return nil
}

// ResetCmd clears today's count.
type ResetCmd struct {
	Habit string `help:"Habit id or name (default: active habit)." short:"H"`
}

func (c *ResetCmd) Run(ctx *Context) error {
	h, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.ResetToday(ctx.context(), h.ID); err != nil {
		return err
	}
	ctx.printf("%s: reset to 0 today.\n", h.Name)
	return nil
}

// StatusCmd shows today's count, goal and mood.
type StatusCmd struct {
	Habit string `help:"Habit id or name (default: active habit)." short:"H"`
}

func (c *StatusCmd) Run(ctx *Context) error {
	h, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}
	st, _, err := ctx.Tracker.Status(ctx.context(), h.ID)
	if err != nil {
		return err
	}

	ctx.printf("%s\n", st.Habit.Name)
	ctx.printf("  Today:     %d\n", st.Today)
	if st.Habit.HasGoal() {
		met := "not met"
		if st.GoalMet {
			met = "met"
		}
		ctx.printf("  Goal:      %d (%s)\n", st.Habit.DailyGoal, met)
	} else {
		ctx.printf("  Goal:      none\n")
	}
	ctx.printf("  Day:       %d\n", st.ContinuationDays)
	ctx.printf("  Mood:      %s. %s\n", st.Mood, st.Mood.Message())
	return nil
}
