package cli

import (
	"fmt"

	"github.com/rpggio/tally/internal/domain/habit"
)

// HabitCmd groups habit management commands.
type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Rename HabitRenameCmd `cmd:"" help:"Rename a habit."`
	Goal   HabitGoalCmd   `cmd:"" help:"Set a habit's daily goal (0 for none)."`
	Color  HabitColorCmd  `cmd:"" help:"Set a habit's colour."`
	Use    HabitUseCmd    `cmd:"" help:"Make a habit the active one."`
	Remove HabitRemoveCmd `cmd:"" help:"Remove a habit and its counts."`
}

type HabitAddCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Color string `help:"Hex colour, e.g. #FF6B6B."`
	Goal  int    `help:"Daily goal, 0 for none." default:"0"`
	Use   bool   `help:"Make the new habit active."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	h, err := ctx.Tracker.AddHabit(ctx.context(), c.Name, c.Color, c.Goal)
	if err != nil {
		return err
	}
	if c.Use {
		if err := ctx.Tracker.SetActiveHabit(ctx.context(), h.ID); err != nil {
			return err
		}
	}
	ctx.printf("Added habit %s (%s)\n", h.Name, h.ID)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	s, err := ctx.Tracker.Settings(ctx.context())
	if err != nil {
		return err
	}
	if len(s.Habits) == 0 {
		ctx.printf("No habits.\n")
		return nil
	}
	for _, h := range s.Habits {
		marker := " "
		if h.ID == s.ActiveHabitID {
			marker = "*"
		}
		goal := "no goal"
		if h.HasGoal() {
			goal = fmt.Sprintf("goal %d", h.DailyGoal)
		}
		ctx.printf("%s %s  %s  %s  %s\n", marker, h.ID, h.Name, h.Color, goal)
	}
	return nil
}

type HabitRenameCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Name  string `arg:"" help:"New name."`
}

func (c *HabitRenameCmd) Run(ctx *Context) error {
	return ctx.updateHabit(c.Habit, func(h habit.Habit) error {
		return ctx.Tracker.RenameHabit(ctx.context(), h.ID, c.Name)
	})
}

type HabitGoalCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Goal  int    `arg:"" help:"Daily goal, 0 for none."`
}

func (c *HabitGoalCmd) Run(ctx *Context) error {
	return ctx.updateHabit(c.Habit, func(h habit.Habit) error {
		return ctx.Tracker.SetDailyGoal(ctx.context(), h.ID, c.Goal)
	})
}

type HabitColorCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Color string `arg:"" help:"Hex colour."`
}

func (c *HabitColorCmd) Run(ctx *Context) error {
	return ctx.updateHabit(c.Habit, func(h habit.Habit) error {
		return ctx.Tracker.SetColor(ctx.context(), h.ID, c.Color)
	})
}

type HabitUseCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitUseCmd) Run(ctx *Context) error {
	return ctx.updateHabit(c.Habit, func(h habit.Habit) error {
		return ctx.Tracker.SetActiveHabit(ctx.context(), h.ID)
	})
}

type HabitRemoveCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitRemoveCmd) Run(ctx *Context) error {
	h, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.RemoveHabit(ctx.context(), h.ID); err != nil {
		return err
	}
	ctx.printf("Removed habit %s\n", h.Name)
	return nil
}

func (c *Context) updateHabit(ref string, fn func(habit.Habit) error) error {
	h, err := c.resolveHabit(ref)
	if err != nil {
		return err
	}
	if err := fn(h); err != nil {
		return err
	}
	updated, _, err := c.Tracker.Habit(c.context(), h.ID)
	if err != nil {
		return err
	}
	c.printf("Updated habit %s\n", updated.Name)
	return nil
}
