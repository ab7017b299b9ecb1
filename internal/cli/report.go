package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
)

const barWidth = 24

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ReportCmd prints week or month charts for every habit.
type ReportCmd struct {
	Window int    `help:"Window in days (7 or 30)." default:"7"`
	Habit  string `help:"Only this habit (id or name)." short:"H"`
}

func (c *ReportCmd) Run(ctx *Context) error {
	reports, err := ctx.Tracker.Reports(ctx.context(), c.Window)
	if err != nil {
		return err
	}
	s, err := ctx.Tracker.Settings(ctx.context())
	if err != nil {
		return err
	}

	only := ""
	if c.Habit != "" {
		h, err := ctx.resolveHabit(c.Habit)
		if err != nil {
			return err
		}
		only = h.ID
	}

	for i, r := range reports {
		if only != "" && r.HabitID != only {
			continue
		}
		h, _ := habit.Find(s.Habits, r.HabitID)
		if i > 0 && only == "" {
			ctx.printf("\n")
		}
		ctx.printf("%s", renderReport(h, r))
	}
	return nil
}

// renderReport draws one bar per day, scaled so the largest day fills
// barWidth.
func renderReport(h habit.Habit, r count.Report) string {
	var b strings.Builder
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color))

	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(h.Name), dimStyle.Render(fmt.Sprintf("(last %d days)", r.Window)))
	for _, d := range r.Days {
		n := max(d.Count*barWidth/r.MaxCount, 0)
		if d.Count > 0 && n == 0 {
			n = 1
		}
		label := d.Date.In(time.UTC).Format("Mon 01-02")
		fmt.Fprintf(&b, "  %s %s %d\n", dimStyle.Render(label), bar.Render(strings.Repeat("█", n)), d.Count)
	}
	fmt.Fprintf(&b, "  total %d  avg %.1f  active %d  max %d", r.TotalCount, r.AverageCount, r.ActiveDays, r.MaxCount)
	if h.HasGoal() {
		fmt.Fprintf(&b, "  goal met %d/%d", r.GoalMetDays, r.Window)
	}
	b.WriteString("\n")
	return b.String()
}
