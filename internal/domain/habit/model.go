package habit

import (
	"math"
	"time"
)

// Habit is a tracked behaviour with a per-day counter.
type Habit struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	DailyGoal int       `json:"daily_goal"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// HasGoal reports whether a daily goal is set. Zero means no goal.
func (h Habit) HasGoal() bool {
	return h.DailyGoal > 0
}

// ContinuationDays returns the number of days since the habit was created,
// rounded up and never less than one. It counts days since registration,
// not consecutive days with a non-zero count.
func ContinuationDays(h Habit, now time.Time) int {
	elapsed := now.Sub(h.CreatedAt)
	days := int(math.Ceil(elapsed.Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// Find returns the habit with the given id from habits.
func Find(habits []Habit, id string) (Habit, bool) {
	for _, h := range habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}
