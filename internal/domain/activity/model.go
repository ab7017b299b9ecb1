package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeHabitCreated     ActivityType = "habit_created"
	TypeHabitUpdated     ActivityType = "habit_updated"
	TypeHabitDeleted     ActivityType = "habit_deleted"
	TypeCountSet         ActivityType = "count_set"
	TypeCountIncremented ActivityType = "count_incremented"
	TypeCountReset       ActivityType = "count_reset"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	UserID       string       `json:"user_id,omitempty"`
	HabitID      string       `json:"habit_id"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
