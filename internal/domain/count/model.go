package count

import (
	"time"

	"github.com/rpggio/tally/internal/calendar"
)

// Key addresses one habit's counter on one calendar day.
type Key struct {
	HabitID string
	Date    calendar.Date
}

// Count is a stored daily counter. A missing row means zero.
type Count struct {
	HabitID   string        `json:"habit_id"`
	Date      calendar.Date `json:"count_date"`
	Value     int           `json:"count_value"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Key returns the composite key of c.
func (c Count) Key() Key {
	return Key{HabitID: c.HabitID, Date: c.Date}
}

// DayCount is one entry of a dense per-day series.
type DayCount struct {
	Date  calendar.Date `json:"date"`
	Count int           `json:"count"`
}
