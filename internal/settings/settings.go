// Package settings persists the tracker's settings blob: the habit list, the
// active habit, and display preferences.
package settings

import (
	"context"
	"errors"
	"time"

	"github.com/rpggio/tally/internal/domain/habit"
)

// Theme is the display theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// DefaultHabitID is the id of the habit seeded into fresh settings.
const DefaultHabitID = "default-habit"

// ErrCorrupt marks a settings blob that could not be decoded. Load never
// returns it; it is only logged.
var ErrCorrupt = errors.New("settings blob is corrupt")

// AppSettings is the whole persisted settings blob.
type AppSettings struct {
	Habits        []habit.Habit     `json:"habits"`
	ActiveHabitID string            `json:"active_habit_id"`
	Notifications bool              `json:"notifications"`
	Theme         Theme             `json:"theme"`
	RemoteIDs     map[string]string `json:"remote_ids,omitempty"`
}

// Store loads and saves the settings blob.
type Store interface {
	Load(ctx context.Context) (AppSettings, error)
	Save(ctx context.Context, s AppSettings) error
}

// Defaults returns fresh settings with a single purple habit selected.
func Defaults(now time.Time) AppSettings {
	return AppSettings{
		Habits: []habit.Habit{{
			ID:        DefaultHabitID,
			Name:      "Habit",
			Color:     habit.DefaultColor,
			IsActive:  true,
			CreatedAt: now,
		}},
		ActiveHabitID: DefaultHabitID,
		Notifications: true,
		Theme:         ThemeLight,
	}
}

// Clone returns a deep copy of s.
func (s AppSettings) Clone() AppSettings {
	out := s
	out.Habits = append([]habit.Habit(nil), s.Habits...)
	if s.RemoteIDs != nil {
		out.RemoteIDs = make(map[string]string, len(s.RemoteIDs))
		for k, v := range s.RemoteIDs {
			out.RemoteIDs[k] = v
		}
	}
	return out
}

// Active returns the active habit, if any.
func (s AppSettings) Active() (habit.Habit, bool) {
	if s.ActiveHabitID == "" {
		return habit.Habit{}, false
	}
	return habit.Find(s.Habits, s.ActiveHabitID)
}
