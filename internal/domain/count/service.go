package count

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/tally/internal/calendar"
	"github.com/rpggio/tally/internal/domain/activity"
	"github.com/rpggio/tally/internal/domain/habit"
	"github.com/rpggio/tally/internal/repository"
)

// DefaultHistoryDays is the history length used when none is requested.
const DefaultHistoryDays = 7

// Service is the daily count store: point reads and writes keyed by
// (habit, date) plus dense range scans and window reports.
type Service struct {
	repo       Repository
	habits     HabitChecker
	activities ActivityLogger
	now        func() time.Time
	loc        *time.Location
	logger     *slog.Logger
}

// NewService creates a count service. habits and activities may be nil; with
// a nil checker any habit id is accepted.
func NewService(repo Repository, habits HabitChecker, activities ActivityLogger, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		habits:     habits,
		activities: activities,
		now:        time.Now,
		loc:        time.Local,
		logger:     logger,
	}
}

// WithClock sets the clock and the location that decides which calendar day
// is "today".
func (s *Service) WithClock(now func() time.Time, loc *time.Location) *Service {
	if now != nil {
		s.now = now
	}
	if loc != nil {
		s.loc = loc
	}
	return s
}

// Today returns the current calendar day.
func (s *Service) Today() calendar.Date {
	return calendar.Today(s.now(), s.loc)
}

// Get returns the count for a habit and day, zero if absent.
func (s *Service) Get(ctx context.Context, habitID string, date calendar.Date) (int, error) {
	if _, err := s.check(ctx, habitID, date); err != nil {
		return 0, err
	}
	c, err := s.repo.Get(ctx, Key{HabitID: habitID, Date: date})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("getting count: %w", err)
	}
	return c.Value, nil
}

// Set overwrites the count for a habit and day. Last write wins; the value
// is not range-checked.
func (s *Service) Set(ctx context.Context, habitID string, date calendar.Date, value int) (*Count, error) {
	owner, err := s.check(ctx, habitID, date)
	if err != nil {
		return nil, err
	}
	now := s.now()
	c := &Count{
		HabitID:   habitID,
		Date:      date,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, c); err != nil {
		return nil, fmt.Errorf("upserting count: %w", err)
	}
	s.logActivity(ctx, owner, habitID, activity.TypeCountSet, fmt.Sprintf("set %s to %d", date, value))
	return c, nil
}

// Increment adds one to the count for a habit and day and returns the new
// value.
func (s *Service) Increment(ctx context.Context, habitID string, date calendar.Date) (int, error) {
	owner, err := s.check(ctx, habitID, date)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.Increment(ctx, Key{HabitID: habitID, Date: date}, s.now())
	if err != nil {
		return 0, fmt.Errorf("incrementing count: %w", err)
	}
	s.logActivity(ctx, owner, habitID, activity.TypeCountIncremented, fmt.Sprintf("%s is now %d", date, n))
	return n, nil
}

// Remove deletes the count for a habit and day, returning it to zero.
func (s *Service) Remove(ctx context.Context, habitID string, date calendar.Date) error {
	owner, err := s.check(ctx, habitID, date)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, Key{HabitID: habitID, Date: date}); err != nil {
		return fmt.Errorf("deleting count: %w", err)
	}
	s.logActivity(ctx, owner, habitID, activity.TypeCountReset, fmt.Sprintf("reset %s", date))
	return nil
}

// IncrementToday increments today's count.
func (s *Service) IncrementToday(ctx context.Context, habitID string) (int, error) {
	return s.Increment(ctx, habitID, s.Today())
}

// ResetToday removes today's count.
func (s *Service) ResetToday(ctx context.Context, habitID string) error {
	return s.Remove(ctx, habitID, s.Today())
}

// RemoveHabit deletes every stored count of a habit.
func (s *Service) RemoveHabit(ctx context.Context, habitID string) error {
	if strings.TrimSpace(habitID) == "" {
		return fmt.Errorf("%w: habit id is required", ErrInvalidInput)
	}
	if err := s.repo.DeleteHabit(ctx, habitID); err != nil {
		return fmt.Errorf("deleting habit counts: %w", err)
	}
	return nil
}

// RangeScan returns one entry per day from from to to inclusive, oldest
// first, with zero for days that have no stored count.
func (s *Service) RangeScan(ctx context.Context, habitID string, from, to calendar.Date) ([]DayCount, error) {
	if _, err := s.check(ctx, habitID, to); err != nil {
		return nil, err
	}
	if from.IsZero() || from.After(to) {
		return nil, fmt.Errorf("%w: range %s..%s", ErrInvalidInput, from, to)
	}
	sparse, err := s.repo.ListRange(ctx, habitID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing counts: %w", err)
	}
	return Densify(calendar.Range(from, to), sparse), nil
}

// History returns the stored counts dated on or after today minus days,
// newest first. days <= 0 selects DefaultHistoryDays.
func (s *Service) History(ctx context.Context, habitID string, days int) ([]Count, error) {
	if days <= 0 {
		days = DefaultHistoryDays
	}
	since := s.Today().AddDays(-days)
	if _, err := s.check(ctx, habitID, since); err != nil {
		return nil, err
	}
	counts, err := s.repo.ListSince(ctx, habitID, since)
	if err != nil {
		return nil, fmt.Errorf("listing count history: %w", err)
	}
	if counts == nil {
		counts = []Count{}
	}
	return counts, nil
}

// Report builds the window report of h ending today.
func (s *Service) Report(ctx context.Context, h habit.Habit, window int) (Report, error) {
	if err := ValidWindow(window); err != nil {
		return Report{}, err
	}
	dates := WindowDates(s.Today(), window)
	days, err := s.RangeScan(ctx, h.ID, dates[0], dates[len(dates)-1])
	if err != nil {
		return Report{}, err
	}
	return BuildReport(h.ID, days, h.DailyGoal), nil
}

// check validates the key and returns the habit owner, empty without a
// checker.
func (s *Service) check(ctx context.Context, habitID string, date calendar.Date) (string, error) {
	if strings.TrimSpace(habitID) == "" {
		return "", fmt.Errorf("%w: habit id is required", ErrInvalidInput)
	}
	if date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if s.habits == nil {
		return "", nil
	}
	h, err := s.habits.EnsureActive(ctx, habitID)
	if err != nil {
		if errors.Is(err, habit.ErrHabitNotFound) {
			return "", habit.ErrHabitNotFound
		}
		return "", fmt.Errorf("checking habit: %w", err)
	}
	return h.UserID, nil
}

func (s *Service) logActivity(ctx context.Context, userID, habitID string, kind activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	entry := &activity.ActivityEntry{
		UserID:       userID,
		HabitID:      habitID,
		ActivityType: kind,
		Summary:      summary,
		CreatedAt:    s.now(),
	}
	if err := s.activities.LogActivity(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("failed to log count activity", "habit_id", habitID, "type", kind, "error", err)
	}
}
