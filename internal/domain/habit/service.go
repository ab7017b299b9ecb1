package habit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/tally/internal/domain/activity"
	"github.com/rpggio/tally/internal/repository"
)

// Service handles remote habit operations.
type Service struct {
	repo       Repository
	activities ActivityLogger
	logger     *slog.Logger
}

// NewService creates a new habit service. activities may be nil.
func NewService(repo Repository, activities ActivityLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, activities: activities, logger: logger}
}

// CreateRequest defines habit creation inputs.
type CreateRequest struct {
	Name      string
	Color     string
	DailyGoal int
}

// UpdateRequest defines habit update inputs. Nil fields are left unchanged.
type UpdateRequest struct {
	Name      *string
	Color     *string
	DailyGoal *int
}

// Create creates a new active habit owned by userID.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if err := ValidateName(req.Name); err != nil {
		return nil, err
	}
	if err := ValidateGoal(req.DailyGoal); err != nil {
		return nil, err
	}
	color, err := NormalizeColor(req.Color)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	h := &Habit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      strings.TrimSpace(req.Name),
		Color:     color,
		DailyGoal: req.DailyGoal,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("creating habit: %w", err)
	}

	s.logActivity(ctx, h, activity.TypeHabitCreated, fmt.Sprintf("created habit %q", h.Name))
	return h, nil
}

// Get fetches a habit by ID, including soft-deleted ones.
func (s *Service) Get(ctx context.Context, id string) (*Habit, error) {
	h, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("getting habit: %w", err)
	}
	return h, nil
}

// List returns the active habits of a user, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	habits, err := s.repo.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}
	if habits == nil {
		habits = []Habit{}
	}
	return habits, nil
}

// Update applies the non-nil fields of req to a habit.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Habit, error) {
	h, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := ValidateName(*req.Name); err != nil {
			return nil, err
		}
		h.Name = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil {
		color, err := NormalizeColor(*req.Color)
		if err != nil {
			return nil, err
		}
		h.Color = color
	}
	if req.DailyGoal != nil {
		if err := ValidateGoal(*req.DailyGoal); err != nil {
			return nil, err
		}
		h.DailyGoal = *req.DailyGoal
	}
	h.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, h); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("updating habit: %w", err)
	}

	s.logActivity(ctx, h, activity.TypeHabitUpdated, fmt.Sprintf("updated habit %q", h.Name))
	return h, nil
}

// Delete soft-deletes a habit. Its counts are kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	h, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrHabitNotFound
		}
		return fmt.Errorf("deleting habit: %w", err)
	}

	s.logActivity(ctx, h, activity.TypeHabitDeleted, fmt.Sprintf("deleted habit %q", h.Name))
	return nil
}

// EnsureActive returns the habit, or ErrHabitNotFound when it does not exist
// or has been deleted.
func (s *Service) EnsureActive(ctx context.Context, id string) (*Habit, error) {
	h, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !h.IsActive {
		return nil, ErrHabitNotFound
	}
	return h, nil
}

func (s *Service) logActivity(ctx context.Context, h *Habit, kind activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	entry := &activity.ActivityEntry{
		UserID:       h.UserID,
		HabitID:      h.ID,
		ActivityType: kind,
		Summary:      summary,
		CreatedAt:    time.Now(),
	}
	if err := s.activities.LogActivity(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("failed to log habit activity", "habit_id", h.ID, "type", kind, "error", err)
	}
}
