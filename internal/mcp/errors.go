package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
)

// APIError is the error text returned to MCP clients for known failures.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	err          error
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// MapError maps domain errors to MCP error codes. Unknown errors are returned
// unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, habit.ErrHabitNotFound):
		return &APIError{Code: "HABIT_NOT_FOUND", Message: "habit not found", RecoveryHint: "Call list_habits for valid ids", err: err}
	case errors.Is(err, count.ErrInvalidWindow):
		return &APIError{Code: "INVALID_WINDOW", Message: err.Error(), RecoveryHint: "Use days 7 or 30", err: err}
	case errors.Is(err, habit.ErrInvalidInput), errors.Is(err, count.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), err: err}
	default:
		return err
	}
}
