package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", habit.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON body", habit.ErrInvalidInput)
	}
	return nil
}

// writeServiceError maps domain errors to status codes. Unexpected errors
// are logged and reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, habit.ErrHabitNotFound):
		writeError(w, http.StatusNotFound, "Habit not found")
	case errors.Is(err, habit.ErrInvalidInput),
		errors.Is(err, count.ErrInvalidInput),
		errors.Is(err, count.ErrInvalidWindow):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		if logger != nil {
			logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
