package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rpggio/tally/internal/calendar"
	"github.com/rpggio/tally/internal/domain/activity"
	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
)

// Services groups the domain services behind the REST API.
type Services struct {
	Habits   *habit.Service
	Counts   *count.Service
	Activity *activity.Service
}

// Options configures the router.
type Options struct {
	// AuthMiddleware, when set, guards /api and supplies the user. Without
	// it the user comes from the userId parameter, then DefaultUser.
	AuthMiddleware func(http.Handler) http.Handler
	DefaultUser    string
	Logger         *slog.Logger
}

// Server serves the habit REST API.
type Server struct {
	svcs        Services
	authEnabled bool
	defaultUser string
	logger      *slog.Logger
}

// NewServer creates an HTTP router with the REST API and health endpoint.
func NewServer(svcs Services, opts Options) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(opts.Logger))

	srv := &Server{
		svcs:        svcs,
		authEnabled: opts.AuthMiddleware != nil,
		defaultUser: opts.DefaultUser,
		logger:      opts.Logger,
	}

	r.Get("/health", srv.handleHealth)
	r.Route("/api/habits", func(r chi.Router) {
		if opts.AuthMiddleware != nil {
			r.Use(opts.AuthMiddleware)
		}
		r.Get("/", srv.handleListHabits)
		r.Post("/", srv.handleCreateHabit)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", srv.handleGetHabit)
			r.Put("/", srv.handleUpdateHabit)
			r.Delete("/", srv.handleDeleteHabit)
			r.Get("/counts", srv.handleListCounts)
			r.Post("/counts", srv.handleUpsertCount)
			r.Post("/counts/today/increment", srv.handleIncrementToday)
			r.Get("/report", srv.handleReport)
			r.Get("/activity", srv.handleActivity)
		})
	})

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if logger == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.DebugContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// userFor returns the acting user: the token's user when auth is enabled,
// otherwise the requested one or the default.
func (s *Server) userFor(r *http.Request, requested string) string {
	if s.authEnabled {
		userID, _ := UserFromContext(r.Context())
		return userID
	}
	if requested = strings.TrimSpace(requested); requested != "" {
		return requested
	}
	return s.defaultUser
}

// loadHabit fetches the path habit. With auth enabled, habits of other users
// are reported as missing.
func (s *Server) loadHabit(w http.ResponseWriter, r *http.Request) (*habit.Habit, bool) {
	h, err := s.svcs.Habits.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return nil, false
	}
	if s.authEnabled {
		userID, _ := UserFromContext(r.Context())
		if h.UserID != userID {
			writeServiceError(w, r, s.logger, habit.ErrHabitNotFound)
			return nil, false
		}
	}
	return h, true
}

type createHabitRequest struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	DailyGoal *int   `json:"dailyGoal"`
}

type updateHabitRequest struct {
	Name      *string `json:"name"`
	Color     *string `json:"color"`
	DailyGoal *int    `json:"dailyGoal"`
}

type upsertCountRequest struct {
	CountDate  string `json:"countDate"`
	CountValue *int   `json:"countValue"`
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	userID := s.userFor(r, r.URL.Query().Get("userId"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	habits, err := s.svcs.Habits.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"habits": habits})
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req createHabitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	userID := s.userFor(r, req.UserID)
	if userID == "" || strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "userId and name are required")
		return
	}
	goal := 0
	if req.DailyGoal != nil {
		goal = *req.DailyGoal
	}

	h, err := s.svcs.Habits.Create(r.Context(), userID, habit.CreateRequest{
		Name:      req.Name,
		Color:     req.Color,
		DailyGoal: goal,
	})
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"habit": h})
}

func (s *Server) handleGetHabit(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"habit": h})
}

func (s *Server) handleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}
	var req updateHabitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}

	updated, err := s.svcs.Habits.Update(r.Context(), h.ID, habit.UpdateRequest{
		Name:      req.Name,
		Color:     req.Color,
		DailyGoal: req.DailyGoal,
	})
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"habit": updated})
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}
	if err := s.svcs.Habits.Delete(r.Context(), h.ID); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Habit deleted"})
}

func (s *Server) handleListCounts(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}
	days, err := intParam(r, "days", count.DefaultHistoryDays)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	counts, err := s.svcs.Counts.History(r.Context(), h.ID, days)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"counts": counts})
}

func (s *Server) handleUpsertCount(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}
	var req upsertCountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	if req.CountDate == "" || req.CountValue == nil {
		writeError(w, http.StatusBadRequest, "countDate and countValue are required")
		return
	}
	date, err := calendar.ParseDate(req.CountDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := s.svcs.Counts.Set(r.Context(), h.ID, date, *req.CountValue)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": c})
}

func (s *Server) handleIncrementToday(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}
	today := s.svcs.Counts.Today()
	n, err := s.svcs.Counts.Increment(r.Context(), h.ID, today)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count": count.Count{HabitID: h.ID, Date: today, Value: n},
		"mood":  count.MoodFor(n),
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}
	days, err := intParam(r, "days", count.WeekWindow)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	report, err := s.svcs.Counts.Report(r.Context(), *h, days)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"report": report})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	entries, err := s.svcs.Activity.GetRecentActivity(r.Context(), activity.ListActivityOptions{
		HabitID: h.ID,
		Limit:   limit,
	})
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	if entries == nil {
		entries = []activity.ActivityEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"activity": entries})
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", habit.ErrInvalidInput, name)
	}
	return n, nil
}

