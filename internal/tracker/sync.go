package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpggio/tally/internal/calendar"
	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
)

// Remote is the persistence service the tracker pushes to.
type Remote interface {
	CreateHabit(ctx context.Context, req habit.CreateRequest) (*habit.Habit, error)
	UpsertCount(ctx context.Context, habitID string, date calendar.Date, value int) (*count.Count, error)
}

// SyncResult summarises a push.
type SyncResult struct {
	HabitsCreated int `json:"habits_created"`
	CountsPushed  int `json:"counts_pushed"`
}

// Sync creates remote copies of local habits that have none yet and pushes
// the window's non-zero counts. Remote values are overwritten. A remote id
// the server no longer knows is replaced by a fresh remote habit.
func (t *Tracker) Sync(ctx context.Context, remote Remote, window int) (SyncResult, error) {
	var res SyncResult
	if window <= 0 {
		return res, fmt.Errorf("%w: sync window must be positive", ErrInvalidInput)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return res, err
	}

	dates := calendar.Window(t.Today(), window)
	for _, h := range t.settings.Habits {
		days, err := t.counts.RangeScan(ctx, h.ID, dates[0], dates[len(dates)-1])
		if err != nil {
			return res, fmt.Errorf("scanning counts of %s: %w", h.ID, err)
		}

		err = t.syncHabit(ctx, remote, h, days, &res)
		if errors.Is(err, habit.ErrHabitNotFound) {
			if t.logger != nil {
				t.logger.WarnContext(ctx, "remote habit gone, recreating",
					"habit_id", h.ID, "remote_id", t.settings.RemoteIDs[h.ID])
			}
			delete(t.settings.RemoteIDs, h.ID)
			if err := t.persist(ctx); err != nil {
				return res, err
			}
			err = t.syncHabit(ctx, remote, h, days, &res)
		}
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// syncHabit pushes one habit, creating its remote copy first when needed.
func (t *Tracker) syncHabit(ctx context.Context, remote Remote, h habit.Habit, days []count.DayCount, res *SyncResult) error {
	remoteID := t.settings.RemoteIDs[h.ID]
	if remoteID == "" {
		created, err := remote.CreateHabit(ctx, habit.CreateRequest{
			Name:      h.Name,
			Color:     h.Color,
			DailyGoal: h.DailyGoal,
		})
		if err != nil {
			return fmt.Errorf("creating remote habit %q: %w", h.Name, err)
		}
		if t.settings.RemoteIDs == nil {
			t.settings.RemoteIDs = make(map[string]string)
		}
		remoteID = created.ID
		t.settings.RemoteIDs[h.ID] = remoteID
		res.HabitsCreated++
		if err := t.persist(ctx); err != nil {
			return err
		}
	}

	for _, d := range days {
		if d.Count == 0 {
			continue
		}
		if _, err := remote.UpsertCount(ctx, remoteID, d.Date, d.Count); err != nil {
			return fmt.Errorf("pushing %s of %q: %w", d.Date, h.Name, err)
		}
		res.CountsPushed++
	}
	if t.logger != nil {
		t.logger.DebugContext(ctx, "habit synced", "habit_id", h.ID, "remote_id", remoteID)
	}
	return nil
}
