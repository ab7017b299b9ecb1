// Package cli implements the tally command line on top of the tracker.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpggio/tally/internal/domain/habit"
	"github.com/rpggio/tally/internal/domain/user"
	"github.com/rpggio/tally/internal/tracker"
)

// ErrUnknownHabit is returned when a --habit reference matches nothing.
var ErrUnknownHabit = errors.New("unknown habit")

// Remote is the sync target, usually a *client.Client.
type Remote interface {
	tracker.Remote
	Me(ctx context.Context) (*user.User, error)
}

// TokenStore keeps the remote session token.
type TokenStore interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	DeleteToken() error
}

// Context is passed to every command's Run.
type Context struct {
	Ctx       context.Context
	Tracker   *tracker.Tracker
	Out       io.Writer
	Tokens    TokenStore
	ServerURL string
	NewRemote func(serverURL, token string) Remote
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

// resolveHabit finds a habit by id or case-insensitive name. An empty ref
// selects the active habit.
func (c *Context) resolveHabit(ref string) (habit.Habit, error) {
	ctx := c.context()
	ref = strings.TrimSpace(ref)
	if ref == "" {
		h, ok, err := c.Tracker.ActiveHabit(ctx)
		if err != nil {
			return habit.Habit{}, err
		}
		if !ok {
			return habit.Habit{}, fmt.Errorf("%w: no active habit, add one with `tally habit add`", ErrUnknownHabit)
		}
		return h, nil
	}

	s, err := c.Tracker.Settings(ctx)
	if err != nil {
		return habit.Habit{}, err
	}
	if h, ok := habit.Find(s.Habits, ref); ok {
		return h, nil
	}
	for _, h := range s.Habits {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return habit.Habit{}, fmt.Errorf("%w: %q", ErrUnknownHabit, ref)
}
