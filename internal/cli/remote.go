package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/tally/internal/credentials"
)

// ErrNoServer is returned by remote commands when no server is configured.
var ErrNoServer = errors.New("no server configured, set --server or TALLY_SERVER")

// LoginCmd stores a session token issued by the server's sign-in flow.
type LoginCmd struct {
	Token string `help:"Session token from /auth/google/callback." required:""`
}

func (c *LoginCmd) Run(ctx *Context) error {
	token := strings.TrimSpace(c.Token)
	if ctx.ServerURL != "" && ctx.NewRemote != nil {
		me, err := ctx.NewRemote(ctx.ServerURL, token).Me(ctx.context())
		if err != nil {
			return fmt.Errorf("verify token: %w", err)
		}
		if me != nil {
			ctx.printf("Signed in as %s\n", me.Email)
		}
	}
	if err := ctx.Tokens.SaveToken(token); err != nil {
		return err
	}
	ctx.printf("Token saved.\n")
	return nil
}

// LogoutCmd forgets the stored token.
type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Tokens.DeleteToken(); err != nil && !errors.Is(err, credentials.ErrNotFound) {
		return err
	}
	ctx.printf("Signed out.\n")
	return nil
}

// SyncCmd pushes local habits and recent counts to the server.
type SyncCmd struct {
	Window int `help:"Days of counts to push." default:"7"`
}

func (c *SyncCmd) Run(ctx *Context) error {
	if ctx.ServerURL == "" || ctx.NewRemote == nil {
		return ErrNoServer
	}
	token, err := ctx.Tokens.LoadToken()
	if err != nil {
		if errors.Is(err, credentials.ErrNotFound) {
			return errors.New("not signed in, run `tally login --token ...` first")
		}
		return err
	}

	res, err := ctx.Tracker.Sync(ctx.context(), ctx.NewRemote(ctx.ServerURL, token), c.Window)
	if err != nil {
		return err
	}
	ctx.printf("Synced: %d habits created, %d counts pushed.\n", res.HabitsCreated, res.CountsPushed)
	return nil
}
