// Package app assembles the tally server from configuration.
package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/tally/internal/auth"
	"github.com/rpggio/tally/internal/config"
	"github.com/rpggio/tally/internal/domain/activity"
	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
	"github.com/rpggio/tally/internal/domain/user"
	"github.com/rpggio/tally/internal/mcp"
	"github.com/rpggio/tally/internal/sqlite"
	"github.com/rpggio/tally/internal/transport"
)

// App holds the wired services and handlers.
type App struct {
	Habits   *habit.Service
	Counts   *count.Service
	Activity *activity.Service
	Users    *user.Service
	// Tokens is nil when auth is disabled.
	Tokens *auth.TokenIssuer
	MCP    *sdkmcp.Server
	Router *chi.Mux
}

// Option adjusts an App under construction.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock fixes the clock used for "today" and token expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New wires repositories, services, REST routes, auth routes and the MCP
// server over db.
func New(cfg config.Config, db *sqlite.DB, logger *slog.Logger, opts ...Option) (*App, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	loc, err := cfg.TimeLocation()
	if err != nil {
		return nil, err
	}

	activityRepo := sqlite.NewActivityRepository(db)
	a := &App{
		Activity: activity.NewService(activityRepo, logger),
		Users:    user.NewService(sqlite.NewUserRepository(db), logger),
	}
	a.Habits = habit.NewService(sqlite.NewHabitRepository(db), a.Activity, logger)
	a.Counts = count.NewService(sqlite.NewCountRepository(db), a.Habits, a.Activity, logger).WithClock(o.now, loc)

	var authMiddleware func(http.Handler) http.Handler
	if cfg.Auth.Enabled {
		a.Tokens, err = auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
		if err != nil {
			return nil, fmt.Errorf("token issuer: %w", err)
		}
		a.Tokens.WithClock(o.now)
		authMiddleware = transport.AuthMiddleware(a.Tokens)
	}

	a.MCP = mcp.NewServer(mcp.Config{
		Services:      mcp.Services{Habits: a.Habits, Counts: a.Counts},
		Resolver:      a.Tokens,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		DefaultUser:   cfg.Auth.DefaultUser,
		Logger:        logger,
	})

	a.Router = transport.NewServer(transport.Services{
		Habits:   a.Habits,
		Counts:   a.Counts,
		Activity: a.Activity,
	}, transport.Options{
		AuthMiddleware: authMiddleware,
		DefaultUser:    cfg.Auth.DefaultUser,
		Logger:         logger,
	})

	if a.Tokens != nil {
		var provider auth.Provider
		if cfg.GoogleEnabled() {
			provider = auth.NewGoogle(auth.GoogleConfig{
				ClientID:     cfg.OAuth.GoogleClientID,
				ClientSecret: cfg.OAuth.GoogleClientSecret,
				RedirectURL:  cfg.OAuth.GoogleRedirectURL,
			})
		}
		a.Router.Mount("/auth", auth.NewHandler(provider, a.Users, a.Tokens, logger).Routes())
	}

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return a.MCP },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
	)
	a.Router.Handle("/mcp", mcpHandler)
	a.Router.Handle("/mcp/*", mcpHandler)

	return a, nil
}
