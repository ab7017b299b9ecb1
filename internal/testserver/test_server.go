// Package testserver runs a full tally server over an in-memory database for
// end-to-end tests.
package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/tally/internal/app"
	"github.com/rpggio/tally/internal/config"
	"github.com/rpggio/tally/internal/domain/user"
	"github.com/rpggio/tally/internal/sqlite"
)

// TestServer is a running server and its wiring.
type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	App    *app.App
}

// Now is the fixed clock of every test server.
var Now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

// New starts a server. withAuth turns on bearer-token auth.
func New(t *testing.T, withAuth bool) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.Open(dsn)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Location = "UTC"
	if withAuth {
		cfg.Auth.Enabled = true
		cfg.Auth.TokenSecret = "test-secret"
	}

	a, err := app.New(cfg, db, nil, app.WithClock(func() time.Time { return Now }))
	require.NoError(t, err)

	server := httptest.NewServer(a.Router)
	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db, App: a}
}

// SignIn creates or finds the user with email and returns a bearer token
// for it. The server must have auth enabled.
func (ts *TestServer) SignIn(t *testing.T, email string) (string, *user.User) {
	t.Helper()
	require.NotNil(t, ts.App.Tokens, "auth is disabled")

	u, err := ts.App.Users.SignIn(context.Background(), user.Profile{Email: email, Name: email})
	require.NoError(t, err)
	token, _, err := ts.App.Tokens.Issue(u.ID, u.Email)
	require.NoError(t, err)
	return token, u
}

// URL returns the server base URL.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}
