package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/rpggio/tally/internal/cli"
	"github.com/rpggio/tally/internal/client"
	"github.com/rpggio/tally/internal/credentials"
	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/logging"
	"github.com/rpggio/tally/internal/settings"
	"github.com/rpggio/tally/internal/sqlite"
	"github.com/rpggio/tally/internal/tracker"
)

const version = "v0.1.0"

func main() {
	var root cli.CLI
	kctx := kong.Parse(&root, cli.Options(version)...)

	dataDir := root.DataDir
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		dataDir = filepath.Join(base, "tally")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.CLI(dataDir, root.Debug, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	db, err := sqlite.Open(filepath.Join(dataDir, "counts.db"))
	if err != nil {
		logger.Error("failed to open count database", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	counts := count.NewService(sqlite.NewCountRepository(db), nil, nil, logger)
	appCtx := &cli.Context{
		Ctx:       ctx,
		Tracker:   tracker.New(settings.NewFileStore(dataDir, logger), counts, tracker.WithLogger(logger)),
		Out:       os.Stdout,
		Tokens:    credentials.Keyring{},
		ServerURL: root.Server,
		NewRemote: func(serverURL, token string) cli.Remote {
			return client.New(serverURL, token)
		},
	}

	if err := kctx.Run(appCtx); err != nil {
		logger.Debug("command failed", "command", kctx.Command(), "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
