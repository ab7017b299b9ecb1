// Package logging builds the slog loggers of the tally binaries.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel maps debug, warn and error to slog levels; anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// RotatingFile returns a size-rotated log file at path.
func RotatingFile(path string) (*lumberjack.Logger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}, nil
}

// Server returns a text logger for the server. Logs go to path when set,
// otherwise to console, which must be stderr in stdio mode.
func Server(level, path string, console io.Writer) (*slog.Logger, io.Closer, error) {
	var w io.Writer = console
	var closer io.Closer = nopCloser{}
	if path != "" {
		file, err := RotatingFile(path)
		if err != nil {
			return nil, nil, err
		}
		w, closer = file, file
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
	return logger, closer, nil
}

// CLI returns the command line logger. It writes warnings and above to
// dataDir/logs/tally.log; with debug it also writes everything to stderr.
func CLI(dataDir string, debug bool, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	file, err := RotatingFile(filepath.Join(dataDir, "logs", "tally.log"))
	if err != nil {
		return nil, nil, err
	}

	level := log.WarnLevel
	var w io.Writer = file
	if debug {
		level = log.DebugLevel
		w = io.MultiWriter(stderr, file)
	}
	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    debug,
		Level:           level,
		Prefix:          "tally",
	})
	return slog.New(handler), file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
