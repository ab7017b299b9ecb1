package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/tally/internal/calendar"
	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
)

// HabitService defines habit operations needed by MCP.
type HabitService interface {
	Create(ctx context.Context, userID string, req habit.CreateRequest) (*habit.Habit, error)
	Get(ctx context.Context, id string) (*habit.Habit, error)
	List(ctx context.Context, userID string) ([]habit.Habit, error)
	Update(ctx context.Context, id string, req habit.UpdateRequest) (*habit.Habit, error)
	Delete(ctx context.Context, id string) error
}

// CountService defines count operations needed by MCP.
type CountService interface {
	Today() calendar.Date
	Set(ctx context.Context, habitID string, date calendar.Date, value int) (*count.Count, error)
	IncrementToday(ctx context.Context, habitID string) (int, error)
	ResetToday(ctx context.Context, habitID string) error
	History(ctx context.Context, habitID string, days int) ([]count.Count, error)
	Report(ctx context.Context, h habit.Habit, window int) (count.Report, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Habits HabitService
	Counts CountService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      UserResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	DefaultUser   string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "tally",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	defaultUser := cfg.DefaultUser
	if defaultUser == "" {
		defaultUser = "local"
	}

	// Stdio is local only and never authenticates.
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware(defaultUser))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.AuthEnabled && cfg.TransportMode != "stdio")

	return server
}
