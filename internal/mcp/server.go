package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ballotdesk/internal/domain/activity"
	"github.com/rpggio/ballotdesk/internal/domain/ballot"
	"github.com/rpggio/ballotdesk/internal/domain/preference"
	"github.com/rpggio/ballotdesk/internal/domain/reminder"
	"github.com/rpggio/ballotdesk/internal/domain/wizard"
	"github.com/rpggio/ballotdesk/internal/notify"
)

// CorporationRegistry defines the corporation lookups needed by MCP.
type CorporationRegistry interface {
	Names() []string
	Default() string
}

// BallotService defines ballot store operations needed by MCP.
type BallotService interface {
	Add(ctx context.Context, req ballot.AddRequest) (*ballot.Ballot, error)
	Get(ctx context.Context, id string) (*ballot.Ballot, error)
	List(ctx context.Context) ([]ballot.Ballot, error)
}

// WizardService defines draft operations needed by MCP.
type WizardService interface {
	Open(ctx context.Context) wizard.Draft
	Get(id string) (wizard.Draft, error)
	Update(id string, fn func(*wizard.Draft) error) (wizard.Draft, error)
	SaveDraft(ctx context.Context, id string) (wizard.Draft, error)
	Submit(ctx context.Context, id string) (*ballot.Ballot, error)
	Close(ctx context.Context, id string, confirmed bool) error
}

// ReminderService defines reminder operations needed by MCP.
type ReminderService interface {
	Compose(ctx context.Context, ballotID string, t reminder.Template) (*reminder.Draft, error)
	Send(ctx context.Context, p reminder.Payload) error
}

// PreferenceService defines theme operations needed by MCP.
type PreferenceService interface {
	Theme(ctx context.Context) (preference.Theme, error)
	SetTheme(ctx context.Context, theme preference.Theme) error
	Toggle(ctx context.Context) (preference.Theme, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// NotificationCenter defines toast operations needed by MCP.
type NotificationCenter interface {
	Push(title, message string) notify.Toast
	Active() []notify.Toast
	Dismiss(id string) bool
}

// Services contains all domain services needed by MCP.
type Services struct {
	Corporations CorporationRegistry
	Ballots      BallotService
	Wizard       WizardService
	Reminders    ReminderService
	Preferences  PreferenceService
	Activity     ActivityService
	Toasts       NotificationCenter
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "ballotdesk",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(sessionMiddleware(), trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, cfg.Services, logger)

	return server
}
