package testserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ballotdesk/internal/domain/activity"
	"github.com/rpggio/ballotdesk/internal/domain/ballot"
	"github.com/rpggio/ballotdesk/internal/domain/corporation"
	"github.com/rpggio/ballotdesk/internal/domain/preference"
	"github.com/rpggio/ballotdesk/internal/domain/reminder"
	"github.com/rpggio/ballotdesk/internal/domain/wizard"
	"github.com/rpggio/ballotdesk/internal/mcp"
	"github.com/rpggio/ballotdesk/internal/notify"
	"github.com/rpggio/ballotdesk/internal/sqlite"
	"github.com/stretchr/testify/require"
)

// BaseURL is the portal address used in reminder links.
const BaseURL = "https://portal.example.com"

// Corporations registered in every test server. The first is the default.
var Corporations = []string{"Parkview Gardens OC", "Sunset Towers OC", "Riverside Apartments OC"}

// Options adjusts the test server.
type Options struct {
	// SeedDemo loads the demo ballots at start.
	SeedDemo bool
	// ToastDuration overrides notification expiry.
	ToastDuration time.Duration
}

// TestServer is a fully wired portal over in-memory databases.
type TestServer struct {
	MCP     *sdkmcp.Server
	DB      *sqlite.DB
	Ballots *ballot.Service
	Toasts  *notify.Toasts
}

// New wires every service over fresh in-memory databases. Resources are
// released when the test ends.
func New(t *testing.T, opts Options) *TestServer {
	t.Helper()

	db, err := sqlite.New(sqlite.MemoryDSN)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	registry, err := corporation.NewRegistry(Corporations, Corporations[0])
	require.NoError(t, err)

	activityRepo := sqlite.NewActivityRepository(db)
	toasts := notify.NewToasts(opts.ToastDuration)

	activitySvc := activity.NewService(activityRepo, nil)
	ballotSvc := ballot.NewService(sqlite.NewBallotRepository(db), activityRepo, registry, nil)
	wizardSvc := wizard.NewService(ballotSvc, activityRepo, registry.Default(), nil)
	reminderSvc := reminder.NewService(ballotSvc, reminder.NewComposer(BaseURL), notify.NewOutbox(activityRepo, toasts, nil), nil)
	preferenceSvc := preference.NewService(sqlite.NewPreferenceRepository(db), nil)

	if opts.SeedDemo {
		require.NoError(t, ballotSvc.Seed(context.Background(), ballot.DemoBallots()))
	}

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Corporations: registry,
			Ballots:      ballotSvc,
			Wizard:       wizardSvc,
			Reminders:    reminderSvc,
			Preferences:  preferenceSvc,
			Activity:     activitySvc,
			Toasts:       toasts,
		},
		Version: "test",
	})

	t.Cleanup(func() {
		toasts.Close()
		_ = db.Close()
	})

	return &TestServer{MCP: server, DB: db, Ballots: ballotSvc, Toasts: toasts}
}

// Connect opens an in-memory MCP client session to the server.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	ctx := context.Background()
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	serverSession, err := ts.MCP.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Close()
	})
	return session
}

// HTTP serves the portal over streamable HTTP.
func (ts *TestServer) HTTP(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(mcp.NewHTTPHandler(ts.MCP))
	t.Cleanup(server.Close)
	return server
}
