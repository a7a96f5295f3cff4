package main

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/myrjola/soverain/internal/catalog"
	"github.com/myrjola/soverain/internal/e2etest"
	"github.com/myrjola/soverain/internal/metrics"
	"github.com/myrjola/soverain/internal/sqlite"
	"github.com/myrjola/soverain/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "SOVERAIN_ADDR":
		return "localhost:0", true
	case "SOVERAIN_SQLITE_URL":
		return ":memory:", true
	default:
		return "", false
	}
}

// startTestServer starts the whole application through run and returns it once it is healthy.
func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	server, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv, run)
	require.NoError(t, err)
	return server
}

// newTestClient serves the application routes on an httptest server with the clock now and returns a client
// with a fresh session.
func newTestClient(t *testing.T, now func() time.Time) *e2etest.Client {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	logger := testhelpers.NewLogger(io.Discard)

	db, err := sqlite.Connect(ctx, ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite, 0)

	app := &application{
		logger:         logger,
		sessionManager: sessionManager,
		db:             db,
		catalog:        catalog.NewRegistry(),
		metrics:        metrics.New(),
		now:            now,
	}
	ts := httptest.NewServer(app.routes())
	t.Cleanup(ts.Close)

	client, err := e2etest.NewClient(ts.URL)
	require.NoError(t, err)
	return client
}
