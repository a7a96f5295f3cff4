// Package sqlite owns the SQLite database that backs the session store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // Enable sqlite3 driver
	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/random"
)

//go:embed schema.sql
var schemaDefinition string

const (
	maxReadConns       = 10
	inMemoryNameLength = 20
)

type Database struct {
	ReadWrite *sql.DB
	ReadOnly  *sql.DB
	logger    *slog.Logger
}

// Connect opens the database at url, brings its schema up to date and starts the background optimizer.
//
// Writes go through a single connection and reads through a pool, following
// https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995.
// The url ":memory:" gives every caller its own private in-memory database, which is what parallel tests need.
func Connect(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	db, err := connect(url, logger)
	if err != nil {
		return nil, err
	}
	if err = db.migrateTo(ctx, schemaDefinition); err != nil {
		return nil, errors.Wrap(err, "migrate schema")
	}
	go db.StartDatabaseOptimizer(ctx)
	return db, nil
}

func connect(url string, logger *slog.Logger) (*Database, error) {
	var (
		err         error
		readWriteDB *sql.DB
		readDB      *sql.DB
	)

	// SQLite pragmas, see https://www.sqlite.org/pragma.html.
	pragmas := strings.Join([]string{
		"_journal_mode=wal",
		"_busy_timeout=5000",
		"_synchronous=normal",
		"_foreign_keys=on",
	}, "&")
	readMode, writeMode := "mode=ro", "mode=rwc"
	if strings.Contains(url, ":memory:") {
		// A named shared-cache database lets both pools see the same data while staying private to this caller.
		var name string
		if name, err = random.Letters(inMemoryNameLength); err != nil {
			return nil, errors.Wrap(err, "generate in-memory database name")
		}
		url = name
		readMode, writeMode = "mode=memory&cache=shared", "mode=memory&cache=shared"
	}
	readDSN := fmt.Sprintf("file:%s?%s&_txlock=deferred&_query_only=true&%s", url, readMode, pragmas)
	readWriteDSN := fmt.Sprintf("file:%s?%s&_txlock=immediate&%s", url, writeMode, pragmas)

	if readWriteDB, err = sql.Open("sqlite3", readWriteDSN); err != nil {
		return nil, errors.Wrap(err, "open read-write database", slog.String("url", url))
	}
	readWriteDB.SetMaxOpenConns(1)
	readWriteDB.SetMaxIdleConns(1)
	readWriteDB.SetConnMaxLifetime(time.Hour)
	readWriteDB.SetConnMaxIdleTime(time.Hour)

	// The read-only connection cannot create the file, so make sure it exists first.
	if err = readWriteDB.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping read-write database", slog.String("url", url))
	}

	if readDB, err = sql.Open("sqlite3", readDSN); err != nil {
		return nil, errors.Wrap(err, "open read database", slog.String("url", url))
	}
	readDB.SetMaxOpenConns(maxReadConns)
	readDB.SetMaxIdleConns(maxReadConns)
	readDB.SetConnMaxLifetime(time.Hour)
	readDB.SetConnMaxIdleTime(time.Hour)

	return &Database{
		ReadWrite: readWriteDB,
		ReadOnly:  readDB,
		logger:    logger,
	}, nil
}

// Ping verifies that both connection pools are usable.
func (db *Database) Ping(ctx context.Context) error {
	if err := db.ReadWrite.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping read-write database")
	}
	if err := db.ReadOnly.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping read database")
	}
	return nil
}

// ActiveSessions counts the sessions that have not expired yet.
func (db *Database) ActiveSessions(ctx context.Context) (int, error) {
	var count int
	row := db.ReadOnly.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE julianday('now') < expiry`)
	if err := row.Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count sessions")
	}
	return count, nil
}

// Close closes both connection pools.
func (db *Database) Close() error {
	return errors.Join(
		errors.Wrap(db.ReadOnly.Close(), "close read database"),
		errors.Wrap(db.ReadWrite.Close(), "close read-write database"),
	)
}
