package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/random"
)

// schemaObject is a row of sqlite_schema.
type schemaObject struct {
	kind  string
	name  string
	table string
	sql   string
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// migrateTo makes the database schema match schema declaratively.
//
// The target schema is materialised in a scratch in-memory database and compared object by object with sqlite_schema.
// Objects that disappeared or whose SQL changed are dropped, then every missing object is created. A changed table is
// recreated empty: the only data kept here are sessions, and losing them logs visitors out of their journals.
func (db *Database) migrateTo(ctx context.Context, schema string) error {
	var (
		err    error
		target *sql.DB
		want   map[string]schemaObject
	)
	if target, err = openScratch(ctx, schema); err != nil {
		return errors.Wrap(err, "open schema target")
	}
	defer func() {
		if closeErr := target.Close(); closeErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to close schema target",
				errors.SlogError(errors.Wrap(closeErr, "close schema target")))
		}
	}()
	if want, err = querySchema(ctx, target); err != nil {
		return errors.Wrap(err, "query target schema")
	}

	var tx *sql.Tx
	if tx, err = db.ReadWrite.BeginTx(ctx, nil); err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var have map[string]schemaObject
	if have, err = querySchema(ctx, tx); err != nil {
		return errors.Wrap(err, "query current schema")
	}
	for _, obj := range dropOrder(have) {
		if wanted, ok := want[obj.name]; ok && wanted.sql == obj.sql && wanted.kind == obj.kind {
			continue
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping schema object",
			slog.String("type", obj.kind), slog.String("name", obj.name))
		// Dropping a table also drops its indexes and triggers, hence IF EXISTS.
		stmt := fmt.Sprintf(`DROP %s IF EXISTS "%s"`, strings.ToUpper(obj.kind), obj.name)
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "drop schema object", slog.String("query", stmt))
		}
	}

	if have, err = querySchema(ctx, tx); err != nil {
		return errors.Wrap(err, "query schema after drops")
	}
	for _, obj := range createOrder(want) {
		if _, ok := have[obj.name]; ok {
			continue
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating schema object",
			slog.String("type", obj.kind), slog.String("name", obj.name))
		if _, err = tx.ExecContext(ctx, obj.sql); err != nil {
			return errors.Wrap(err, "create schema object", slog.String("query", obj.sql))
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit migration")
	}
	return nil
}

// openScratch creates a private in-memory database holding schema. The connection pool is limited to a single
// connection because the database lives only as long as its connection.
func openScratch(ctx context.Context, schema string) (*sql.DB, error) {
	name, err := random.Letters(inMemoryNameLength)
	if err != nil {
		return nil, errors.Wrap(err, "generate scratch database name")
	}
	scratch, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=private", name))
	if err != nil {
		return nil, errors.Wrap(err, "open scratch database")
	}
	scratch.SetMaxOpenConns(1)
	scratch.SetMaxIdleConns(1)
	scratch.SetConnMaxLifetime(0)
	scratch.SetConnMaxIdleTime(0)
	if strings.TrimSpace(schema) != "" {
		if _, err = scratch.ExecContext(ctx, schema); err != nil {
			_ = scratch.Close()
			return nil, errors.Wrap(err, "apply schema to scratch database")
		}
	}
	return scratch, nil
}

func querySchema(ctx context.Context, q querier) (map[string]schemaObject, error) {
	rows, err := q.QueryContext(ctx, `SELECT type, name, tbl_name, sql
FROM sqlite_schema
WHERE sql IS NOT NULL AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return nil, errors.Wrap(err, "query sqlite_schema")
	}
	defer func() {
		_ = rows.Close()
	}()
	objects := map[string]schemaObject{}
	for rows.Next() {
		var obj schemaObject
		if err = rows.Scan(&obj.kind, &obj.name, &obj.table, &obj.sql); err != nil {
			return nil, errors.Wrap(err, "scan schema object")
		}
		objects[obj.name] = obj
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate schema objects")
	}
	return objects, nil
}

// dropOrder lists dependent objects before tables.
func dropOrder(objects map[string]schemaObject) []schemaObject {
	return ordered(objects, func(obj schemaObject) bool { return obj.kind != "table" })
}

// createOrder lists tables before the objects that depend on them.
func createOrder(objects map[string]schemaObject) []schemaObject {
	return ordered(objects, func(obj schemaObject) bool { return obj.kind == "table" })
}

func ordered(objects map[string]schemaObject, first func(schemaObject) bool) []schemaObject {
	var head, tail []schemaObject
	for _, name := range sortedKeys(objects) {
		obj := objects[name]
		if first(obj) {
			head = append(head, obj)
		} else {
			tail = append(tail, obj)
		}
	}
	return append(head, tail...)
}

func sortedKeys(objects map[string]schemaObject) []string {
	keys := make([]string, 0, len(objects))
	for k := range objects {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
