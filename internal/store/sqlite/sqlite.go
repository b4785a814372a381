// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

// Package sqlite is an embedded backend for local use and tests. It stores
// graphs in the same tables as the MySQL backend.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sourcedestination/saidb/internal/ctxlog"
	"github.com/sourcedestination/saidb/internal/store"
	"github.com/sourcedestination/saidb/internal/store/sqlstore"
)

// BackendName is the name this backend registers under.
const BackendName = "sqlite"

// Config describes one SQLite database file.
type Config struct {
	Path       string // file path or ":memory:"
	Initialize bool   // drop and recreate every table after opening

	PageSize           int
	SlowQueryThreshold time.Duration
}

// Dialect is the SQLite flavour of sqlstore.
func Dialect() sqlstore.Dialect {
	return sqlstore.Dialect{
		Name:   BackendName,
		Schema: Schema,
	}
}

// Open opens (or creates) the database at cfg.Path and makes sure every
// table exists. The pool holds a single connection.
func Open(ctx context.Context, cfg Config) (*sqlstore.Store, error) {
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, store.ConnectionFailure(err, BackendName)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, store.ConnectionFailure(err, BackendName)
	}

	s := sqlstore.New(db, Dialect(), sqlstore.Options{
		PageSize:           cfg.PageSize,
		SlowQueryThreshold: cfg.SlowQueryThreshold,
		Logger:             ctxlog.FromContext(ctx),
	})

	if cfg.Initialize {
		err = s.InitializeDatabase(ctx)
	} else {
		err = ensureSchema(ctx, s)
	}
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func ensureSchema(ctx context.Context, s *sqlstore.Store) error {
	for _, stmt := range createStatements {
		if _, err := s.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
