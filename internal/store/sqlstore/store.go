// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

// Package sqlstore implements store.GraphStore over database/sql. Backends
// supply the driver handle and their DDL through a Dialect; every statement
// the package runs is parametrized with '?' placeholders.
package sqlstore

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/sourcedestination/saidb/internal/store"
)

// Compile-time interface check.
var _ store.GraphStore = (*Store)(nil)

// Dialect describes what differs between backends.
type Dialect struct {
	// Name is the backend name reported by Store.Backend.
	Name string

	// Schema holds the statements InitializeDatabase runs, in order,
	// one Exec each.
	Schema []string

	// IsConnError reports driver errors that mean the server is
	// unreachable rather than that a statement failed. Optional.
	IsConnError func(error) bool
}

// Options tunes a Store. Zero values take the store package defaults.
type Options struct {
	PageSize           int
	SlowQueryThreshold time.Duration
	Logger             *slog.Logger
}

// Store is a GraphStore backed by a *sql.DB pool it owns.
type Store struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger

	pageSize      int
	slowThreshold time.Duration
	stats         store.QueryStats
}

// New wraps db. The Store takes ownership of db and closes it in Close.
func New(db *sql.DB, dialect Dialect, opts Options) *Store {
	s := &Store{
		db:            db,
		dialect:       dialect,
		logger:        opts.Logger,
		pageSize:      opts.PageSize,
		slowThreshold: opts.SlowQueryThreshold,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.pageSize <= 0 {
		s.pageSize = store.DefaultPageSize
	}
	if s.slowThreshold <= 0 {
		s.slowThreshold = store.DefaultSlowQueryThreshold
	}
	return s
}

func (s *Store) Backend() string { return s.dialect.Name }

// DB exposes the underlying pool.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Stats() store.StatsSnapshot { return s.stats.Snapshot() }

// IsConnected pings the server.
func (s *Store) IsConnected(ctx context.Context) bool {
	return s.db.PingContext(ctx) == nil
}

// Close releases the pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// InitializeDatabase drops and recreates every table and index.
func (s *Store) InitializeDatabase(ctx context.Context) error {
	x := s.exec(s.db)
	for _, stmt := range s.dialect.Schema {
		if _, err := x.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	s.logger.Info("database initialized",
		slog.String("backend", s.dialect.Name),
		slog.Int("statements", len(s.dialect.Schema)))
	return nil
}
