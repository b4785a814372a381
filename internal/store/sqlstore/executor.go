// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/sourcedestination/saidb/internal/store"
)

// conn is satisfied by *sql.DB and *sql.Tx.
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// executor runs statements on one conn and records them in the store's
// statistics.
type executor struct {
	c conn
	s *Store
}

var _ store.Executor = executor{}

func (s *Store) exec(c conn) executor {
	return executor{c: c, s: s}
}

// Query runs a parametrized statement on the pool and returns every row.
func (s *Store) Query(ctx context.Context, query string, args ...any) ([]store.Row, error) {
	return s.exec(s.db).Query(ctx, query, args...)
}

// Exec runs a parametrized statement on the pool.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.exec(s.db).Exec(ctx, query, args...)
}

func (x executor) Query(ctx context.Context, query string, args ...any) ([]store.Row, error) {
	start := time.Now()
	rows, err := x.c.QueryContext(ctx, query, args...)
	if err == nil {
		var out []store.Row
		out, err = drain(rows)
		if err == nil {
			x.s.record(ctx, query, start, true, nil)
			return out, nil
		}
	}
	x.s.record(ctx, query, start, true, err)
	return nil, x.s.classify(err, query)
}

func (x executor) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := x.c.ExecContext(ctx, query, args...)
	x.s.record(ctx, query, start, false, err)
	if err != nil {
		return nil, x.s.classify(err, query)
	}
	return res, nil
}

// drain reads and closes rows. Every value is scanned as text.
func drain(rows *sql.Rows) ([]store.Row, error) {
	defer rows.Close() //nolint:errcheck

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []store.Row
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		out = append(out, store.NewRow(cols, vals))
	}
	return out, rows.Err()
}

func (s *Store) record(ctx context.Context, query string, start time.Time, isQuery bool, err error) {
	d := time.Since(start)
	slow := d > s.slowThreshold
	s.stats.Record(isQuery, d, slow, err)
	if slow {
		s.logger.WarnContext(ctx, "slow statement",
			slog.Duration("duration", d),
			slog.String("query", query))
	}
}

func (s *Store) classify(err error, query string) error {
	if s.isConnError(err) {
		return store.ConnectionFailure(err, s.dialect.Name)
	}
	return store.QueryFailure(err, query)
}

func (s *Store) isConnError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return s.dialect.IsConnError != nil && s.dialect.IsConnError(err)
}
