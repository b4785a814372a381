// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

// Package mysql is the MySQL backend: connection settings, DDL and the
// driver-specific error checks. Graph operations live in sqlstore.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	driver "github.com/go-sql-driver/mysql"

	"github.com/sourcedestination/saidb/internal/ctxlog"
	"github.com/sourcedestination/saidb/internal/store"
	"github.com/sourcedestination/saidb/internal/store/sqlstore"
)

// BackendName is the name this backend registers under.
const BackendName = "mysql"

// Default transport timeouts.
const (
	DefaultConnectTimeout = 5 * time.Second
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
)

// Server error numbers that mean the session itself is unusable.
const (
	erConCount          = 1040 // Too many connections
	erAccessDenied      = 1045 // Access denied for user
	erBadDB             = 1049 // Unknown database
	erHostNotPrivileged = 1130 // Host is not allowed to connect
)

// Config describes one MySQL server and database.
type Config struct {
	Host       string // host:port; a bare host gets port 3306
	Database   string
	Username   string
	Password   string
	Initialize bool // drop and recreate every table after connecting

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	MaxOpenConns       int
	PageSize           int
	SlowQueryThreshold time.Duration
}

// DSN renders c as a go-sql-driver data source name.
func (c Config) DSN() string {
	dc := driver.NewConfig()
	dc.User = c.Username
	dc.Passwd = c.Password
	dc.Net = "tcp"
	dc.Addr = c.Host
	dc.DBName = c.Database
	dc.Timeout = durationOr(c.ConnectTimeout, DefaultConnectTimeout)
	dc.ReadTimeout = durationOr(c.ReadTimeout, DefaultReadTimeout)
	dc.WriteTimeout = durationOr(c.WriteTimeout, DefaultWriteTimeout)
	return dc.FormatDSN()
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// Dialect is the MySQL flavour of sqlstore.
func Dialect() sqlstore.Dialect {
	return sqlstore.Dialect{
		Name:        BackendName,
		Schema:      Schema,
		IsConnError: IsConnError,
	}
}

// IsConnError reports driver errors that mean the server could not be
// reached or refused the session.
func IsConnError(err error) bool {
	if errors.Is(err, driver.ErrInvalidConn) {
		return true
	}
	var myErr *driver.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erConCount, erAccessDenied, erBadDB, erHostNotPrivileged:
			return true
		}
	}
	return false
}

// Connect opens a pool to the configured server and verifies it with a
// ping. Any failure is a connection failure. The logger is taken from ctx.
func Connect(ctx context.Context, cfg Config) (*sqlstore.Store, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, store.ConnectionFailure(err, BackendName)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, store.ConnectionFailure(err, BackendName)
	}

	logger := ctxlog.FromContext(ctx)
	s := sqlstore.New(db, Dialect(), sqlstore.Options{
		PageSize:           cfg.PageSize,
		SlowQueryThreshold: cfg.SlowQueryThreshold,
		Logger:             logger,
	})
	logger.Debug("connected to mysql",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database))

	if cfg.Initialize {
		if err := s.InitializeDatabase(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}
