// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package store

import "time"

// Defaults applied by Open when a field is left zero.
const (
	DefaultPageSize           = 100
	DefaultMaxOpenConns       = 8
	DefaultSlowQueryThreshold = 200 * time.Millisecond
)

// StorageConfig controls which backend Open uses and how it is tuned.
type StorageConfig struct {
	Backend            string        `mapstructure:"backend"` // "mysql" or "sqlite"
	Initialize         bool          `mapstructure:"initialize"`
	PageSize           int           `mapstructure:"page_size"`
	MaxOpenConns       int           `mapstructure:"max_open_conns"`
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
	MySQL              MySQLConfig   `mapstructure:"mysql"`
	SQLite             SQLiteConfig  `mapstructure:"sqlite"`
}

type MySQLConfig struct {
	Host           string        `mapstructure:"host"`
	Database       string        `mapstructure:"database"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

func (c *StorageConfig) pageSize() int {
	if c.PageSize <= 0 {
		return DefaultPageSize
	}
	return c.PageSize
}

func (c *StorageConfig) maxOpenConns() int {
	if c.MaxOpenConns <= 0 {
		return DefaultMaxOpenConns
	}
	return c.MaxOpenConns
}

func (c *StorageConfig) slowQueryThreshold() time.Duration {
	if c.SlowQueryThreshold <= 0 {
		return DefaultSlowQueryThreshold
	}
	return c.SlowQueryThreshold
}

// WithDefaults returns a copy of c with zero tuning fields filled in.
func (c StorageConfig) WithDefaults() StorageConfig {
	c.PageSize = c.pageSize()
	c.MaxOpenConns = c.maxOpenConns()
	c.SlowQueryThreshold = c.slowQueryThreshold()
	return c
}
