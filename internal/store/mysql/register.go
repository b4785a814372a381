// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package mysql

import (
	"context"

	"github.com/sourcedestination/saidb/internal/store"
)

func init() {
	store.RegisterBackend(BackendName, open)
}

func open(ctx context.Context, cfg store.StorageConfig) (store.GraphStore, error) {
	return Connect(ctx, FromStorageConfig(cfg))
}

// FromStorageConfig maps the shared storage settings onto Config.
func FromStorageConfig(cfg store.StorageConfig) Config {
	return Config{
		Host:               cfg.MySQL.Host,
		Database:           cfg.MySQL.Database,
		Username:           cfg.MySQL.Username,
		Password:           cfg.MySQL.Password,
		Initialize:         cfg.Initialize,
		ConnectTimeout:     cfg.MySQL.ConnectTimeout,
		ReadTimeout:        cfg.MySQL.ReadTimeout,
		WriteTimeout:       cfg.MySQL.WriteTimeout,
		MaxOpenConns:       cfg.MaxOpenConns,
		PageSize:           cfg.PageSize,
		SlowQueryThreshold: cfg.SlowQueryThreshold,
	}
}
