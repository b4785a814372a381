// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package sqlite

import (
	"context"

	"github.com/sourcedestination/saidb/internal/store"
)

func init() {
	store.RegisterBackend(BackendName, open)
}

func open(ctx context.Context, cfg store.StorageConfig) (store.GraphStore, error) {
	return Open(ctx, Config{
		Path:               cfg.SQLite.Path,
		Initialize:         cfg.Initialize,
		PageSize:           cfg.PageSize,
		SlowQueryThreshold: cfg.SlowQueryThreshold,
	})
}
