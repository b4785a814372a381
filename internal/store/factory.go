// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package store

import (
	"context"
	"maps"
	"slices"
	"sync"

	saierr "github.com/sourcedestination/saidb/pkg/errors"
)

// DefaultBackend is used when StorageConfig.Backend is empty.
const DefaultBackend = "mysql"

// BackendFactory opens a GraphStore from a configuration whose tuning
// fields have already been defaulted. The logger travels in ctx (see
// internal/ctxlog).
type BackendFactory func(ctx context.Context, cfg StorageConfig) (GraphStore, error)

var (
	factories   = map[string]BackendFactory{}
	factoriesMu sync.RWMutex
)

// RegisterBackend registers the factory for a named storage backend.
// Backend packages call this from init(). This function is goroutine-safe.
func RegisterBackend(name string, factory BackendFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = factory
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	return slices.Sorted(maps.Keys(factories))
}

func resolveBackend(cfg *StorageConfig) string {
	if cfg.Backend == "" {
		return DefaultBackend
	}
	return cfg.Backend
}

// Open connects to the backend named in cfg. Backends recreate the schema
// before returning when cfg.Initialize is set.
func Open(ctx context.Context, cfg *StorageConfig) (GraphStore, error) {
	backend := resolveBackend(cfg)

	factoriesMu.RLock()
	factory, ok := factories[backend]
	factoriesMu.RUnlock()
	if !ok {
		return nil, saierr.New(saierr.CodeStoreBackendUnsupported, "unsupported storage backend",
			saierr.FieldBackend(backend))
	}

	effective := cfg.WithDefaults()
	effective.Backend = backend

	return factory(ctx, effective)
}
