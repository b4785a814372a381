// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package store

import (
	"context"
	"database/sql"
	"iter"

	"github.com/sourcedestination/saidb/pkg/graph"
)

// GraphWriter persists graphs.
type GraphWriter interface {
	// AddGraph validates g, writes it atomically and returns the id the
	// store assigned to it.
	AddGraph(ctx context.Context, g graph.Graph) (int64, error)
}

// GraphReader reconstructs stored graphs.
type GraphReader interface {
	GetGraph(ctx context.Context, id int64) (*graph.Mutable, error)
}

// GraphSearcher finds graphs by feature. A graph matches when the feature
// appears on the graph itself, on one of its nodes or on one of its edges.
// Results are ascending and free of duplicates.
type GraphSearcher interface {
	FindGraphsWithFeatureName(ctx context.Context, name string) ([]int64, error)
	FindGraphsWithFeature(ctx context.Context, name, value string) ([]int64, error)
}

// GraphLifecycle covers deletion, enumeration and aggregate counts.
type GraphLifecycle interface {
	DeleteGraph(ctx context.Context, id int64) error
	DeleteGraphIfExists(ctx context.Context, id int64) (bool, error)

	// StreamGraphIDs yields every stored graph id in ascending order. An
	// error is yielded once and ends the sequence.
	StreamGraphIDs(ctx context.Context) iter.Seq2[int64, error]
	ListGraphIDs(ctx context.Context, after int64, limit int) ([]int64, error)

	CountGraphs(ctx context.Context) (int64, error)
	CountNodes(ctx context.Context) (int64, error)
	CountEdges(ctx context.Context) (int64, error)
}

// Executor runs parametrized statements and returns fully drained results.
type Executor interface {
	Query(ctx context.Context, query string, args ...any) ([]Row, error)
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// GraphStore is the full persistence boundary.
type GraphStore interface {
	GraphWriter
	GraphReader
	GraphSearcher
	GraphLifecycle
	Executor

	// InitializeDatabase drops and recreates every table. All stored
	// graphs are lost.
	InitializeDatabase(ctx context.Context) error
	IsConnected(ctx context.Context) bool
	Backend() string
	Stats() StatsSnapshot
	Close() error
}

// RetrieveGraph reads graph id and hands the result to f, returning the
// representation f builds.
func RetrieveGraph[G any](ctx context.Context, r GraphReader, id int64, f graph.Factory[G]) (G, error) {
	var zero G
	g, err := r.GetGraph(ctx, id)
	if err != nil {
		return zero, err
	}
	return f(g), nil
}
