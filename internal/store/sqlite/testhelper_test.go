// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sourcedestination/saidb/internal/store/sqlite"
	"github.com/sourcedestination/saidb/internal/store/sqlstore"
	"github.com/sourcedestination/saidb/pkg/graph"
)

// testDBPath returns a SQLite database path in a per-test directory.
func testDBPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name+".db")
}

// openStore opens a fresh, initialized store that is closed with the test.
func openStore(t *testing.T, pageSize int) *sqlstore.Store {
	t.Helper()
	s, err := sqlite.Open(context.Background(), sqlite.Config{
		Path:       testDBPath(t, "graphs"),
		Initialize: true,
		PageSize:   pageSize,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// rowCount counts the rows of table, optionally restricted to one graph.
func rowCount(t *testing.T, s *sqlstore.Store, table, column string, graphID int64) int64 {
	t.Helper()
	query := "SELECT COUNT(*) AS total FROM " + table
	var args []any
	if column != "" {
		query += " WHERE " + column + " = ?"
		args = append(args, graphID)
	}
	rows, err := s.Query(context.Background(), query, args...)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	n, err := rows[0].Int("total")
	require.NoError(t, err)
	return n
}

var allTables = []struct {
	name     string
	graphCol string
}{
	{"graph_instances", "id"},
	{"graph_features", "graph_id"},
	{"node_instances", "graph_id"},
	{"node_features", "graph_id"},
	{"edge_instances", "graph_id"},
	{"edge_features", "graph_id"},
}

// sample builds a small multigraph with repeated feature names, a self loop,
// parallel edges and feature text that needs escaping.
func sample(t *testing.T) *graph.Mutable {
	t.Helper()
	g := graph.NewMutable()
	g.AddFeature(graph.F("source", "unit-test"))
	g.AddFeature(graph.F("note", `O'Brien said "hi"; DROP TABLE graph_instances; --`))
	for _, id := range []int64{1, 2, 3} {
		g.AddNode(id)
	}
	require.NoError(t, g.AddNodeFeature(1, graph.F("tag", "a")))
	require.NoError(t, g.AddNodeFeature(1, graph.F("tag", "b")))
	require.NoError(t, g.AddNodeFeature(3, graph.F("ünïcode", "✓")))
	require.NoError(t, g.AddEdge(10, 1, 2))
	require.NoError(t, g.AddEdge(11, 1, 2))
	require.NoError(t, g.AddEdge(12, 3, 3))
	require.NoError(t, g.AddEdgeFeature(11, graph.F("weight", "2")))
	return g
}
