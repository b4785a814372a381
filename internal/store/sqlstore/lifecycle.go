// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package sqlstore

import (
	"context"
	"iter"
	"log/slog"

	"github.com/sourcedestination/saidb/internal/store"
	saierr "github.com/sourcedestination/saidb/pkg/errors"
)

// DeleteGraph removes graph id and every row carrying its id from all five
// tables, atomically.
func (s *Store) DeleteGraph(ctx context.Context, id int64) error {
	var nodes, edges int
	err := s.inTx(ctx, func(x executor) error {
		if err := requireGraph(ctx, x, id, store.DeleteNotFound); err != nil {
			return err
		}

		rows, err := x.Query(ctx, selectNodes, id)
		if err != nil {
			return err
		}
		nodes = len(rows)
		if rows, err = x.Query(ctx, selectEdges, id); err != nil {
			return err
		}
		edges = len(rows)

		for _, stmt := range []string{
			deleteEdgeFeatures,
			deleteNodeFeatures,
			deleteEdges,
			deleteNodes,
			deleteGraphFeatures,
			deleteGraph,
		} {
			if _, err := x.Exec(ctx, stmt, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "graph deleted",
		slog.Int64("graph_id", id),
		slog.Int("nodes", nodes),
		slog.Int("edges", edges))
	return nil
}

// DeleteGraphIfExists is DeleteGraph that treats a missing graph as done.
// It reports whether a graph was removed.
func (s *Store) DeleteGraphIfExists(ctx context.Context, id int64) (bool, error) {
	err := s.DeleteGraph(ctx, id)
	if saierr.HasCode(err, saierr.CodeStoreGraphDeleteNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// StreamGraphIDs walks graph_instances in ascending id order one page at a
// time. Each page starts after the last id seen, so graphs deleted while
// streaming never cause a repeat or a skip of surviving ids.
func (s *Store) StreamGraphIDs(ctx context.Context) iter.Seq2[int64, error] {
	return func(yield func(int64, error) bool) {
		var after int64
		for {
			page, err := s.ListGraphIDs(ctx, after, s.pageSize)
			if err != nil {
				yield(0, err)
				return
			}
			for _, id := range page {
				if !yield(id, nil) {
					return
				}
			}
			if len(page) < s.pageSize {
				return
			}
			after = page[len(page)-1]
		}
	}
}

// ListGraphIDs returns up to limit ids greater than after, ascending. A
// non-positive limit uses the configured page size.
func (s *Store) ListGraphIDs(ctx context.Context, after int64, limit int) ([]int64, error) {
	if limit <= 0 {
		limit = s.pageSize
	}
	rows, err := s.Query(ctx, selectGraphIDsAfter, after, limit)
	if err != nil {
		return nil, err
	}
	return graphIDs(rows, selectGraphIDsAfter)
}

func (s *Store) CountGraphs(ctx context.Context) (int64, error) {
	return s.count(ctx, countGraphs)
}

// CountNodes counts node rows that belong to a stored graph.
func (s *Store) CountNodes(ctx context.Context) (int64, error) {
	return s.count(ctx, countNodes)
}

// CountEdges counts edge rows that belong to a stored graph.
func (s *Store) CountEdges(ctx context.Context) (int64, error) {
	return s.count(ctx, countEdges)
}

func (s *Store) count(ctx context.Context, query string) (int64, error) {
	rows, err := s.Query(ctx, query)
	if err != nil {
		return 0, err
	}
	if len(rows) != 1 {
		return 0, saierr.New(saierr.CodeStoreQueryFailure, "aggregate returned no row", saierr.Field("query", query))
	}
	return rows[0].Int("total")
}

// graphIDs reads the first column of each row as a graph id.
func graphIDs(rows []store.Row, query string) ([]int64, error) {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		cols := r.Columns()
		if len(cols) == 0 {
			return nil, saierr.New(saierr.CodeStoreQueryFailure, "row without columns", saierr.Field("query", query))
		}
		id, err := r.Int(cols[0])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
