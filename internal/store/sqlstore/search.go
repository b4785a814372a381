// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package sqlstore

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"
)

// FindGraphsWithFeatureName returns the ids of graphs carrying a feature
// named name on the graph, a node or an edge.
func (s *Store) FindGraphsWithFeatureName(ctx context.Context, name string) ([]int64, error) {
	return s.search(ctx,
		[3]string{searchGraphFeaturesByName, searchNodeFeaturesByName, searchEdgeFeaturesByName},
		name)
}

// FindGraphsWithFeature is FindGraphsWithFeatureName restricted to one value.
func (s *Store) FindGraphsWithFeature(ctx context.Context, name, value string) ([]int64, error) {
	return s.search(ctx,
		[3]string{searchGraphFeatures, searchNodeFeatures, searchEdgeFeatures},
		name, value)
}

// search runs the three feature scans concurrently and unions their ids.
func (s *Store) search(ctx context.Context, queries [3]string, args ...any) ([]int64, error) {
	var found [3][]int64

	eg, ctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		eg.Go(func() error {
			rows, err := s.Query(ctx, q, args...)
			if err != nil {
				return err
			}
			ids, err := graphIDs(rows, q)
			if err != nil {
				return err
			}
			found[i] = ids
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	out := []int64{}
	for _, ids := range found {
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out, nil
}
