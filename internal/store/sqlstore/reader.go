// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package sqlstore

import (
	"context"
	"errors"

	"github.com/sourcedestination/saidb/internal/store"
	"github.com/sourcedestination/saidb/pkg/graph"
)

// GetGraph reconstructs graph id from one consistent snapshot. Each table is
// read with a single query by graph id and grouped here.
func (s *Store) GetGraph(ctx context.Context, id int64) (*graph.Mutable, error) {
	var g *graph.Mutable
	err := s.inTx(ctx, func(x executor) error {
		var err error
		g, err = readGraph(ctx, x, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func readGraph(ctx context.Context, x executor, id int64) (*graph.Mutable, error) {
	if err := requireGraph(ctx, x, id, store.GraphNotFound); err != nil {
		return nil, err
	}

	g := graph.NewMutable()

	rows, err := x.Query(ctx, selectGraphFeatures, id)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		f, err := featureOf(r)
		if err != nil {
			return nil, store.CorruptRow(store.TableGraphFeatures, id, r, err)
		}
		g.AddFeature(f)
	}

	rows, err = x.Query(ctx, selectNodes, id)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		n, err := r.Int("id")
		if err != nil {
			return nil, store.CorruptRow(store.TableNodeInstances, id, r, err)
		}
		g.AddNode(n)
	}

	rows, err = x.Query(ctx, selectNodeFeatures, id)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := addOwnedFeature(r, "node_id", g.AddNodeFeature); err != nil {
			return nil, store.CorruptRow(store.TableNodeFeatures, id, r, err)
		}
	}

	rows, err = x.Query(ctx, selectEdges, id)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := addEdge(r, g); err != nil {
			return nil, store.CorruptRow(store.TableEdgeInstances, id, r, err)
		}
	}

	rows, err = x.Query(ctx, selectEdgeFeatures, id)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := addOwnedFeature(r, "edge_id", g.AddEdgeFeature); err != nil {
			return nil, store.CorruptRow(store.TableEdgeFeatures, id, r, err)
		}
	}

	return g, nil
}

// requireGraph returns notFound(id) when no graph_instances row exists.
func requireGraph(ctx context.Context, x executor, id int64, notFound func(int64) error) error {
	rows, err := x.Query(ctx, selectGraph, id)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return notFound(id)
	}
	return nil
}

func featureOf(r store.Row) (graph.Feature, error) {
	for _, col := range []string{"feature_name", "feature_value"} {
		if r.IsNull(col) {
			return graph.Feature{}, errors.New("null " + col)
		}
	}
	name, _ := r.Value("feature_name")
	value, _ := r.Value("feature_value")
	return graph.F(name, value), nil
}

func addOwnedFeature(r store.Row, ownerColumn string, add func(int64, graph.Feature) error) error {
	owner, err := r.Int(ownerColumn)
	if err != nil {
		return err
	}
	f, err := featureOf(r)
	if err != nil {
		return err
	}
	return add(owner, f)
}

func addEdge(r store.Row, g *graph.Mutable) error {
	eid, err := r.Int("id")
	if err != nil {
		return err
	}
	from, err := r.Int("from_node_id")
	if err != nil {
		return err
	}
	to, err := r.Int("to_node_id")
	if err != nil {
		return err
	}
	return g.AddEdge(eid, from, to)
}
