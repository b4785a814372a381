// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package sqlstore

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/sourcedestination/saidb/internal/store"
	saierr "github.com/sourcedestination/saidb/pkg/errors"
	"github.com/sourcedestination/saidb/pkg/graph"
)

// AddGraph validates g and writes it in one transaction: the graph row
// first, so its generated id is known, then graph features, nodes with their
// features, and edges with their features. On any failure nothing is kept.
func (s *Store) AddGraph(ctx context.Context, g graph.Graph) (int64, error) {
	if err := validate(g); err != nil {
		return 0, err
	}

	var id int64
	err := s.inTx(ctx, func(x executor) error {
		var err error
		id, err = writeGraph(ctx, x, g)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.DebugContext(ctx, "graph added",
		slog.Int64("graph_id", id),
		slog.Int("nodes", len(g.NodeIDs())),
		slog.Int("edges", len(g.EdgeIDs())))
	return id, nil
}

func writeGraph(ctx context.Context, x executor, g graph.Graph) (int64, error) {
	nodes := g.NodeIDs()
	edges := g.EdgeIDs()
	features := g.Features()

	res, err := x.Exec(ctx, insertGraph, len(nodes), len(edges), len(features))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, store.QueryFailure(err, insertGraph)
	}

	for _, f := range features {
		if _, err := x.Exec(ctx, insertGraphFeature, id, f.Name, f.Value); err != nil {
			return 0, err
		}
	}

	for _, n := range nodes {
		nf := g.NodeFeatures(n)
		if _, err := x.Exec(ctx, insertNode, n, id, len(nf)); err != nil {
			return 0, err
		}
		for _, f := range nf {
			if _, err := x.Exec(ctx, insertNodeFeature, id, n, f.Name, f.Value); err != nil {
				return 0, err
			}
		}
	}

	for _, eid := range edges {
		e, _ := g.Edge(eid)
		ef := g.EdgeFeatures(eid)
		if _, err := x.Exec(ctx, insertEdge, eid, id, e.From, e.To, len(ef)); err != nil {
			return 0, err
		}
		for _, f := range ef {
			if _, err := x.Exec(ctx, insertEdgeFeature, id, eid, f.Name, f.Value); err != nil {
				return 0, err
			}
		}
	}
	return id, nil
}

// validate runs every check that can be made without the database.
func validate(g graph.Graph) error {
	if g == nil {
		return store.InvalidGraph("graph is nil")
	}

	if err := checkFeatures(g.Features(), saierr.Field("owner", "graph")); err != nil {
		return err
	}
	for _, n := range g.NodeIDs() {
		if err := checkFeatures(g.NodeFeatures(n), saierr.FieldNodeID(n)); err != nil {
			return err
		}
	}
	for _, eid := range g.EdgeIDs() {
		e, ok := g.Edge(eid)
		if !ok {
			return store.InvalidGraph("edge id listed without an edge", saierr.FieldEdgeID(eid))
		}
		if !g.HasNode(e.From) {
			return store.DanglingEdge(eid, e.From)
		}
		if !g.HasNode(e.To) {
			return store.DanglingEdge(eid, e.To)
		}
		if err := checkFeatures(g.EdgeFeatures(eid), saierr.FieldEdgeID(eid)); err != nil {
			return err
		}
	}
	return nil
}

func checkFeatures(fs []graph.Feature, owner saierr.Attr) error {
	for _, f := range fs {
		if len(f.Name) > graph.MaxFeatureLength || len(f.Value) > graph.MaxFeatureLength {
			return store.InvalidGraph("feature longer than 256 bytes", owner, saierr.Field("feature_name", truncate(f.Name)))
		}
		if !utf8.ValidString(f.Name) || !utf8.ValidString(f.Value) {
			return store.InvalidGraph("feature is not valid UTF-8", owner, saierr.Field("feature_name", strings.ToValidUTF8(truncate(f.Name), "?")))
		}
	}
	return nil
}

func truncate(s string) string {
	const keep = 32
	if len(s) <= keep {
		return s
	}
	return s[:keep] + "..."
}
