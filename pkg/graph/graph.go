// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

// Package graph is the in-memory model of labeled, directed multigraphs:
// nodes and edges with graph-local integer ids, each carrying features, plus
// graph-level features.
package graph

import (
	"maps"
	"slices"
)

// Edge is a directed edge between two nodes of the same graph.
type Edge struct {
	ID   int64
	From int64
	To   int64
}

// Graph is the read side shared by Mutable and Immutable. Id slices are
// ascending; feature slices are ordered by name, then value.
type Graph interface {
	NodeIDs() []int64
	EdgeIDs() []int64
	HasNode(id int64) bool
	Edge(id int64) (Edge, bool)
	Features() []Feature
	NodeFeatures(id int64) []Feature
	EdgeFeatures(id int64) []Feature
}

// Factory turns the builder produced by a store read into the representation
// a caller wants.
type Factory[G any] func(*Mutable) G

// Equal reports whether a and b have the same node ids, the same edges with
// the same endpoints, and identical feature sets at every level.
func Equal(a, b Graph) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !slices.Equal(a.Features(), b.Features()) {
		return false
	}
	nodes := a.NodeIDs()
	if !slices.Equal(nodes, b.NodeIDs()) {
		return false
	}
	for _, id := range nodes {
		if !slices.Equal(a.NodeFeatures(id), b.NodeFeatures(id)) {
			return false
		}
	}
	edges := a.EdgeIDs()
	if !slices.Equal(edges, b.EdgeIDs()) {
		return false
	}
	for _, id := range edges {
		ea, _ := a.Edge(id)
		eb, _ := b.Edge(id)
		if ea != eb {
			return false
		}
		if !slices.Equal(a.EdgeFeatures(id), b.EdgeFeatures(id)) {
			return false
		}
	}
	return true
}

func sortedKeys[V any](m map[int64]V) []int64 {
	if len(m) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(m))
}
