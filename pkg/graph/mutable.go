// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package graph

import (
	saierr "github.com/sourcedestination/saidb/pkg/errors"
)

// Compile-time interface check.
var _ Graph = (*Mutable)(nil)

// Mutable is a graph under construction. It does not check that edge
// endpoints exist; stores validate that before writing.
type Mutable struct {
	features     featureSet
	nodes        map[int64]featureSet
	edges        map[int64]Edge
	edgeFeatures map[int64]featureSet
}

// NewMutable returns an empty graph.
func NewMutable() *Mutable {
	return &Mutable{
		features:     featureSet{},
		nodes:        map[int64]featureSet{},
		edges:        map[int64]Edge{},
		edgeFeatures: map[int64]featureSet{},
	}
}

// AddNode adds a node. Adding an existing node is a no-op.
func (g *Mutable) AddNode(id int64) {
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = featureSet{}
	}
}

// AddEdge adds a directed edge from one node to another.
func (g *Mutable) AddEdge(id, from, to int64) error {
	if _, ok := g.edges[id]; ok {
		return saierr.New(saierr.CodeGraphBuildInvalid, "duplicate edge id", saierr.FieldEdgeID(id))
	}
	g.edges[id] = Edge{ID: id, From: from, To: to}
	g.edgeFeatures[id] = featureSet{}
	return nil
}

// AddFeature tags the graph itself.
func (g *Mutable) AddFeature(f Feature) {
	g.features.add(f)
}

// AddNodeFeature tags an existing node.
func (g *Mutable) AddNodeFeature(id int64, f Feature) error {
	fs, ok := g.nodes[id]
	if !ok {
		return saierr.New(saierr.CodeGraphBuildInvalid, "feature on unknown node", saierr.FieldNodeID(id))
	}
	fs.add(f)
	return nil
}

// AddEdgeFeature tags an existing edge.
func (g *Mutable) AddEdgeFeature(id int64, f Feature) error {
	fs, ok := g.edgeFeatures[id]
	if !ok {
		return saierr.New(saierr.CodeGraphBuildInvalid, "feature on unknown edge", saierr.FieldEdgeID(id))
	}
	fs.add(f)
	return nil
}

func (g *Mutable) NodeIDs() []int64 { return sortedKeys(g.nodes) }
func (g *Mutable) EdgeIDs() []int64 { return sortedKeys(g.edges) }

func (g *Mutable) HasNode(id int64) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Mutable) Edge(id int64) (Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

func (g *Mutable) Features() []Feature             { return g.features.sorted() }
func (g *Mutable) NodeFeatures(id int64) []Feature { return g.nodes[id].sorted() }
func (g *Mutable) EdgeFeatures(id int64) []Feature { return g.edgeFeatures[id].sorted() }

// Clone returns an independent copy of g. It satisfies Factory[*Mutable].
func Clone(g *Mutable) *Mutable {
	c := &Mutable{
		features:     g.features.clone(),
		nodes:        make(map[int64]featureSet, len(g.nodes)),
		edges:        make(map[int64]Edge, len(g.edges)),
		edgeFeatures: make(map[int64]featureSet, len(g.edgeFeatures)),
	}
	for id, fs := range g.nodes {
		c.nodes[id] = fs.clone()
	}
	for id, e := range g.edges {
		c.edges[id] = e
	}
	for id, fs := range g.edgeFeatures {
		c.edgeFeatures[id] = fs.clone()
	}
	return c
}
