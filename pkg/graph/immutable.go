// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package graph

// Compile-time interface check.
var _ Graph = (*Immutable)(nil)

// Immutable is a read-only graph. Its accessors return fresh slices, so
// callers cannot reach its internal state.
type Immutable struct {
	g *Mutable
}

// Freeze copies g into an Immutable. It satisfies Factory[*Immutable].
func Freeze(g *Mutable) *Immutable {
	return &Immutable{g: Clone(g)}
}

func (i *Immutable) NodeIDs() []int64                { return i.g.NodeIDs() }
func (i *Immutable) EdgeIDs() []int64                { return i.g.EdgeIDs() }
func (i *Immutable) HasNode(id int64) bool           { return i.g.HasNode(id) }
func (i *Immutable) Edge(id int64) (Edge, bool)      { return i.g.Edge(id) }
func (i *Immutable) Features() []Feature             { return i.g.Features() }
func (i *Immutable) NodeFeatures(id int64) []Feature { return i.g.NodeFeatures(id) }
func (i *Immutable) EdgeFeatures(id int64) []Feature { return i.g.EdgeFeatures(id) }

// Thaw returns a mutable copy of the graph.
func (i *Immutable) Thaw() *Mutable {
	return Clone(i.g)
}
