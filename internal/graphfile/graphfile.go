// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

// Package graphfile reads and writes graph documents. A document is YAML,
// or JSON, which the YAML decoder also accepts.
package graphfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	saierr "github.com/sourcedestination/saidb/pkg/errors"
	"github.com/sourcedestination/saidb/pkg/graph"
)

// Document is the serialized form of one graph.
type Document struct {
	Features []graph.Feature `yaml:"features,omitempty" json:"features,omitempty"`
	Nodes    []Node          `yaml:"nodes" json:"nodes"`
	Edges    []Edge          `yaml:"edges,omitempty" json:"edges,omitempty"`
}

type Node struct {
	ID       int64           `yaml:"id" json:"id"`
	Features []graph.Feature `yaml:"features,omitempty" json:"features,omitempty"`
}

type Edge struct {
	ID       int64           `yaml:"id" json:"id"`
	From     int64           `yaml:"from" json:"from"`
	To       int64           `yaml:"to" json:"to"`
	Features []graph.Feature `yaml:"features,omitempty" json:"features,omitempty"`
}

// Format selects the encoding Encode writes.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts "yaml", "yml" and "json".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", saierr.Errorf(saierr.CodeGraphFileInvalidFormat, "unknown format %q (want yaml or json)", s)
	}
}

// FromGraph renders g as a Document with ids in ascending order.
func FromGraph(g graph.Graph) Document {
	doc := Document{
		Features: g.Features(),
		Nodes:    []Node{},
	}
	for _, id := range g.NodeIDs() {
		doc.Nodes = append(doc.Nodes, Node{ID: id, Features: g.NodeFeatures(id)})
	}
	for _, id := range g.EdgeIDs() {
		e, _ := g.Edge(id)
		doc.Edges = append(doc.Edges, Edge{ID: id, From: e.From, To: e.To, Features: g.EdgeFeatures(id)})
	}
	return doc
}

// Build turns d into a graph. Node ids must be unique; edge endpoints are
// not checked here.
func (d Document) Build() (*graph.Mutable, error) {
	g := graph.NewMutable()
	for _, f := range d.Features {
		g.AddFeature(f)
	}
	for _, n := range d.Nodes {
		if g.HasNode(n.ID) {
			return nil, saierr.New(saierr.CodeGraphFileInvalidFormat, "duplicate node id", saierr.FieldNodeID(n.ID))
		}
		g.AddNode(n.ID)
		for _, f := range n.Features {
			if err := g.AddNodeFeature(n.ID, f); err != nil {
				return nil, err
			}
		}
	}
	for _, e := range d.Edges {
		if err := g.AddEdge(e.ID, e.From, e.To); err != nil {
			return nil, err
		}
		for _, f := range e.Features {
			if err := g.AddEdgeFeature(e.ID, f); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// Decode reads a single document from data. Unknown keys are rejected.
func Decode(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, saierr.New(saierr.CodeGraphFileInvalidFormat, "empty document")
		}
		return Document{}, saierr.Errorf(saierr.CodeGraphFileInvalidFormat, "graph document parse: %s", err)
	}
	return doc, nil
}

// Parse decodes data and builds the graph it describes.
func Parse(data []byte) (*graph.Mutable, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// ReadFile parses the document stored at path.
func ReadFile(path string) (*graph.Mutable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, saierr.Wrap(err, saierr.CodeCLIInputInvalid, "reading graph document", saierr.Field("path", path))
	}
	g, err := Parse(data)
	if err != nil {
		return nil, saierr.With(err, saierr.Field("path", path))
	}
	return g, nil
}

// Encode writes g to w in the given format.
func Encode(w io.Writer, g graph.Graph, format Format) error {
	doc := FromGraph(g)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return saierr.Errorf(saierr.CodeGraphFileInvalidFormat, "unsupported format %q", format)
	}
}
