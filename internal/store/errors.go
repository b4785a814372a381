// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package store

import (
	saierr "github.com/sourcedestination/saidb/pkg/errors"
)

// Table names shared by every backend.
const (
	TableGraphInstances = "graph_instances"
	TableNodeInstances  = "node_instances"
	TableEdgeInstances  = "edge_instances"
	TableGraphFeatures  = "graph_features"
	TableNodeFeatures   = "node_features"
	TableEdgeFeatures   = "edge_features"
)

// GraphNotFound reports a read of a graph id with no graph_instances row.
func GraphNotFound(id int64) error {
	return saierr.New(saierr.CodeStoreGraphGetNotFound, "graph not found", saierr.FieldGraphID(id))
}

// DeleteNotFound reports a delete of a graph id with no graph_instances row.
func DeleteNotFound(id int64) error {
	return saierr.New(saierr.CodeStoreGraphDeleteNotFound, "graph not found", saierr.FieldGraphID(id))
}

// InvalidGraph rejects a graph before anything is written.
func InvalidGraph(msg string, fields ...saierr.Attr) error {
	return saierr.New(saierr.CodeStoreGraphInvalidInput, msg, fields...)
}

// DanglingEdge rejects a graph whose edge points outside its node set.
func DanglingEdge(edgeID, nodeID int64) error {
	return saierr.New(saierr.CodeStoreGraphReferentialIntegrity, "edge endpoint is not a node of the graph",
		saierr.FieldEdgeID(edgeID), saierr.FieldNodeID(nodeID))
}

// CorruptRow reports a stored row that cannot be turned back into a graph.
// cause may be nil.
func CorruptRow(table string, graphID int64, row Row, cause error) error {
	fields := []saierr.Attr{
		saierr.FieldTable(table),
		saierr.FieldGraphID(graphID),
		saierr.Field("row", row.String()),
	}
	if cause == nil {
		return saierr.New(saierr.CodeStoreCorruptData, "corrupt row", fields...)
	}
	// The innermost code wins, so a cause coded as anything else is kept as
	// text only.
	if code := saierr.CodeOf(cause); code != "" && code != saierr.CodeStoreCorruptData {
		fields = append(fields, saierr.Field("cause", cause.Error()))
		return saierr.New(saierr.CodeStoreCorruptData, "corrupt row", fields...)
	}
	return saierr.Wrap(cause, saierr.CodeStoreCorruptData, "corrupt row", fields...)
}

// QueryFailure wraps a driver error for a statement the store rejected.
func QueryFailure(err error, query string) error {
	return saierr.Wrap(err, saierr.CodeStoreQueryFailure, "executing statement", saierr.Field("query", query))
}

// ConnectionFailure wraps a transport error.
func ConnectionFailure(err error, backend string) error {
	return saierr.Wrap(err, saierr.CodeStoreConnectionFailure, "store unreachable", saierr.FieldBackend(backend))
}
