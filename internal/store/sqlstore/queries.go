// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package sqlstore

// Statements shared by every backend. Table and column names are fixed
// across backends, so only DDL lives in the dialects.
const (
	insertGraph        = `INSERT INTO graph_instances (nodes, edges, features) VALUES (?, ?, ?)`
	insertGraphFeature = `INSERT INTO graph_features (graph_id, feature_name, feature_value) VALUES (?, ?, ?)`
	insertNode         = `INSERT INTO node_instances (id, graph_id, features) VALUES (?, ?, ?)`
	insertNodeFeature  = `INSERT INTO node_features (graph_id, node_id, feature_name, feature_value) VALUES (?, ?, ?, ?)`
	insertEdge         = `INSERT INTO edge_instances (id, graph_id, from_node_id, to_node_id, features) VALUES (?, ?, ?, ?, ?)`
	insertEdgeFeature  = `INSERT INTO edge_features (graph_id, edge_id, feature_name, feature_value) VALUES (?, ?, ?, ?)`

	selectGraph         = `SELECT id FROM graph_instances WHERE id = ?`
	selectGraphFeatures = `SELECT feature_name, feature_value FROM graph_features WHERE graph_id = ?`
	selectNodes         = `SELECT id FROM node_instances WHERE graph_id = ? ORDER BY id`
	selectNodeFeatures  = `SELECT node_id, feature_name, feature_value FROM node_features WHERE graph_id = ?`
	selectEdges         = `SELECT id, from_node_id, to_node_id FROM edge_instances WHERE graph_id = ? ORDER BY id`
	selectEdgeFeatures  = `SELECT edge_id, feature_name, feature_value FROM edge_features WHERE graph_id = ?`

	deleteEdgeFeatures  = `DELETE FROM edge_features WHERE graph_id = ?`
	deleteNodeFeatures  = `DELETE FROM node_features WHERE graph_id = ?`
	deleteEdges         = `DELETE FROM edge_instances WHERE graph_id = ?`
	deleteNodes         = `DELETE FROM node_instances WHERE graph_id = ?`
	deleteGraphFeatures = `DELETE FROM graph_features WHERE graph_id = ?`
	deleteGraph         = `DELETE FROM graph_instances WHERE id = ?`

	selectGraphIDsAfter = `SELECT id FROM graph_instances WHERE id > ? ORDER BY id LIMIT ?`

	countGraphs = `SELECT COUNT(*) AS total FROM graph_instances`
	countNodes  = `SELECT COUNT(*) AS total FROM node_instances n JOIN graph_instances g ON g.id = n.graph_id`
	countEdges  = `SELECT COUNT(*) AS total FROM edge_instances e JOIN graph_instances g ON g.id = e.graph_id`

	searchGraphFeaturesByName = `SELECT DISTINCT f.graph_id FROM graph_features f JOIN graph_instances g ON g.id = f.graph_id WHERE f.feature_name = ?`
	searchNodeFeaturesByName  = `SELECT DISTINCT f.graph_id FROM node_features f JOIN graph_instances g ON g.id = f.graph_id WHERE f.feature_name = ?`
	searchEdgeFeaturesByName  = `SELECT DISTINCT f.graph_id FROM edge_features f JOIN graph_instances g ON g.id = f.graph_id WHERE f.feature_name = ?`

	searchGraphFeatures = searchGraphFeaturesByName + ` AND f.feature_value = ?`
	searchNodeFeatures  = searchNodeFeaturesByName + ` AND f.feature_value = ?`
	searchEdgeFeatures  = searchEdgeFeaturesByName + ` AND f.feature_value = ?`
)
