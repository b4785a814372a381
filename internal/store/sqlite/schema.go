// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package sqlite

// Same tables and columns as the MySQL backend. Index names are global in
// SQLite, so each carries its table name.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS graph_instances (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	nodes    INTEGER NOT NULL,
	edges    INTEGER NOT NULL,
	features INTEGER NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS node_instances (
	id       INTEGER NOT NULL,
	graph_id INTEGER NOT NULL,
	features INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS node_instances_id ON node_instances(id, graph_id)`,
	`CREATE INDEX IF NOT EXISTS node_instances_graph_id ON node_instances(graph_id, id)`,
	`CREATE TABLE IF NOT EXISTS edge_instances (
	id           INTEGER NOT NULL,
	graph_id     INTEGER NOT NULL,
	from_node_id INTEGER NOT NULL,
	to_node_id   INTEGER NOT NULL,
	features     INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS edge_instances_id ON edge_instances(id, graph_id)`,
	`CREATE INDEX IF NOT EXISTS edge_instances_graph_id ON edge_instances(graph_id, from_node_id, to_node_id)`,
	`CREATE INDEX IF NOT EXISTS edge_instances_from_node_id ON edge_instances(graph_id, from_node_id)`,
	`CREATE INDEX IF NOT EXISTS edge_instances_to_node_id ON edge_instances(graph_id, to_node_id)`,
	`CREATE TABLE IF NOT EXISTS node_features (
	graph_id      INTEGER NOT NULL,
	node_id       INTEGER NOT NULL,
	feature_name  VARCHAR(256) NOT NULL,
	feature_value VARCHAR(256) NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS node_features_node_id ON node_features(graph_id, node_id)`,
	`CREATE INDEX IF NOT EXISTS node_features_feature_id ON node_features(feature_name, feature_value)`,
	`CREATE TABLE IF NOT EXISTS graph_features (
	graph_id      INTEGER NOT NULL,
	feature_name  VARCHAR(256) NOT NULL,
	feature_value VARCHAR(256) NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS graph_features_graph_id ON graph_features(graph_id)`,
	`CREATE INDEX IF NOT EXISTS graph_features_feature_id ON graph_features(feature_name, feature_value)`,
	`CREATE TABLE IF NOT EXISTS edge_features (
	graph_id      INTEGER NOT NULL,
	edge_id       INTEGER NOT NULL,
	feature_name  VARCHAR(256) NOT NULL,
	feature_value VARCHAR(256) NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS edge_features_edge_id ON edge_features(graph_id, edge_id)`,
	`CREATE INDEX IF NOT EXISTS edge_features_feature_id ON edge_features(feature_name, feature_value)`,
}

var dropStatements = []string{
	`DROP TABLE IF EXISTS graph_instances`,
	`DROP TABLE IF EXISTS node_instances`,
	`DROP TABLE IF EXISTS edge_instances`,
	`DROP TABLE IF EXISTS node_features`,
	`DROP TABLE IF EXISTS graph_features`,
	`DROP TABLE IF EXISTS edge_features`,
}

// Schema is the ordered DDL run by InitializeDatabase.
var Schema = append(append([]string{}, dropStatements...), createStatements...)
