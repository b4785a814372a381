// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package mysql

// InnoDB rather than MyISAM: graph writes and deletes rely on transactions.
// Feature columns are varbinary so search compares bytes exactly, with no
// case folding, accent folding or trailing-space padding.
const (
	createGraphInstances = `CREATE TABLE graph_instances (
  id bigint NOT NULL AUTO_INCREMENT,
  nodes int NOT NULL COMMENT 'number of nodes',
  edges int NOT NULL COMMENT 'number of edges',
  features int NOT NULL COMMENT 'number of associated features',
  PRIMARY KEY (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin COMMENT='instances of graphs'`

	createNodeInstances = `CREATE TABLE node_instances (
  id bigint NOT NULL COMMENT 'unique within a graph, not globally unique',
  graph_id bigint NOT NULL COMMENT 'foreign key (graph_instances->id)',
  features int NOT NULL COMMENT 'number of associated features',
  KEY id (id, graph_id),
  KEY graph_id (graph_id, id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin COMMENT='instance of a node in a graph instance'`

	createEdgeInstances = `CREATE TABLE edge_instances (
  id bigint NOT NULL COMMENT 'unique within a graph, not globally unique',
  graph_id bigint NOT NULL COMMENT 'foreign key (graph_instances->id)',
  from_node_id bigint NOT NULL COMMENT 'output node id (node_instances->id)',
  to_node_id bigint NOT NULL COMMENT 'input node id (node_instances->id)',
  features int NOT NULL COMMENT 'number of associated features',
  KEY id (id, graph_id),
  KEY graph_id (graph_id, from_node_id, to_node_id),
  KEY from_node_id (graph_id, from_node_id),
  KEY to_node_id (graph_id, to_node_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin COMMENT='edge between two nodes'`

	createNodeFeatures = `CREATE TABLE node_features (
  graph_id bigint NOT NULL COMMENT 'tagged graph (graph_instances->id)',
  node_id bigint NOT NULL COMMENT 'tagged node (node_instances->id)',
  feature_name varbinary(256) NOT NULL,
  feature_value varbinary(256) NOT NULL,
  KEY node_id (graph_id, node_id),
  KEY feature_id (feature_name, feature_value)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin COMMENT='associates tags to nodes'`

	createGraphFeatures = `CREATE TABLE graph_features (
  graph_id bigint NOT NULL COMMENT 'tagged graph (graph_instances->id)',
  feature_name varbinary(256) NOT NULL,
  feature_value varbinary(256) NOT NULL,
  KEY graph_id (graph_id),
  KEY feature_id (feature_name, feature_value)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin COMMENT='associates tags to graphs'`

	createEdgeFeatures = `CREATE TABLE edge_features (
  graph_id bigint NOT NULL COMMENT 'tagged graph (graph_instances->id)',
  edge_id bigint NOT NULL COMMENT 'tagged edge (edge_instances->id)',
  feature_name varbinary(256) NOT NULL,
  feature_value varbinary(256) NOT NULL,
  KEY edge_id (graph_id, edge_id),
  KEY feature_id (feature_name, feature_value)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin COMMENT='associates tags to edges'`
)

// Schema is the ordered DDL run by InitializeDatabase.
var Schema = []string{
	`DROP TABLE IF EXISTS graph_instances`,
	createGraphInstances,
	`DROP TABLE IF EXISTS node_instances`,
	createNodeInstances,
	`DROP TABLE IF EXISTS edge_instances`,
	createEdgeInstances,
	`DROP TABLE IF EXISTS node_features`,
	createNodeFeatures,
	`DROP TABLE IF EXISTS graph_features`,
	createGraphFeatures,
	`DROP TABLE IF EXISTS edge_features`,
	createEdgeFeatures,
}
