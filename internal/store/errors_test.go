// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package store_test

import (
	"database/sql"
	stderrors "errors"
	"testing"

	"github.com/sourcedestination/saidb/internal/store"
	saierr "github.com/sourcedestination/saidb/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// TestStoreErrors_Classification verifies each constructor carries the code
// its predicate looks for.
func TestStoreErrors_Classification(t *testing.T) {
	row := store.NewRow([]string{"id"}, []sql.NullString{{String: "x", Valid: true}})
	cause := stderrors.New("driver: bad connection")

	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"get not found", store.GraphNotFound(4), saierr.IsNotFound},
		{"delete not found", store.DeleteNotFound(4), saierr.IsNotFound},
		{"invalid graph", store.InvalidGraph("feature too long"), saierr.IsInvalidInput},
		{"dangling edge", store.DanglingEdge(1, 9), saierr.IsReferentialIntegrity},
		{"corrupt row", store.CorruptRow(store.TableNodeInstances, 4, row, nil), saierr.IsCorruptData},
		{"corrupt row with cause", store.CorruptRow(store.TableNodeInstances, 4, row, cause), saierr.IsCorruptData},
		{"query failure", store.QueryFailure(cause, "SELECT 1"), saierr.IsQueryExecution},
		{"connection failure", store.ConnectionFailure(cause, "mysql"), saierr.IsConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
		})
	}
}

func TestStoreErrors_NotFoundCodesDiffer(t *testing.T) {
	assert.Equal(t, saierr.CodeStoreGraphGetNotFound, saierr.CodeOf(store.GraphNotFound(1)))
	assert.Equal(t, saierr.CodeStoreGraphDeleteNotFound, saierr.CodeOf(store.DeleteNotFound(1)))
}

func TestStoreErrors_Fields(t *testing.T) {
	row := store.NewRow([]string{"id", "graph_id"}, []sql.NullString{{String: "a", Valid: true}, {}})
	err := store.CorruptRow(store.TableEdgeInstances, 12, row, nil)

	fields := saierr.FieldsOf(err)
	assert.Equal(t, "edge_instances", fields["table"])
	assert.Equal(t, int64(12), fields["graph_id"])
	assert.Equal(t, `id="a" graph_id=NULL`, fields["row"])

	err = store.DanglingEdge(3, 99)
	fields = saierr.FieldsOf(err)
	assert.Equal(t, int64(3), fields["edge_id"])
	assert.Equal(t, int64(99), fields["node_id"])
}

func TestStoreErrors_WrapKeepsCause(t *testing.T) {
	cause := stderrors.New("Error 1146: Table 'sai.graph_instances' doesn't exist")
	err := store.QueryFailure(cause, "SELECT id FROM graph_instances")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "SELECT id FROM graph_instances", saierr.FieldsOf(err)["query"])
}

func TestStoreErrors_CorruptRowOutranksCauseCode(t *testing.T) {
	row := store.NewRow([]string{"id"}, []sql.NullString{{String: "3", Valid: true}})
	cause := saierr.New(saierr.CodeGraphBuildInvalid, "duplicate edge id")

	err := store.CorruptRow(store.TableEdgeInstances, 1, row, cause)

	assert.True(t, saierr.IsCorruptData(err))
	assert.False(t, saierr.IsInvalidInput(err))
	assert.Contains(t, saierr.FieldsOf(err)["cause"], "duplicate edge id")
}
