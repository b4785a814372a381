// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package sqlstore_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcedestination/saidb/internal/store/sqlstore"
	saierr "github.com/sourcedestination/saidb/pkg/errors"
)

var errGone = errors.New("server gone")

func testDialect() sqlstore.Dialect {
	return sqlstore.Dialect{
		Name:        "test",
		Schema:      []string{"CREATE TABLE a (x INT)", "CREATE TABLE b (y INT)"},
		IsConnError: func(err error) bool { return errors.Is(err, errGone) },
	}
}

func newMock(t *testing.T) (*sqlstore.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	s := sqlstore.New(db, testDialect(), sqlstore.Options{})
	t.Cleanup(func() { _ = s.Close() })
	return s, mock
}

func TestNew_Defaults(t *testing.T) {
	s, _ := newMock(t)
	assert.Equal(t, "test", s.Backend())
	assert.NotNil(t, s.DB())
	assert.Zero(t, s.Stats().TotalQueries)
}

func TestInitializeDatabase_StopsAtFirstFailure(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a")).WillReturnError(errors.New("permission denied"))

	err := s.InitializeDatabase(context.Background())
	require.Error(t, err)
	assert.True(t, saierr.IsQueryExecution(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery_ClassifiesThroughDialect(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery("SELECT 1").WillReturnError(errGone)
	mock.ExpectExec("UPDATE x").WillReturnError(errors.New("syntax error"))

	_, err := s.Query(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.True(t, saierr.IsConnection(err))
	assert.Equal(t, "test", saierr.FieldsOf(err)["backend"])

	_, err = s.Exec(context.Background(), "UPDATE x SET y = ?", 1)
	require.Error(t, err)
	assert.True(t, saierr.IsQueryExecution(err))
	assert.Equal(t, "UPDATE x SET y = ?", saierr.FieldsOf(err)["query"])

	stats := s.Stats()
	assert.Equal(t, int64(1), stats.TotalQueries)
	assert.Equal(t, int64(1), stats.TotalExecs)
	assert.Equal(t, int64(2), stats.Errors)
}

func TestQuery_ScanFailureIsReported(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery("SELECT id").WillReturnRows(
		sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)).RowError(1, errors.New("stream broken")))

	rows, err := s.Query(context.Background(), "SELECT id FROM t")
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.True(t, saierr.IsQueryExecution(err))
}

func TestCommitFailureIsReported(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM graph_instances").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("FROM graph_features").WillReturnRows(sqlmock.NewRows([]string{"feature_name", "feature_value"}))
	mock.ExpectQuery("FROM node_instances").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("FROM node_features").WillReturnRows(sqlmock.NewRows([]string{"node_id", "feature_name", "feature_value"}))
	mock.ExpectQuery("FROM edge_instances").WillReturnRows(sqlmock.NewRows([]string{"id", "from_node_id", "to_node_id"}))
	mock.ExpectQuery("FROM edge_features").WillReturnRows(sqlmock.NewRows([]string{"edge_id", "feature_name", "feature_value"}))
	mock.ExpectCommit().WillReturnError(errGone)

	_, err := s.GetGraph(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, saierr.IsConnection(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
