// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package store

import (
	"database/sql"
	"strconv"
	"strings"

	saierr "github.com/sourcedestination/saidb/pkg/errors"
)

// Row is one result row: an ordered mapping from column name to its value
// rendered as text. NULL is kept distinct from the empty string.
type Row struct {
	columns []string
	values  map[string]sql.NullString
}

// NewRow pairs columns with values. Extra values are ignored and missing
// ones read as NULL.
func NewRow(columns []string, values []sql.NullString) Row {
	r := Row{
		columns: columns,
		values:  make(map[string]sql.NullString, len(columns)),
	}
	for i, c := range columns {
		if i < len(values) {
			r.values[c] = values[i]
		}
	}
	return r
}

// Columns returns the column names in result order.
func (r Row) Columns() []string {
	return r.columns
}

// Value returns the column's text and false when it is NULL or absent.
func (r Row) Value(column string) (string, bool) {
	v, ok := r.values[column]
	if !ok || !v.Valid {
		return "", false
	}
	return v.String, true
}

func (r Row) IsNull(column string) bool {
	_, ok := r.Value(column)
	return !ok
}

// Int parses the column as a base-10 integer.
func (r Row) Int(column string) (int64, error) {
	s, ok := r.Value(column)
	if !ok {
		return 0, saierr.New(saierr.CodeStoreCorruptData, "null integer column",
			saierr.Field("column", column))
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, saierr.Wrap(err, saierr.CodeStoreCorruptData, "non-integer column",
			saierr.Field("column", column), saierr.Field("value", s))
	}
	return n, nil
}

// String renders the row as col=value pairs, NULL spelled out.
func (r Row) String() string {
	var b strings.Builder
	for i, c := range r.columns {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c)
		b.WriteByte('=')
		if v, ok := r.Value(c); ok {
			b.WriteString(strconv.Quote(v))
		} else {
			b.WriteString("NULL")
		}
	}
	return b.String()
}
