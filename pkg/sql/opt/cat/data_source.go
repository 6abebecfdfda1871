// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cat

import "github.com/cockroachdb/sqlbinder/pkg/sql/types"

// Column describes a single column of a table.
type Column struct {
	// ID is the catalog id of the column, unique within its table.
	ID StableID
	// Name is the column name.
	Name string
	// Type is the semantic type of the column values.
	Type *types.T
}

// DataSource is an interface to a database object that provides rows, like a
// table or a view.
type DataSource interface {
	// ID is the unique, stable identifier for this data source.
	ID() StableID

	// Name returns the unqualified name of the object.
	Name() string

	// ColumnCount returns the number of columns in the data source.
	ColumnCount() int

	// Column returns the column at the given ordinal position.
	Column(ord int) Column
}

// FindColumn returns the first column of ds with the given name.
func FindColumn(ds DataSource, name string) (Column, bool) {
	for i, n := 0, ds.ColumnCount(); i < n; i++ {
		if col := ds.Column(i); col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}
