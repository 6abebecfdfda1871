// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package binder

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlbinder/pkg/sql/opt/cat"
	"github.com/cockroachdb/sqlbinder/pkg/sql/types"
)

// checkTableColumn resolves columnName against a single table of the
// statement. Base and aliased tables are looked up in the catalog. Derived
// tables expose the projections of their nested statement, which must be
// fully bound; the projection with ordinal i has id i+DerivedColumnIDBase.
//
// An ErrUnknownColumn error means the table has no such column. Any other
// error means the table could not be inspected.
func checkTableColumn(
	ctx context.Context, catalog cat.Catalog, plan QueryLookup, table *TableItem, columnName string,
) (ColumnID, *types.T, error) {
	switch table.Type {
	case BaseTable, AliasTable:
		col, ok := catalog.LookupColumn(ctx, table.TableName, columnName)
		if !ok {
			return InvalidColumnID, nil, newUnknownColumnError(columnName)
		}
		return ColumnID(col.ID), col.Type, nil

	case GeneratedTable:
		queryID := table.QueryID()
		nested, ok := plan.Query(queryID)
		if !ok {
			return InvalidColumnID, nil, newUnknownQueryError(table.Name(), queryID)
		}
		if !nested.Finished() {
			return InvalidColumnID, nil, newUnfinishedQueryError(table.Name(), queryID)
		}
		ord := -1
		for i := range nested.selects {
			if nested.selects[i].Alias != columnName {
				continue
			}
			if ord != -1 {
				return InvalidColumnID, nil, newAmbiguousDerivedColumnError(table.Name(), columnName)
			}
			ord = i
		}
		if ord == -1 {
			return InvalidColumnID, nil, newUnknownColumnError(columnName)
		}
		return ColumnID(ord) + DerivedColumnIDBase, nested.selects[ord].Type, nil

	default:
		return InvalidColumnID, nil, errors.AssertionFailedf(
			"table %d has unknown type %d", table.TableID, table.Type)
	}
}
