// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package binder

import (
	"context"

	"github.com/cockroachdb/sqlbinder/pkg/sql/opt/cat"
	"github.com/cockroachdb/sqlbinder/pkg/sql/types"
	"github.com/cockroachdb/sqlbinder/pkg/util/log"
)

// ColumnItem is a column referenced by a statement.
type ColumnItem struct {
	ColumnName string
	// TableID is the table the column was resolved against.
	TableID  TableID
	ColumnID ColumnID
	Type     *types.T
	// IsNameUnique is set when the column was referenced without a table
	// qualifier and resolved to a single table. Such a column also matches
	// lookups that are qualified with a different table.
	IsNameUnique bool
}

// AddColumnItem resolves a column reference and registers it in the
// statement. An empty tableName means the column is not qualified.
//
// A qualified reference is resolved against the named table only and is
// always appended, even if the same column was added before. An unqualified
// reference is resolved against every table of the statement and must match
// exactly one of them. If a column of the same name was added before, that
// entry is marked as unique and returned instead of appending a new one.
func (s *Statement) AddColumnItem(
	ctx context.Context, catalog cat.Catalog, plan PlanContext, columnName, tableName string,
) (*ColumnItem, error) {
	if err := s.checkPlan(catalog, plan, "AddColumnItem"); err != nil {
		return nil, err
	}
	ctx = s.annotateCtx(ctx)

	col := ColumnItem{ColumnName: columnName, TableID: InvalidTableID, ColumnID: InvalidColumnID}
	if tableName != "" {
		table, ok := s.TableItemByName(tableName)
		if !ok {
			return nil, logFailure(ctx, newUnknownTableError(tableName))
		}
		id, typ, err := checkTableColumn(ctx, catalog, plan, table, columnName)
		if err != nil {
			return nil, logFailure(ctx, err)
		}
		col.TableID, col.ColumnID, col.Type = table.TableID, id, typ
	} else {
		for i, n := 0, s.tables.len(); i < n; i++ {
			table := s.tables.get(i)
			id, typ, err := checkTableColumn(ctx, catalog, plan, table, columnName)
			if err != nil {
				if ErrorKind(err) == UnknownColumn {
					continue
				}
				return nil, logFailure(ctx, err)
			}
			if col.TableID != InvalidTableID {
				return nil, logFailure(ctx, newAmbiguousColumnError(columnName))
			}
			col.TableID, col.ColumnID, col.Type = table.TableID, id, typ
		}
		if col.TableID == InvalidTableID {
			return nil, logFailure(ctx, newUnknownColumnError(columnName))
		}
		col.IsNameUnique = true

		for i, n := 0, s.columns.len(); i < n; i++ {
			if existing := s.columns.get(i); existing.ColumnName == columnName {
				existing.IsNameUnique = true
				log.VEventf(ctx, 2, "column %s of table %d is now unique", columnName, existing.TableID)
				return existing, nil
			}
		}
	}

	var err error
	if col.ColumnName, err = s.arena.AllocString(ctx, columnName); err != nil {
		return nil, wrapAllocationError(err, "column name")
	}
	res := s.columns.append(col)
	log.VEventf(ctx, 2, "added column %s id=%d of table %d unique=%v",
		columnName, col.ColumnID, col.TableID, log.Safe(col.IsNameUnique))
	return res, nil
}

// ColumnItemByName returns the first column named columnName that is
// either unique or belongs to the table named tableName. With an empty
// tableName only unique columns match. A tableName that names no table of
// the statement matches nothing.
func (s *Statement) ColumnItemByName(columnName, tableName string) (*ColumnItem, bool) {
	tableID := InvalidTableID
	if tableName != "" {
		if tableID = s.TableIDByName(tableName); tableID == InvalidTableID {
			return nil, false
		}
	}
	for i, n := 0, s.columns.len(); i < n; i++ {
		col := s.columns.get(i)
		if col.ColumnName != columnName {
			continue
		}
		if col.IsNameUnique || (tableID != InvalidTableID && col.TableID == tableID) {
			return col, true
		}
	}
	return nil, false
}

// ColumnItemByID returns the first column with the given table and column
// ids.
func (s *Statement) ColumnItemByID(tableID TableID, columnID ColumnID) (*ColumnItem, bool) {
	for i, n := 0, s.columns.len(); i < n; i++ {
		if col := s.columns.get(i); col.TableID == tableID && col.ColumnID == columnID {
			return col, true
		}
	}
	return nil, false
}

// NumColumns returns the number of columns of the statement.
func (s *Statement) NumColumns() int {
	return s.columns.len()
}

// ColumnItem returns the column with the given ordinal. The pointer stays
// valid for the lifetime of the statement.
func (s *Statement) ColumnItem(i int) *ColumnItem {
	return s.columns.get(i)
}
