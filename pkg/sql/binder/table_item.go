// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package binder

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlbinder/pkg/sql/opt/cat"
	"github.com/cockroachdb/sqlbinder/pkg/util/log"
)

// TableType is the kind of a table reference.
type TableType int8

const (
	// BaseTable is a catalog table referenced by its name.
	BaseTable TableType = iota
	// AliasTable is a catalog table referenced through an alias.
	AliasTable
	// GeneratedTable is a derived table whose rows are produced by a nested
	// statement.
	GeneratedTable
)

var tableTypeNames = [...]string{
	BaseTable:      "base",
	AliasTable:     "alias",
	GeneratedTable: "generated",
}

func (t TableType) String() string {
	if t < 0 || int(t) >= len(tableTypeNames) {
		return "unknown"
	}
	return tableTypeNames[t]
}

// SafeValue implements the redact.SafeValue interface.
func (TableType) SafeValue() {}

// TableItem is one entry of the FROM clause of a statement.
type TableItem struct {
	// TableID identifies the reference within the statement.
	TableID TableID
	// RefID is the catalog id of a base or aliased table, or the QueryID of
	// the nested statement of a derived table.
	RefID uint64
	// TableName is never empty. For derived tables it is the name the
	// derived table is known by.
	TableName string
	// AliasName is empty if no alias was given.
	AliasName string
	Type      TableType
}

// Name returns the alias of the table if it has one, or else its name.
func (ti *TableItem) Name() string {
	if ti.AliasName != "" {
		return ti.AliasName
	}
	return ti.TableName
}

// QueryID returns the id of the nested statement of a derived table, or
// InvalidQueryID for other tables.
func (ti *TableItem) QueryID() QueryID {
	if ti.Type != GeneratedTable {
		return InvalidQueryID
	}
	return QueryID(ti.RefID)
}

// matchesName returns true if name is the table name or the alias of the
// table.
func (ti *TableItem) matchesName(name string) bool {
	return name == ti.TableName || (ti.AliasName != "" && name == ti.AliasName)
}

// AddTableItem registers a table reference in the statement and returns its
// table id. refID is only used for GeneratedTable and is the id of the
// nested statement producing the rows of the derived table. An AliasTable
// requires a non-empty alias.
//
// The new reference must not be confused with any registered one. When the
// new table has no alias, neither its name may match an existing table
// name or alias. When only the new table has an alias, its name and alias
// must both differ from the name of every unaliased table. When both have
// aliases, the new name must differ from the existing alias and the new
// alias from both existing identifiers; equal table names are allowed,
// which is what lets a table be joined with itself under two aliases.
func (s *Statement) AddTableItem(
	ctx context.Context,
	catalog cat.Catalog,
	plan PlanContext,
	typ TableType,
	tableName, aliasName string,
	refID QueryID,
) (TableID, error) {
	if err := s.checkPlan(catalog, plan, "AddTableItem"); err != nil {
		return InvalidTableID, err
	}
	ctx = s.annotateCtx(ctx)
	if tableName == "" {
		return InvalidTableID, errors.AssertionFailedf("table name must not be empty")
	}

	item := TableItem{Type: typ, TableID: InvalidTableID}
	switch typ {
	case AliasTable:
		if aliasName == "" {
			return InvalidTableID, errors.AssertionFailedf("aliased table %s has an empty alias", tableName)
		}
		if tableName == aliasName {
			return InvalidTableID, logFailure(ctx, newIllegalAliasError(tableName))
		}
		fallthrough
	case BaseTable:
		catalogID, ok := catalog.LookupTableID(ctx, tableName)
		if !ok {
			return InvalidTableID, logFailure(ctx, newUnknownTableError(tableName))
		}
		if catalogID > cat.MaxTableID {
			return InvalidTableID, logFailure(ctx, errors.AssertionFailedf(
				"catalog returned id %d for table %s, above the maximum catalog table id %d",
				catalogID, tableName, cat.MaxTableID))
		}
		item.RefID = uint64(catalogID)
		if typ == BaseTable {
			item.TableID = TableID(catalogID)
		}
	case GeneratedTable:
		if refID == InvalidQueryID {
			return InvalidTableID, logFailure(ctx, newInvalidRefIDError())
		}
		item.RefID = uint64(refID)
	default:
		return InvalidTableID, errors.AssertionFailedf("unknown table type %d", typ)
	}

	if name, ok := s.findAmbiguousTable(tableName, aliasName); ok {
		return InvalidTableID, logFailure(ctx, newAmbiguousTableError(name))
	}
	if item.TableID != InvalidTableID {
		if _, ok := s.bitIndex.lookup(item.TableID); ok {
			return InvalidTableID, errors.AssertionFailedf(
				"table %d is already registered in query %d", item.TableID, s.id)
		}
	}

	// The name and alias share one allocation, so a failure leaves nothing
	// charged to the statement.
	names, err := s.arena.AllocString(ctx, tableName+aliasName)
	if err != nil {
		return InvalidTableID, wrapAllocationError(err, "table name")
	}
	item.TableName, item.AliasName = names[:len(tableName)], names[len(tableName):]

	if item.TableID == InvalidTableID {
		item.TableID = plan.GenerateTableID()
	}
	bit, err := s.bitIndex.assign(item.TableID)
	if err != nil {
		return InvalidTableID, err
	}
	s.tables.append(item)

	if log.V(2) {
		log.VEventf(ctx, 2, "added %s table %s (alias %s) id=%d ref=%d bit=%d",
			typ, tableName, aliasName, item.TableID, log.Safe(item.RefID), bit)
	}
	return item.TableID, nil
}

// findAmbiguousTable checks a new table name and alias against the
// registered tables, in registration order. It returns the identifier that
// collides with the first conflicting table.
func (s *Statement) findAmbiguousTable(tableName, aliasName string) (string, bool) {
	for i, n := 0, s.tables.len(); i < n; i++ {
		old := s.tables.get(i)
		switch {
		case aliasName == "":
			if tableName == old.TableName || tableName == old.AliasName {
				return tableName, true
			}
		case old.AliasName == "":
			if tableName == old.TableName || aliasName == old.TableName {
				return old.TableName, true
			}
		default:
			if tableName == old.AliasName {
				return tableName, true
			}
			if aliasName == old.TableName || aliasName == old.AliasName {
				return aliasName, true
			}
		}
	}
	return "", false
}

// TableIDByName returns the id of the first table whose name or alias is
// name, or InvalidTableID if there is none.
func (s *Statement) TableIDByName(name string) TableID {
	if item, ok := s.TableItemByName(name); ok {
		return item.TableID
	}
	return InvalidTableID
}

// TableItemByName returns the first table whose name or alias is name.
func (s *Statement) TableItemByName(name string) (*TableItem, bool) {
	for i, n := 0, s.tables.len(); i < n; i++ {
		if item := s.tables.get(i); item.matchesName(name) {
			return item, true
		}
	}
	return nil, false
}

// TableItemByID returns the table with the given id.
func (s *Statement) TableItemByID(id TableID) (*TableItem, bool) {
	for i, n := 0, s.tables.len(); i < n; i++ {
		if item := s.tables.get(i); item.TableID == id {
			return item, true
		}
	}
	return nil, false
}

// NumTables returns the number of tables of the statement.
func (s *Statement) NumTables() int {
	return s.tables.len()
}

// TableItem returns the table with the given ordinal. The pointer stays
// valid for the lifetime of the statement.
func (s *Statement) TableItem(i int) *TableItem {
	return s.tables.get(i)
}
