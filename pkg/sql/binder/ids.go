// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package binder

import (
	"math"

	"github.com/cockroachdb/sqlbinder/pkg/sql/opt/cat"
)

// TableID identifies a table reference within a statement. For an unaliased
// base table it is the catalog id of the table; aliased and derived tables
// get an id from the plan's TableIDGenerator so that the same catalog table
// can be referenced several times.
type TableID uint64

// ColumnID identifies a column of a table reference. Base table columns use
// their catalog id. Columns of a derived table use the ordinal of the
// projection in the nested statement, offset by DerivedColumnIDBase.
type ColumnID uint64

// QueryID identifies a statement within a logical plan.
type QueryID uint64

// ExprID is an opaque handle to an expression owned by the plan builder.
type ExprID uint64

const (
	// InvalidTableID means "no table". It occupies bit index 0 of every
	// statement.
	InvalidTableID TableID = math.MaxUint64

	// InvalidColumnID means "no column".
	InvalidColumnID ColumnID = math.MaxUint64

	// InvalidQueryID means "no query".
	InvalidQueryID QueryID = math.MaxUint64

	// DerivedColumnIDBase is added to the projection ordinal of a nested
	// statement to form the column id of a derived table column. Catalog
	// column ids below this value are reserved for system columns, which
	// derived tables never expose.
	DerivedColumnIDBase ColumnID = 16

	// MinGeneratedTableID is the first table id handed out by LogicalPlan.
	// Catalog table ids are kept below it.
	MinGeneratedTableID = TableID(cat.MaxTableID) + 1
)

// SafeValue implements the redact.SafeValue interface.
func (TableID) SafeValue() {}

// SafeValue implements the redact.SafeValue interface.
func (ColumnID) SafeValue() {}

// SafeValue implements the redact.SafeValue interface.
func (QueryID) SafeValue() {}

// SafeValue implements the redact.SafeValue interface.
func (ExprID) SafeValue() {}
