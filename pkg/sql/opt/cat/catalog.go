// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cat contains the interface the statement binder uses to look up
// schema objects. The catalog is the authoritative source of table and column
// definitions; the binder never caches its answers beyond a single statement.
package cat

import "context"

// StableID permanently and uniquely identifies a catalog object (table,
// column). It never changes as long as the object exists.
type StableID uint64

// MaxTableID is the largest table id a Catalog may return. Larger ids are
// reserved for the tables a plan builder creates while binding, such as
// aliased and derived tables.
const MaxTableID StableID = 1<<16 - 1

// Catalog answers the schema questions asked while binding a statement.
// Implementations must be safe for concurrent use by multiple binders.
type Catalog interface {
	// LookupTableID returns the id of the table with the given name. The id
	// is never above MaxTableID. The second return value is false if no such
	// table exists.
	LookupTableID(ctx context.Context, name string) (StableID, bool)

	// LookupColumn returns the definition of the named column of the named
	// table. The second return value is false if the table or the column does
	// not exist.
	LookupColumn(ctx context.Context, tableName, columnName string) (Column, bool)
}
