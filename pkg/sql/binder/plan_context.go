// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package binder

// TableIDGenerator hands out table ids for aliased and derived tables. The
// ids are unique within the plan and never collide with catalog table ids.
type TableIDGenerator interface {
	GenerateTableID() TableID
}

// QueryLookup finds the statements of a plan by id. Derived tables read the
// projections of the statement they refer to through it.
type QueryLookup interface {
	Query(id QueryID) (*Statement, bool)
}

// PlanContext is the part of the plan builder the binder depends on.
type PlanContext interface {
	TableIDGenerator
	QueryLookup
}
