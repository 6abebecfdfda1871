// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package binder

import (
	"context"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/sqlbinder/pkg/sql/mon"
	"github.com/cockroachdb/sqlbinder/pkg/sql/opt/cat"
	"github.com/cockroachdb/sqlbinder/pkg/sql/types"
	"github.com/cockroachdb/sqlbinder/pkg/util/log"
	"github.com/cockroachdb/sqlbinder/pkg/util/stringarena"
)

// Statement holds the name resolution state of one query block: the tables
// of its FROM clause, the columns it references, its projections and the
// handles of its WHERE predicates.
//
// A Statement is populated by a single goroutine. Once Finish is called it
// becomes read-only and may be read concurrently, in particular by the
// statements that select from it as a derived table.
type Statement struct {
	id QueryID
	// finished is set once binding completes. Readers in other goroutines
	// must observe it before reading the rest of the statement.
	finished atomic.Bool

	tables   stableList[TableItem]
	columns  stableList[ColumnItem]
	selects  []SelectItem
	where    []ExprID
	bitIndex tableBitIndex

	// acc accounts for the memory of arena. Interned identifiers live until
	// the statement is closed.
	acc   mon.BoundAccount
	arena stringarena.Arena
}

// SelectItem is one projection of a statement. When the statement is used
// as a derived table, the projections are the columns of that table.
type SelectItem struct {
	Alias string
	Expr  ExprID
	Type  *types.T
}

// NewStatement creates an empty statement whose identifiers are accounted
// against acc. The statement takes ownership of the account.
func NewStatement(id QueryID, acc mon.BoundAccount) *Statement {
	s := &Statement{
		id:       id,
		acc:      acc,
		bitIndex: makeTableBitIndex(),
	}
	s.arena = stringarena.Make(&s.acc)
	return s
}

// ID returns the id of the statement within its plan.
func (s *Statement) ID() QueryID {
	return s.id
}

// Finish marks the statement as fully bound. Afterwards it can no longer be
// modified.
func (s *Statement) Finish() {
	s.finished.Store(true)
}

// Finished returns true if Finish was called.
func (s *Statement) Finished() bool {
	return s.finished.Load()
}

// MemoryUsage returns the number of bytes reserved for the statement's
// identifiers.
func (s *Statement) MemoryUsage() int64 {
	return s.acc.Used()
}

// Close releases the memory reserved by the statement.
func (s *Statement) Close(ctx context.Context) {
	s.arena.UnsafeReset(ctx)
	s.acc.Close(ctx)
}

// AddSelectItem appends a projection to the statement.
func (s *Statement) AddSelectItem(
	ctx context.Context, alias string, expr ExprID, typ *types.T,
) error {
	if err := s.checkMutable(); err != nil {
		return err
	}
	if typ == nil {
		typ = types.Unknown
	}
	alias, err := s.arena.AllocString(ctx, alias)
	if err != nil {
		return wrapAllocationError(err, "projection alias")
	}
	s.selects = append(s.selects, SelectItem{Alias: alias, Expr: expr, Type: typ})
	return nil
}

// NumSelectItems returns the number of projections of the statement.
func (s *Statement) NumSelectItems() int {
	return len(s.selects)
}

// SelectItem returns the projection with the given ordinal.
func (s *Statement) SelectItem(i int) SelectItem {
	return s.selects[i]
}

// AddWhereExpr appends a predicate handle to the statement.
func (s *Statement) AddWhereExpr(expr ExprID) error {
	if err := s.checkMutable(); err != nil {
		return err
	}
	s.where = append(s.where, expr)
	return nil
}

// NumWhereExprs returns the number of predicates of the statement.
func (s *Statement) NumWhereExprs() int {
	return len(s.where)
}

// WhereExpr returns the predicate handle with the given ordinal.
func (s *Statement) WhereExpr(i int) ExprID {
	return s.where[i]
}

func (s *Statement) checkMutable() error {
	if s.finished.Load() {
		return errors.AssertionFailedWithDepthf(1, "query %d is already bound", s.id)
	}
	return nil
}

// annotateCtx adds the statement's log tag to ctx.
func (s *Statement) annotateCtx(ctx context.Context) context.Context {
	return logtags.AddTag(ctx, "q", s.id)
}

func (s *Statement) checkPlan(catalog cat.Catalog, plan PlanContext, op string) error {
	if plan == nil {
		return newPlanContextMissingError(op)
	}
	if catalog == nil {
		return newSchemaUnavailableError(op)
	}
	return s.checkMutable()
}

// logFailure records a resolution error at verbosity 1 and returns it.
func logFailure(ctx context.Context, err error) error {
	log.VEventf(ctx, 1, "%v", err)
	return err
}
