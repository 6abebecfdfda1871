// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package binder

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlbinder/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlbinder/pkg/sql/pgwire/pgerror"
)

// Kind classifies the errors returned by the binder.
type Kind int

const (
	// NoError is the kind of a nil error.
	NoError Kind = iota
	// Unclassified is the kind of an error that did not originate in the
	// binder, e.g. one returned by a catalog implementation.
	Unclassified
	// PlanContextMissing means no plan context was passed to an operation
	// that needs one.
	PlanContextMissing
	// SchemaUnavailable means no catalog was passed to an operation that
	// needs one.
	SchemaUnavailable
	// IllegalAlias means a table was aliased to its own name.
	IllegalAlias
	// UnknownTable means a table name could not be resolved.
	UnknownTable
	// AmbiguousTable means a table name or alias collides with one that is
	// already registered in the statement.
	AmbiguousTable
	// IllegalReference means a derived table refers to a query that does not
	// exist or is not fully bound.
	IllegalReference
	// UnknownColumn means a column name could not be resolved.
	UnknownColumn
	// AmbiguousColumn means a column name resolves to more than one column.
	AmbiguousColumn
	// AllocationFailed means the statement ran out of memory budget.
	AllocationFailed
	// InternalInconsistency means an invariant of the binder was violated.
	InternalInconsistency
)

var kindNames = [...]string{
	NoError:               "NoError",
	Unclassified:          "Unclassified",
	PlanContextMissing:    "PlanContextMissing",
	SchemaUnavailable:     "SchemaUnavailable",
	IllegalAlias:          "IllegalAlias",
	UnknownTable:          "UnknownTable",
	AmbiguousTable:        "AmbiguousTable",
	IllegalReference:      "IllegalReference",
	UnknownColumn:         "UnknownColumn",
	AmbiguousColumn:       "AmbiguousColumn",
	AllocationFailed:      "AllocationFailed",
	InternalInconsistency: "InternalInconsistency",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unclassified"
	}
	return kindNames[k]
}

// SafeValue implements the redact.SafeValue interface.
func (Kind) SafeValue() {}

// Marker errors. Every error returned by the binder is marked with the
// sentinel of its kind, so callers can use errors.Is.
var (
	ErrPlanContextMissing = errors.New("plan context missing")
	ErrSchemaUnavailable  = errors.New("schema unavailable")
	ErrIllegalAlias       = errors.New("illegal alias")
	ErrUnknownTable       = errors.New("unknown table")
	ErrAmbiguousTable     = errors.New("ambiguous table")
	ErrIllegalReference   = errors.New("illegal reference")
	ErrUnknownColumn      = errors.New("unknown column")
	ErrAmbiguousColumn    = errors.New("ambiguous column")
	ErrAllocationFailed   = errors.New("allocation failed")
)

var kindMarkers = []struct {
	kind   Kind
	marker error
}{
	{PlanContextMissing, ErrPlanContextMissing},
	{SchemaUnavailable, ErrSchemaUnavailable},
	{IllegalAlias, ErrIllegalAlias},
	{UnknownTable, ErrUnknownTable},
	{AmbiguousTable, ErrAmbiguousTable},
	{IllegalReference, ErrIllegalReference},
	{UnknownColumn, ErrUnknownColumn},
	{AmbiguousColumn, ErrAmbiguousColumn},
	{AllocationFailed, ErrAllocationFailed},
}

// ErrorKind returns the kind of err. Assertion failures that carry no other
// marker are InternalInconsistency.
func ErrorKind(err error) Kind {
	if err == nil {
		return NoError
	}
	for _, m := range kindMarkers {
		if errors.Is(err, m.marker) {
			return m.kind
		}
	}
	if errors.HasAssertionFailure(err) {
		return InternalInconsistency
	}
	return Unclassified
}

func newPlanContextMissingError(op string) error {
	return errors.Mark(
		errors.AssertionFailedWithDepthf(1, "%s: plan context must be set", errors.Safe(op)),
		ErrPlanContextMissing,
	)
}

func newSchemaUnavailableError(op string) error {
	return errors.Mark(
		errors.AssertionFailedWithDepthf(1, "%s: catalog must be set", errors.Safe(op)),
		ErrSchemaUnavailable,
	)
}

func newIllegalAliasError(tableName string) error {
	return errors.Mark(
		pgerror.Newf(pgcode.InvalidName, "%s must not be aliased to its own name", tableName),
		ErrIllegalAlias,
	)
}

func newUnknownTableError(tableName string) error {
	return errors.Mark(
		pgerror.Newf(pgcode.UndefinedTable, "relation %q does not exist", tableName),
		ErrUnknownTable,
	)
}

func newAmbiguousTableError(name string) error {
	return errors.Mark(
		pgerror.Newf(pgcode.DuplicateAlias, "table %s is ambiguous", name),
		ErrAmbiguousTable,
	)
}

func newInvalidRefIDError() error {
	return errors.Mark(
		pgerror.New(pgcode.UndefinedObject, "derived table requires a valid query id"),
		ErrIllegalReference,
	)
}

func newUnknownQueryError(tableName string, id QueryID) error {
	return errors.Mark(
		pgerror.Newf(pgcode.UndefinedObject,
			"derived table %s refers to unknown query %d", tableName, id),
		ErrIllegalReference,
	)
}

func newUnfinishedQueryError(tableName string, id QueryID) error {
	return errors.Mark(
		errors.WithHint(
			pgerror.Newf(pgcode.UndefinedObject,
				"derived table %s refers to query %d which is still being bound", tableName, id),
			"nested queries must be bound before the queries that select from them",
		),
		ErrIllegalReference,
	)
}

func newUnknownColumnError(columnName string) error {
	return errors.Mark(
		pgerror.Newf(pgcode.UndefinedColumn, "column %q does not exist", columnName),
		ErrUnknownColumn,
	)
}

func newAmbiguousColumnError(columnName string) error {
	return errors.Mark(
		errors.WithHint(
			pgerror.Newf(pgcode.AmbiguousColumn, "column reference %q is ambiguous", columnName),
			"qualify the column with a table name",
		),
		ErrAmbiguousColumn,
	)
}

func newAmbiguousDerivedColumnError(tableName, columnName string) error {
	return errors.Mark(
		pgerror.Newf(pgcode.AmbiguousColumn,
			"column reference %q is ambiguous: derived table %s projects it more than once",
			columnName, tableName),
		ErrAmbiguousColumn,
	)
}

func wrapAllocationError(err error, what string) error {
	return errors.Mark(
		pgerror.Wrapf(err, pgcode.OutOfMemory, "interning %s", errors.Safe(what)),
		ErrAllocationFailed,
	)
}
